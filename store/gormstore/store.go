package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goACL "github.com/MrEthical07/goACL"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnavailable is an exported constant or variable used by the ACL engine.
var ErrUnavailable = errors.New("database unavailable")

// ErrCorruptRecord is returned when a stored column does not decode.
var ErrCorruptRecord = errors.New("corrupt acl record")

type aclRecord struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Roles     string    `gorm:"column:roles"`
	Actions   string    `gorm:"column:actions"`
	Grants    string    `gorm:"column:acl"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (aclRecord) TableName() string {
	return "acl_records"
}

// Store persists each container as one row in the acl_records table. The
// roles, actions, and acl columns hold JSON documents, which keeps the
// schema stable while the matrix shape evolves.
type Store struct {
	db *gorm.DB
}

// Open wraps the given gorm handle and migrates the acl_records table.
func Open(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("gorm db is nil")
	}
	if err := db.AutoMigrate(&aclRecord{}); err != nil {
		return nil, fmt.Errorf("%w: migrate acl_records: %v", ErrUnavailable, err)
	}
	return &Store{db: db}, nil
}

// New wraps the given gorm handle without migrating. The acl_records table
// must already exist, typically created by the deployment's own migrations.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Load retrieves the record under key, or (nil, nil) when no row exists.
func (s *Store) Load(ctx context.Context, key string) (*goACL.Record, error) {
	var row aclRecord
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	rec := &goACL.Record{Grants: make(map[string]bool)}
	if row.Roles != "" {
		if err := json.Unmarshal([]byte(row.Roles), &rec.Roles); err != nil {
			return nil, fmt.Errorf("%w: roles: %v", ErrCorruptRecord, err)
		}
	}
	if row.Actions != "" {
		if err := json.Unmarshal([]byte(row.Actions), &rec.Actions); err != nil {
			return nil, fmt.Errorf("%w: actions: %v", ErrCorruptRecord, err)
		}
	}
	if row.Grants != "" {
		if err := json.Unmarshal([]byte(row.Grants), &rec.Grants); err != nil {
			return nil, fmt.Errorf("%w: acl: %v", ErrCorruptRecord, err)
		}
	}

	return rec, nil
}

// Save upserts the row under key, replacing all three document columns.
func (s *Store) Save(ctx context.Context, key string, rec *goACL.Record) error {
	roles, err := json.Marshal(rec.Roles)
	if err != nil {
		return err
	}
	actions, err := json.Marshal(rec.Actions)
	if err != nil {
		return err
	}
	grants, err := json.Marshal(rec.Grants)
	if err != nil {
		return err
	}

	row := aclRecord{
		Key:       key,
		Roles:     string(roles),
		Actions:   string(actions),
		Grants:    string(grants),
		UpdatedAt: time.Now().UTC(),
	}
	create := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"roles", "actions", "acl", "updated_at"}),
	}).Create(&row)
	if create.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, create.Error)
	}
	return nil
}

// Delete removes the row under key. Absent rows are fine.
func (s *Store) Delete(ctx context.Context, key string) error {
	del := s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&aclRecord{})
	if del.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, del.Error)
	}
	return nil
}
