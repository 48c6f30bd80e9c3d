package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goACL "github.com/MrEthical07/goACL"
	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is an exported constant or variable used by the ACL engine.
var ErrUnavailable = errors.New("redis unavailable")

// ErrCorruptRecord is returned when a stored hash field does not decode.
var ErrCorruptRecord = errors.New("corrupt acl record")

const (
	fieldRoles   = "roles"
	fieldActions = "actions"
	fieldGrants  = "acl"
)

// Store persists each container as one Redis hash with the fields "roles",
// "actions", and "acl", each holding a JSON document. The hash lives under
// the storage key the engine provides, optionally inside a namespace.
type Store struct {
	redis     redis.UniversalClient
	namespace string
}

// Option configures a [Store].
type Option func(*Store)

// WithNamespace prepends "namespace:" to every key, isolating containers
// that share a Redis database with other data.
func WithNamespace(namespace string) Option {
	return func(s *Store) {
		s.namespace = namespace
	}
}

// New creates a [Store] backed by the given Redis client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{redis: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

// Load retrieves the record under key, or (nil, nil) when no hash exists.
//
//	Performance: 1 Redis HGETALL.
func (s *Store) Load(ctx context.Context, key string) (*goACL.Record, error) {
	fields, err := s.redis.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	rec := &goACL.Record{Grants: make(map[string]bool)}
	if raw, ok := fields[fieldRoles]; ok {
		if err := json.Unmarshal([]byte(raw), &rec.Roles); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, fieldRoles, err)
		}
	}
	if raw, ok := fields[fieldActions]; ok {
		if err := json.Unmarshal([]byte(raw), &rec.Actions); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, fieldActions, err)
		}
	}
	if raw, ok := fields[fieldGrants]; ok {
		if err := json.Unmarshal([]byte(raw), &rec.Grants); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, fieldGrants, err)
		}
	}

	return rec, nil
}

// Save replaces the hash under key with the record's three fields. The
// delete and rewrite run in one transactional pipeline, so readers never
// observe a partially written record.
//
//	Performance: 2 pipelined Redis commands (DEL + HSET).
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

	k := s.key(key)
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.HSet(ctx, k, map[string]string{
			fieldRoles:   string(roles),
			fieldActions: string(actions),
			fieldGrants:  string(grants),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// Delete removes the hash under key. Absent keys are fine.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return time.Since(start), nil
}
