package pebblestore

import (
	"context"
	"errors"
	"reflect"
	"testing"

	goACL "github.com/MrEthical07/goACL"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

func testRecord() *goACL.Record {
	return &goACL.Record{
		Roles:   []string{"guest", "member"},
		Actions: []string{"view", "edit"},
		Grants: map[string]bool{
			"guest:view":  true,
			"member:edit": true,
		},
	}
}

func TestOpenSaveLoadRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	want := testRecord()
	if err := store.Save(ctx, "acl_demo", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, "acl_demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("record mismatch: got %+v want %+v", got, want)
	}
}

func TestLoadMissingReturnsNil(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	rec, err := store.Load(context.Background(), "acl_missing")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %+v", rec)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Save(ctx, "acl_demo", testRecord()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	rec, err := reopened.Load(ctx, "acl_demo")
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if rec == nil {
		t.Fatal("expected record to survive reopen, got nil")
	}
	if !reflect.DeepEqual(rec.Grants, testRecord().Grants) {
		t.Fatalf("grants mismatch after reopen: got %v", rec.Grants)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if err := store.Save(ctx, "acl_demo", testRecord()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "acl_demo"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.Delete(ctx, "acl_demo"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	rec, err := store.Load(ctx, "acl_demo")
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record after delete, got %+v", rec)
	}
}

func TestMemoryBackedHandleStaysWithCaller(t *testing.T) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		t.Fatalf("open mem pebble: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	store := New(db)
	if err := store.Save(ctx, "acl_demo", testRecord()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Close is a no-op for caller-owned handles.
	if err := store.Close(); err != nil {
		t.Fatalf("store close: %v", err)
	}
	rec, err := store.Load(ctx, "acl_demo")
	if err != nil {
		t.Fatalf("load after store close: %v", err)
	}
	if rec == nil {
		t.Fatal("expected record through caller-owned handle, got nil")
	}
}

func TestCorruptValueSurfacesError(t *testing.T) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		t.Fatalf("open mem pebble: %v", err)
	}
	defer db.Close()

	if err := db.Set([]byte("acl_demo"), []byte("{not json"), pebble.Sync); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	store := New(db)
	_, err = store.Load(context.Background(), "acl_demo")
	if !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord, got %v", err)
	}
}
