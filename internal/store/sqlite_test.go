package store_test

import (
	"path/filepath"
	"testing"

	"github.com/setscore/setscore/internal/store"
)

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	kv, err := store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := kv.Set("prediction:a", `{"x":1}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set("prediction:a", `{"x":2}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if err := kv.Set("prediction:b", `{}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set("settings", `{}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := kv.Get("prediction:a")
	if err != nil || !ok || v != `{"x":2}` {
		t.Errorf("Get = %q ok=%v err=%v, want overwritten value", v, ok, err)
	}

	keys, err := kv.Keys("prediction:")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "prediction:a" || keys[1] != "prediction:b" {
		t.Errorf("Keys = %v, want sorted prediction keys only", keys)
	}

	if err := kv.Delete("prediction:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := kv.Delete("prediction:a"); err != nil {
		t.Errorf("deleting an absent key must not fail: %v", err)
	}
	if _, ok, _ := kv.Get("prediction:a"); ok {
		t.Error("key still present after delete")
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	kv, err := store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := kv.Set("settings", `{"language":"ja"}`); err != nil {
		t.Fatal(err)
	}
	if err := kv.Close(); err != nil {
		t.Fatal(err)
	}

	kv, err = store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()
	v, ok, err := kv.Get("settings")
	if err != nil || !ok || v != `{"language":"ja"}` {
		t.Errorf("value did not survive reopen: %q ok=%v err=%v", v, ok, err)
	}
}
