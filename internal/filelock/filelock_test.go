package filelock

import (
	"path/filepath"
	"testing"
)

func TestAcquireRelease(t *testing.T) {
	dir := t.TempDir()

	lock := New(dir)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("failed to release lock: %v", err)
	}
}

func TestLockPath(t *testing.T) {
	dir := t.TempDir()

	lock := New(dir)
	want := filepath.Join(dir, LockFileName)
	if lock.Path() != want {
		t.Errorf("expected lock path %s, got %s", want, lock.Path())
	}
}

func TestSecondAcquireFails(t *testing.T) {
	dir := t.TempDir()

	first := New(dir)
	if err := first.Acquire(); err != nil {
		t.Fatalf("failed to acquire first lock: %v", err)
	}
	defer first.Release()

	second := New(dir)
	if err := second.Acquire(); err == nil {
		second.Release()
		t.Error("expected second acquire on a held lock to fail")
	}
}

func TestReacquireAfterRelease(t *testing.T) {
	dir := t.TempDir()

	lock := New(dir)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("failed to release lock: %v", err)
	}

	again := New(dir)
	if err := again.Acquire(); err != nil {
		t.Fatalf("failed to reacquire released lock: %v", err)
	}
	again.Release()
}
