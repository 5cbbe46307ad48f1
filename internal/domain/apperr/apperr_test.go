package apperr

import (
	"errors"
	"testing"
)

func TestNew_MatchesClass(t *testing.T) {
	err := New(ErrNotFound, "loan application not found")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound class, got %v", err)
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("unexpected ErrConflict match")
	}
	if err.Error() != "loan application not found" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestStorage_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage(cause)
	if !errors.Is(err, ErrStorage) || !errors.Is(err, cause) {
		t.Fatalf("want both class and cause, got %v", err)
	}
	if Storage(nil) != nil {
		t.Fatal("Storage(nil) must be nil")
	}
}

func TestUpstream_Message(t *testing.T) {
	err := Upstream("payment provider", errors.New("timeout"))
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
	if err.Error() != "payment provider failure: timeout" {
		t.Fatalf("message = %q", err.Error())
	}
}
