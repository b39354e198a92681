package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetAPIKey(t *testing.T) {
	gokeyring.MockInit()

	want := "rk-test-1234567890"

	if err := SetAPIKey(want); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}

	got, err := GetAPIKey()
	if err != nil {
		t.Fatalf("GetAPIKey() failed: %v", err)
	}
	if got != want {
		t.Errorf("GetAPIKey() = %q, want %q", got, want)
	}
}

func TestSetAPIKeyEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey(""); err == nil {
		t.Error("SetAPIKey(\"\") should return an error")
	}
}

func TestGetAPIKeyNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteAPIKey()

	_, err := GetAPIKey()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAPIKey() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteAPIKey(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("rk-delete-me"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}
	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey() failed: %v", err)
	}
	if _, err := GetAPIKey(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAPIKey() after delete error = %v, want ErrNotFound", err)
	}
}
