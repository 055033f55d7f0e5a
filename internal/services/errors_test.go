package services_test

import (
	"errors"
	"strings"
	"testing"

	"recshard/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrFilesystem, "organizer", "list source", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"organizer", "list source", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected filesystem marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestIsTransient(t *testing.T) {
	if services.IsTransient(nil) {
		t.Fatal("nil error must not be transient")
	}
	transient := services.Wrap(services.ErrTransient, "organizer", "move", "in use", errors.New("locked"))
	if !services.IsTransient(transient) {
		t.Fatalf("expected transient classification for %v", transient)
	}
	fatal := services.Wrap(services.ErrFilesystem, "organizer", "move", "disk full", nil)
	if services.IsTransient(fatal) {
		t.Fatalf("expected fatal classification for %v", fatal)
	}
}
