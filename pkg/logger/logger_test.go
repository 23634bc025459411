package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "booking-core", Output: &buf, Level: zerolog.InfoLevel})

	ctx := logg.WithUserID(context.Background(), "user-42")
	ctx = logg.WithField(ctx, "room_category_id", "cat-7")
	logg.Info(ctx, "availability checked")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parse log line: %v", err)
	}
	if entry["service"] != "booking-core" {
		t.Fatalf("service field missing: %v", entry)
	}
	if entry["user_id"] != "user-42" {
		t.Fatalf("user_id field missing: %v", entry)
	}
	if entry["room_category_id"] != "cat-7" {
		t.Fatalf("room_category_id field missing: %v", entry)
	}
	if entry["message"] != "availability checked" {
		t.Fatalf("message mismatch: %v", entry)
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "booking-core", Output: &buf, Level: zerolog.InfoLevel})

	logg.Error(context.Background(), "checkout failed", context.DeadlineExceeded)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parse log line: %v", err)
	}
	if entry["stack"] == nil || entry["stack"] == "" {
		t.Fatal("expected stack field")
	}
	if entry["error"] != context.DeadlineExceeded.Error() {
		t.Fatalf("error field mismatch: %v", entry["error"])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	if ParseLevel(" Debug ") != zerolog.DebugLevel {
		t.Fatal("expected debug")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("expected info default")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("expected info fallback")
	}
}
