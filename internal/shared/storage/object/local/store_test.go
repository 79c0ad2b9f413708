package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"resume-critiquer/internal/shared/util"
)

func TestSaveOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	payload := []byte("%PDF-1.4 pretend resume content for the round trip")

	key, size, mimeType, err := store.Save(context.Background(), "user-1", "resume.pdf", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(payload)) {
		t.Fatalf("size = %d, want %d", size, len(payload))
	}
	if mimeType == "" {
		t.Fatalf("expected a sniffed mime type")
	}
	wantPrefix := util.HashUserKey("user-1") + "/"
	if !strings.HasPrefix(key, wantPrefix) {
		t.Fatalf("key = %q, want prefix %q", key, wantPrefix)
	}
	if !strings.HasSuffix(key, "_resume.pdf") {
		t.Fatalf("key = %q, want suffix _resume.pdf", key)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("read back %q, want %q", got, payload)
	}
}

func TestSaveRandomizesKeys(t *testing.T) {
	store := New(t.TempDir())

	first, _, _, err := store.Save(context.Background(), "user-1", "resume.pdf", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, _, _, err := store.Save(context.Background(), "user-1", "resume.pdf", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct keys for repeated saves, got %q twice", first)
	}
}

func TestSaveRejectsTraversalName(t *testing.T) {
	store := New(t.TempDir())
	if _, _, _, err := store.Save(context.Background(), "user-1", "../escape.pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error for traversal file name")
	}
}

func TestOpenRejectsBadKeys(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatalf("expected error for traversal key")
	}
	if _, err := store.Open(context.Background(), "/etc/passwd"); err == nil {
		t.Fatalf("expected error for absolute key")
	}
	if _, err := store.Open(context.Background(), util.HashUserKey("user-1")+"/missing.pdf"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
