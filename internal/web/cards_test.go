package web

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalCardStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cards")
	store := NewLocalCardStore(dir, "http://localhost:8080/")

	url, err := store.SaveCard("alice.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "http://localhost:8080/cards/alice.png" {
		t.Fatalf("unexpected url %q", url)
	}

	b, err := os.ReadFile(filepath.Join(dir, "alice.png"))
	if err != nil {
		t.Fatalf("read saved card: %v", err)
	}
	if string(b) != "png-bytes" {
		t.Fatalf("unexpected content %q", b)
	}
}

func TestLocalCardStoreAddsExtension(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalCardStore(dir, "http://localhost")

	url, err := store.SaveCard("card", "image/webp", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "http://localhost/cards/card.webp" {
		t.Fatalf("unexpected url %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "card.webp")); err != nil {
		t.Fatalf("card file missing: %v", err)
	}
}
