package content_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/garnizeh/incollege/internal/content"
)

func TestLoadEmbedded(t *testing.T) {
	doc, err := content.LoadFile(context.Background(), "")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	for _, key := range []string{"home", "main", "jobs", "friends", "requests", "messages", "profile", "settings", "skills", "privacy_policy", "copyright"} {
		if _, ok := doc.Menus[key]; !ok {
			t.Fatalf("embedded content lacks menu %q", key)
		}
	}
	if doc.Title("home") == "" || len(doc.Options("main")) == 0 || doc.Body("privacy_policy") == "" {
		t.Fatalf("unexpected embedded content: %#v", doc.Menus)
	}
	if doc.Title("nope") != "nope" || doc.Options("nope") != nil || doc.Body("nope") != "" {
		t.Fatalf("missing keys should fall back")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"valid", `{"menus":{"home":{"title":"Home","options":["a","b"]}}}`, ""},
		{"missing menus", `{"pages":{}}`, "does not match schema"},
		{"missing title", `{"menus":{"home":{"options":["a"]}}}`, "does not match schema"},
		{"options not strings", `{"menus":{"home":{"title":"t","options":[1]}}}`, "does not match schema"},
		{"not json", `menus`, "validate content"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := content.Load(context.Background(), []byte(tc.doc))
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Load: %v", err)
				}
				if doc.Title("home") != "Home" || len(doc.Options("home")) != 2 {
					t.Fatalf("unexpected document %#v", doc)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menus.json")
	if err := os.WriteFile(path, []byte(`{"menus":{"main":{"title":"Principal","body":"hola"}}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := content.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if doc.Title("main") != "Principal" || doc.Body("main") != "hola" {
		t.Fatalf("unexpected document %#v", doc)
	}
	if _, err := content.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
