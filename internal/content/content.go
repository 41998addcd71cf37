// Package content serves the static menu strings. The document is checked
// against an embedded JSON schema when it is loaded.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/qri-io/jsonschema"

	dbfs "github.com/garnizeh/incollege/db"
)

const (
	schemaFile  = "seed/menus.schema.json"
	defaultFile = "seed/menus.json"
)

type Menu struct {
	Title   string   `json:"title"`
	Body    string   `json:"body,omitempty"`
	Options []string `json:"options,omitempty"`
}

type Document struct {
	Menus map[string]Menu `json:"menus"`
}

// Load validates data against the menu content schema and decodes it.
func Load(ctx context.Context, data []byte) (*Document, error) {
	raw, err := fs.ReadFile(dbfs.SeedFiles, schemaFile)
	if err != nil {
		return nil, fmt.Errorf("read content schema: %w", err)
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(raw, rs); err != nil {
		return nil, fmt.Errorf("compile content schema: %w", err)
	}

	verrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("validate content: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for _, v := range verrs {
			sb.WriteString(v.PropertyPath)
			sb.WriteString(": ")
			sb.WriteString(v.Message)
			sb.WriteString("; ")
		}
		return nil, fmt.Errorf("content does not match schema: %s", sb.String())
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return &doc, nil
}

// LoadFile loads the document at path, or the embedded default when path is
// empty.
func LoadFile(ctx context.Context, path string) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = fs.ReadFile(dbfs.SeedFiles, defaultFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Load(ctx, data)
}

// Title returns the menu title for key, or key itself when the document has
// no such menu.
func (d *Document) Title(key string) string {
	if m, ok := d.Menus[key]; ok {
		return m.Title
	}
	return key
}

func (d *Document) Options(key string) []string {
	return d.Menus[key].Options
}

func (d *Document) Body(key string) string {
	return d.Menus[key].Body
}
