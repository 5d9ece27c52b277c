package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-entityforms/pkg/model"
)

// MustReadFixture returns the text of a fixture file.
func MustReadFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

// MustLoadFields loads a JSON golden file holding a field descriptor list.
func MustLoadFields(t *testing.T, path string) []model.FieldDescriptor {
	t.Helper()

	fields, err := LoadFields(path)
	if err != nil {
		t.Fatalf("load fields: %v", err)
	}
	return fields
}

// LoadFields reads a field descriptor list without requiring testing.T.
func LoadFields(path string) ([]model.FieldDescriptor, error) {
	if path == "" {
		return nil, errors.New("testsupport: fields path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read fields: %w", err)
	}
	var out []model.FieldDescriptor
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal fields: %w", err)
	}
	return out, nil
}

// MustLoadEntity loads a JSON golden file holding an entity.
func MustLoadEntity(t *testing.T, path string) model.Entity {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read entity: %v", err)
	}
	var out model.Entity
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal entity: %v", err)
	}
	return out
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs a render function that also copies its output to a
// writer and returns both the returned text and what was written.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("capture output: %v", err)
	}
	return out, buf.String()
}
