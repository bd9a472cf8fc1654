package render

import (
	"io"
	"testing"

	"github.com/roboco-io/postmd/internal/ir"
)

// mockRenderer is a test implementation of Renderer.
type mockRenderer struct {
	name string
}

func (m *mockRenderer) Name() string        { return m.name }
func (m *mockRenderer) Extension() string   { return ".mock" }
func (m *mockRenderer) Description() string { return "mock" }

func (m *mockRenderer) Render(w io.Writer, doc *ir.Document) error {
	_, err := io.WriteString(w, "mock output")
	return err
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(DefaultOptions())

	if r == nil {
		t.Fatal("expected non-nil registry")
	}
	want := []string{"html", "json", "markdown", "terminal", "text"}
	names := r.List()
	if len(names) != len(want) {
		t.Fatalf("expected %d renderers, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected sorted built-ins %v, got %v", want, names)
			break
		}
	}
}

func TestRegistry_Register(t *testing.T) {
	r := newRegistry()

	if err := r.Register(&mockRenderer{name: "test"}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if r.Count() != 1 {
		t.Errorf("expected 1 renderer, got %d", r.Count())
	}
}

func TestRegistry_RegisterErrors(t *testing.T) {
	r := NewRegistry(DefaultOptions())

	tests := []struct {
		name string
		rd   Renderer
	}{
		{"nil renderer", nil},
		{"empty name", &mockRenderer{name: ""}},
		{"duplicate built-in", &mockRenderer{name: "markdown"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := r.Register(tc.rd); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry(DefaultOptions())

	got, err := r.Get("html")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.Extension() != ".html" {
		t.Errorf("expected '.html', got %s", got.Extension())
	}

	if _, err := r.Get("pdf"); err == nil {
		t.Error("expected error for unknown renderer")
	}
}

func TestRegistry_Has(t *testing.T) {
	r := newRegistry()
	_ = r.Register(&mockRenderer{name: "test"})

	if !r.Has("test") {
		t.Error("expected Has('test') to return true")
	}
	if r.Has("nonexistent") {
		t.Error("expected Has('nonexistent') to return false")
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry(DefaultOptions())

	if err := r.Unregister("terminal"); err != nil {
		t.Fatalf("failed to unregister: %v", err)
	}
	if r.Count() != 4 {
		t.Errorf("expected 4 renderers after unregister, got %d", r.Count())
	}
	if err := r.Unregister("terminal"); err == nil {
		t.Error("expected error for unregistering twice")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.WordWrap != 80 {
		t.Errorf("expected word wrap 80, got %d", opts.WordWrap)
	}
	if opts.GlamourStyle != "auto" {
		t.Errorf("expected glamour style 'auto', got %s", opts.GlamourStyle)
	}
	if !opts.Pretty {
		t.Error("expected pretty json by default")
	}
}
