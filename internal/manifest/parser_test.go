package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func parseFixture(t *testing.T, name string) *Manifest {
	t.Helper()
	data, err := os.ReadFile(testPath(name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	m, err := Parse(testPath(name), data)
	if err != nil {
		t.Fatalf("Parse(%s) error: %v", name, err)
	}
	return m
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestParse_TokenizesScripts(t *testing.T) {
	m := parseFixture(t, "headers.json")

	want := []Script{
		{Key: "build", Value: "webpack", Kind: KindCommand},
		{Key: "comment:dev", Value: "# DEV", Kind: KindHeader, Label: "DEV"},
		{Key: "start", Value: "node x", Kind: KindCommand},
		{Key: "\n# Testing:", Value: "", Kind: KindHeader, Label: "Testing"},
		{Key: "test", Value: "jest", Kind: KindCommand},
		{Key: "?test", Value: "echo 'Run the unit tests'", Kind: KindPseudo, Target: "test"},
	}
	if diff := cmp.Diff(want, m.Scripts); diff != "" {
		t.Errorf("Scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_CommandsKeepOrder(t *testing.T) {
	m := parseFixture(t, "headers.json")

	want := []descriptor.Command{
		{Key: "build", Command: "webpack"},
		{Key: "start", Command: "node x"},
		{Key: "test", Command: "jest"},
	}
	if diff := cmp.Diff(want, m.Commands()); diff != "" {
		t.Errorf("Commands mismatch (-want +got):\n%s", diff)
	}
	if !m.HasHeaders() {
		t.Error("HasHeaders() = false, want true")
	}
}

func TestParse_FieldsKeepOrder(t *testing.T) {
	m := parseFixture(t, "headers.json")

	var keys []string
	for _, f := range m.Fields {
		keys = append(keys, f.Key)
	}
	want := []string{"name", "version", "scripts"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
	if got := m.StringField("name"); got != "headers-fixture" {
		t.Errorf("StringField(name) = %q, want %q", got, "headers-fixture")
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	data, err := os.ReadFile(testPath("invalid.json"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Parse(testPath("invalid.json"), data)
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Path != testPath("invalid.json") {
		t.Errorf("Path = %q, want %q", syntaxErr.Path, testPath("invalid.json"))
	}
}

func TestParse_NotAnObject(t *testing.T) {
	if _, err := Parse("package.json", []byte(`["a"]`)); err == nil {
		t.Fatal("expected error for array manifest, got nil")
	}
}

func TestParse_Embedded(t *testing.T) {
	data := []byte(`{"scripts":{"x":"echo"},"scriptdeck":{"scriptGroups":[{"name":"A","scripts":[{"key":"x","description":"d"}]}]}}`)
	m, err := Parse("package.json", data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if m.Embedded == nil {
		t.Fatal("Embedded is nil")
	}
	cfg, from := m.Native()
	if cfg == nil || from != "package.json" {
		t.Fatalf("Native() = %v, %q", cfg, from)
	}
	if cfg.Groups[0].Scripts[0].Description != "d" {
		t.Errorf("description = %q, want %q", cfg.Groups[0].Scripts[0].Description, "d")
	}
}

func TestParse_EmbeddedMalformed(t *testing.T) {
	data := []byte(`{"scripts":{},"scriptdeck":{"scriptGroups":"nope"}}`)
	m, err := Parse("package.json", data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if m.EmbeddedErr == nil {
		t.Error("expected EmbeddedErr for malformed embedded config")
	}
	if cfg, _ := m.Native(); cfg != nil {
		t.Error("Native() should ignore a malformed embedded config")
	}
}

func TestHeaderLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"\n# Development", "Development"},
		{"# Build:", "Build"},
		{"comment:dev", "dev"},
		{"# DEV", "DEV"},
		{"\n# ===== Code Quality =====", "Code Quality"},
		{"## -- utility -- ##", "utility"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := HeaderLabel(tt.in); got != tt.want {
			t.Errorf("HeaderLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		kind  Kind
		label string
	}{
		{"plain script", "build", "tsc", KindCommand, ""},
		{"hash header", "# Build", "", KindHeader, "Build"},
		{"hash key with command stays a command", "# Build", "tsc", KindCommand, ""},
		{"newline header", "\n#Lint", "", KindHeader, "Lint"},
		{"comment header from key", "comment:deploy", "", KindHeader, "deploy"},
		{"comment header from value", "comment:1", "# Deployment", KindHeader, "Deployment"},
		{"hash without space is a script", "#private", "", KindCommand, ""},
		{"lone question mark", "?", "echo", KindCommand, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tokenize(tt.key, tt.value)
			if s.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", s.Kind, tt.kind)
			}
			if s.Label != tt.label {
				t.Errorf("Label = %q, want %q", s.Label, tt.label)
			}
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_WithSidecar(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `{"scripts":{"x":"echo x"}}`)
	writeFile(t, filepath.Join(dir, ".scriptdeck.yaml"), `scriptGroups:
  - name: A
    scripts:
      - key: x
        description: d
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if m.Sidecar == nil {
		t.Fatal("Sidecar is nil")
	}
	want := &descriptor.Config{Groups: []descriptor.Group{{
		Name:    "A",
		Scripts: []descriptor.Descriptor{{Key: "x", Description: "d"}},
	}}}
	if diff := cmp.Diff(want, m.Sidecar); diff != "" {
		t.Errorf("Sidecar mismatch (-want +got):\n%s", diff)
	}
	if m.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", m.Dir(), dir)
	}
}

func TestLoad_BrokenSidecarIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `{"scripts":{"x":"echo x"}}`)
	writeFile(t, filepath.Join(dir, ".scriptdeck.json"), `{"scriptGroups": [`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	var syntaxErr *SyntaxError
	if !errors.As(m.SidecarErr, &syntaxErr) {
		t.Fatalf("SidecarErr = %v, want *SyntaxError", m.SidecarErr)
	}
	if m.Sidecar != nil {
		t.Error("Sidecar should be nil when decoding failed")
	}
}

func TestFindSidecar_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".scriptdeck.json"), `{}`)
	writeFile(t, filepath.Join(dir, ".scriptdeck.yaml"), `scriptGroups: []`)

	got, ok := FindSidecar(dir)
	if !ok {
		t.Fatal("FindSidecar found nothing")
	}
	if filepath.Base(got) != ".scriptdeck.yaml" {
		t.Errorf("FindSidecar = %q, want .scriptdeck.yaml", got)
	}
}

func TestConfigErr(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `{"scripts":{"x":"echo x"},"scriptdeck":{"scriptGroups":1}}`)
	writeFile(t, filepath.Join(dir, ".scriptdeck.json"), `{"scriptGroups": [`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	var syntaxErr *SyntaxError
	if !errors.As(m.ConfigErr(), &syntaxErr) || syntaxErr.Path != m.Path {
		t.Errorf("ConfigErr() = %v, want the embedded field error", m.ConfigErr())
	}

	m.EmbeddedErr = nil
	if !errors.As(m.ConfigErr(), &syntaxErr) || syntaxErr.Path != m.SidecarPath {
		t.Errorf("ConfigErr() = %v, want the sidecar error", m.ConfigErr())
	}

	m.SidecarErr = nil
	if err := m.ConfigErr(); err != nil {
		t.Errorf("ConfigErr() = %v, want nil", err)
	}
}
