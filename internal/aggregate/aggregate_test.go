package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

func parse(t *testing.T, doc string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse("/project/package.json", []byte(doc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return m
}

type row struct {
	Key    string
	Group  string
	Status Status
}

func rows(entries []MenuEntry) []row {
	out := make([]row, len(entries))
	for i, e := range entries {
		out[i] = row{Key: e.Key, Group: e.Group, Status: e.Status}
	}
	return out
}

// assertCoverage checks every raw script appears exactly once.
func assertCoverage(t *testing.T, m *manifest.Manifest, entries []MenuEntry) {
	t.Helper()
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Key]++
	}
	for _, c := range m.Commands() {
		if counts[c.Key] != 1 {
			t.Errorf("raw script %q appears %d times, want 1", c.Key, counts[c.Key])
		}
	}
	for key, n := range counts {
		if n != 1 {
			t.Errorf("key %q appears %d times", key, n)
		}
	}
}

func TestBuild_Cascade(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts Options
		want []row
	}{
		{
			name: "flat scripts",
			doc:  `{"scripts": {"build": "webpack", "test": "jest"}}`,
			want: []row{
				{"build", GroupAvailable, StatusPresent},
				{"test", GroupAvailable, StatusPresent},
			},
		},
		{
			name: "canonical config with extra and missing",
			doc: `{"scripts": {"build": "webpack", "test": "jest", "lint": "eslint"},
				"scriptdeck": {"scriptGroups": [
					{"name": "Build", "scripts": [{"key": "build", "description": "Bundle"}, {"key": "deploy", "description": "Ship"}]},
					{"name": "Quality", "scripts": [{"key": "test", "description": "Test"}, {"key": "build", "description": "again"}]}
				]}}`,
			want: []row{
				{"build", "Build", StatusPresent},
				{"deploy", "Build", StatusMissing},
				{"test", "Quality", StatusPresent},
				{"lint", GroupOther, StatusExtra},
			},
		},
		{
			name: "better-scripts",
			doc: `{"scripts": {"dev": "vite", "test": "jest"},
				"better-scripts": {"dev": "Serve", "gone": ["rm -rf dist"]}}`,
			want: []row{
				{"dev", GroupAvailable, StatusPresent},
				{"gone", GroupAvailable, StatusMissing},
				{"test", GroupOther, StatusExtra},
			},
		},
		{
			name: "headers",
			doc:  `{"scripts": {"build": "webpack", "comment:dev": "# DEV", "start": "node x"}}`,
			want: []row{
				{"build", "Scripts", StatusPresent},
				{"start", "DEV", StatusPresent},
			},
		},
		{
			name: "ntl",
			doc:  `{"scripts": {"build": "webpack", "test": "jest"}, "ntl": {"descriptions": {"test": "Run tests"}}}`,
			want: []row{
				{"build", GroupAvailable, StatusPresent},
				{"test", GroupAvailable, StatusPresent},
			},
		},
		{
			name: "lifecycle first",
			doc:  `{"scripts": {"build": "tsc", "postinstall": "patch-package", "prepare": "husky"}}`,
			opts: Options{IncludeLifecycle: true},
			want: []row{
				{"postinstall", GroupLifecycle, StatusPresent},
				{"prepare", GroupLifecycle, StatusPresent},
				{"build", GroupAvailable, StatusPresent},
			},
		},
		{
			name: "lifecycle claimed before canonical config",
			doc: `{"scripts": {"build": "tsc", "prepare": "husky"},
				"scriptdeck": {"scriptGroups": [{"name": "All", "scripts": [{"key": "prepare", "description": "Hooks"}, {"key": "build", "description": "Compile"}]}]}}`,
			opts: Options{IncludeLifecycle: true},
			want: []row{
				{"prepare", GroupLifecycle, StatusPresent},
				{"build", "All", StatusPresent},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := parse(t, tt.doc)
			entries := Build(m, tt.opts)
			if diff := cmp.Diff(tt.want, rows(entries)); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
			assertCoverage(t, m, entries)
		})
	}
}

func TestBuild_DescriptionChain(t *testing.T) {
	m := parse(t, `{
		"scripts": {"\n# Build": "", "build": "webpack", "test": "jest", "lint": "eslint", "?lint": "echo 'Lint sources'"},
		"ntl": {"descriptions": {"build": "📦 Bundle"}}
	}`)

	entries := Build(m, Options{Preview: true})
	got := map[string]string{}
	for _, e := range entries {
		got[e.Key] = e.Label
	}
	want := map[string]string{
		"build": "📦 build: Bundle $ webpack",
		"test":  "test: jest $ jest",
		"lint":  "lint: Lint sources $ eslint",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		entry MenuEntry
		want  string
	}{
		{"plain", MenuEntry{Key: "test", Description: "Run tests"}, "test: Run tests"},
		{"titled", MenuEntry{Key: "dev", Title: "Dev", Emoji: "🚀", Description: "Start dev"}, "🚀 Dev (dev): Start dev"},
		{"missing", MenuEntry{Key: "deploy", Description: "Ship", Status: StatusMissing}, "deploy: Ship [missing]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := label(tt.entry, false); got != tt.want {
				t.Errorf("label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestControls(t *testing.T) {
	var actions []string
	for _, c := range Controls(false) {
		if !c.IsControl() || !c.Selectable() {
			t.Errorf("control %q not selectable", c.Label)
		}
		actions = append(actions, c.Action)
	}
	if diff := cmp.Diff([]string{ActionMigrate, ActionTogglePreview, ActionExit}, actions); diff != "" {
		t.Errorf("Controls() mismatch (-want +got):\n%s", diff)
	}
	if Controls(true)[1].Label == Controls(false)[1].Label {
		t.Error("toggle label does not reflect preview state")
	}
}

func TestFilter(t *testing.T) {
	entries := []MenuEntry{
		{Key: "test", Label: "test: jest"},
		{Key: "build", Label: "build: webpack"},
		{Key: "build:prod", Label: "build:prod: webpack -p"},
	}

	var got []string
	for _, e := range Filter(entries, "build") {
		got = append(got, e.Key)
	}
	if diff := cmp.Diff([]string{"build", "build:prod"}, got); diff != "" {
		t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
	}
	if n := len(Filter(entries, "")); n != len(entries) {
		t.Errorf("Filter(\"\") returned %d entries, want %d", n, len(entries))
	}
}

func TestIsLifecycle(t *testing.T) {
	if !IsLifecycle("postinstall") || !IsLifecycle("prepublishOnly") {
		t.Error("known lifecycle names not recognized")
	}
	if IsLifecycle("build") || IsLifecycle("Prepare") {
		t.Error("non-lifecycle names recognized")
	}
}
