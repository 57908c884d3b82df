package lint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

type finding struct {
	Rule     string
	Severity Severity
	Key      string
}

func findings(r *Report) []finding {
	var out []finding
	for _, i := range r.Issues {
		out = append(out, finding{i.Rule, i.Severity, i.Key})
	}
	return out
}

func group(name string, scripts ...descriptor.Descriptor) descriptor.Group {
	return descriptor.Group{Name: name, Scripts: scripts}
}

func cfgOf(groups ...descriptor.Group) descriptor.Config {
	return descriptor.Config{Groups: groups}
}

func TestRun_Clean(t *testing.T) {
	cfg := cfgOf(group("Build", descriptor.Descriptor{Key: "build", Description: "Bundle the application", Emoji: "📦", Title: "Build it"}))
	scripts := []descriptor.Command{{Key: "build", Command: "webpack --mode production"}}

	r := Run(cfg, scripts, DefaultPolicy())
	if !r.Passed || len(r.Issues) != 0 {
		t.Errorf("Run() = %+v, want clean pass", r)
	}
}

func TestRun_Structure(t *testing.T) {
	policy := Policy{RequireDescriptions: true, RequireEmoji: true, RequireTitle: true}
	cfg := cfgOf(
		group(""),
		group("Test", descriptor.Descriptor{Key: "test", Description: ""}),
	)
	scripts := []descriptor.Command{{Key: "test", Command: "jest"}}

	got := findings(Run(cfg, scripts, policy))
	want := []finding{
		{RuleGroupName, SeverityError, ""},
		{RuleEmptyGroup, SeverityWarning, ""},
		{RuleMissingDescription, SeverityError, "test"},
		{RuleMissingEmoji, SeverityWarning, "test"},
		{RuleMissingTitle, SeverityWarning, "test"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_NoGroups(t *testing.T) {
	r := Run(descriptor.Config{}, nil, DefaultPolicy())
	if diff := cmp.Diff([]finding{{RuleNoGroups, SeverityError, ""}}, findings(r)); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
	if r.Passed {
		t.Error("Passed = true with no groups")
	}
}

func TestRun_References(t *testing.T) {
	cfg := cfgOf(
		group("A",
			descriptor.Descriptor{Key: "build", Description: "Bundle everything"},
			descriptor.Descriptor{Key: "deploy", Description: "Ship to production"},
		),
		group("B", descriptor.Descriptor{Key: "build", Description: "Bundle everything"}),
	)
	scripts := []descriptor.Command{
		{Key: "build", Command: "webpack"},
		{Key: "lint", Command: "eslint ."},
		{Key: "postinstall", Command: "patch-package"},
	}

	got := findings(Run(cfg, scripts, Policy{}))
	want := []finding{
		{RuleMissingScript, SeverityWarning, "deploy"},
		{RuleDuplicateKey, SeverityError, "build"},
		{RuleUndocumented, SeverityWarning, "lint"},
		{RuleUndocumented, SeverityInfo, "postinstall"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Content(t *testing.T) {
	policy := Policy{MinDescription: 10, MaxDescription: 20}
	cfg := cfgOf(group("A",
		descriptor.Descriptor{Key: "a", Description: "Short"},
		descriptor.Descriptor{Key: "b", Description: "A description that is far too long"},
		descriptor.Descriptor{Key: "c", Description: "Just right here", Title: "C"},
		descriptor.Descriptor{Key: "d", Description: "Just right here", Emoji: "🚀🚀🚀"},
		descriptor.Descriptor{Key: "e", Description: "Just right here", Emoji: "x"},
		descriptor.Descriptor{Key: "f", Description: "Just right here", Emoji: "🇯🇵👍🏽"},
	))
	scripts := []descriptor.Command{{Key: "a"}, {Key: "b"}, {Key: "c"}, {Key: "d"}, {Key: "e"}, {Key: "f"}}

	got := findings(Run(cfg, scripts, policy))
	want := []finding{
		{RuleShortDescription, SeverityWarning, "a"},
		{RuleLongDescription, SeverityInfo, "b"},
		{RuleTitleEqualsKey, SeverityInfo, "c"},
		{RuleEmojiOutlier, SeverityWarning, "d"},
		{RuleEmojiOutlier, SeverityWarning, "e"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_PassedIgnoresInfos(t *testing.T) {
	cfg := cfgOf(group("A", descriptor.Descriptor{Key: "a", Description: "Bundle the application", Title: "A"}))
	scripts := []descriptor.Command{{Key: "a", Command: "webpack"}, {Key: "prepare", Command: "husky"}}

	r := Run(cfg, scripts, DefaultPolicy())
	if r.Infos != 2 || r.Errors != 0 || r.Warnings != 0 {
		t.Fatalf("counts = %d/%d/%d, want 0/0/2", r.Errors, r.Warnings, r.Infos)
	}
	if !r.Passed {
		t.Error("Passed = false with only infos")
	}
}

func TestRun_Naming(t *testing.T) {
	scripts := []descriptor.Command{
		{Key: "build-prod"}, {Key: "test-unit"}, {Key: "lint-fix"},
		{Key: "startDev"}, {Key: "clean"},
	}
	var docs []descriptor.Descriptor
	for _, s := range scripts {
		docs = append(docs, descriptor.Descriptor{Key: s.Key, Description: "Does a useful thing"})
	}

	got := findings(Run(cfgOf(group("All", docs...)), scripts, Policy{}))
	want := []finding{{RuleNamingConvention, SeverityInfo, "startDev"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_NamingNeedsEnoughKeys(t *testing.T) {
	scripts := []descriptor.Command{{Key: "build-prod"}, {Key: "startDev"}, {Key: "clean"}}
	r := Run(descriptor.Config{Groups: []descriptor.Group{group("All",
		descriptor.Descriptor{Key: "build-prod", Description: "x"},
		descriptor.Descriptor{Key: "startDev", Description: "x"},
		descriptor.Descriptor{Key: "clean", Description: "x"},
	)}}, scripts, Policy{})
	if len(r.Issues) != 0 {
		t.Errorf("Issues = %+v, want none", r.Issues)
	}
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		command string
		want    []finding
	}{
		{"webpack --mode production", nil},
		{"rm -rf dist", []finding{{RuleRecursiveDelete, SeverityWarning, "s"}}},
		{"rm -r -f /", []finding{{RuleRecursiveDelete, SeverityError, "s"}}},
		{"rm --recursive $HOME", []finding{{RuleRecursiveDelete, SeverityError, "s"}}},
		{"rm -f build.log", nil},
		{"sudo rm -rf ~", []finding{{RuleSudo, SeverityWarning, "s"}, {RuleRecursiveDelete, SeverityError, "s"}}},
		{"tsc && sudo npm link", []finding{{RuleSudo, SeverityWarning, "s"}}},
		{"node server.js >/dev/null 2>&1", []finding{{RuleSilencedOutput, SeverityInfo, "s"}}},
		{"node server.js &> /dev/null", []finding{{RuleSilencedOutput, SeverityInfo, "s"}}},
		{"node server.js > /dev/null", nil},
		{"node server.js 2>/dev/null", nil},
		{"echo $((", nil},
		{"rm -rf / )", []finding{{RuleRecursiveDelete, SeverityError, "s"}}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			r := &Report{}
			checkCommand(r, "s", tt.command)
			if diff := cmp.Diff(tt.want, findings(r)); diff != "" {
				t.Errorf("findings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddSchema(t *testing.T) {
	r := Run(cfgOf(group("A", descriptor.Descriptor{Key: "a", Description: "Does a useful thing"})), []descriptor.Command{{Key: "a"}}, DefaultPolicy())
	r.AddSchema([]manifest.ValidationIssue{{Path: "/scriptGroups/0", Message: "missing property 'scripts'", Keyword: "required"}})

	if r.Errors != 1 || r.Passed {
		t.Errorf("after AddSchema errors=%d passed=%v", r.Errors, r.Passed)
	}
	if !strings.HasPrefix(r.Issues[0].Message, "/scriptGroups/0: ") {
		t.Errorf("message = %q", r.Issues[0].Message)
	}
}

func TestWriteText(t *testing.T) {
	r := &Report{Issues: []Issue{{Rule: RuleSudo, Severity: SeverityWarning, Key: "deploy", Message: "script runs sudo"}}}
	r.tally()

	var buf bytes.Buffer
	if err := WriteText(&buf, r); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"deploy", "script runs sudo", "(sudo)", "failed", "0 error(s), 1 warning(s), 0 info"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
