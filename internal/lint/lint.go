// Package lint checks a canonical script config and the raw scripts it
// documents for structural, cross-reference, content, naming and security
// problems.
package lint

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/scriptdeck/scriptdeck/internal/aggregate"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

// Severity ranks an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rule identifiers.
const (
	RuleNoGroups           = "no-groups"
	RuleEmptyGroup         = "empty-group"
	RuleGroupName          = "group-name"
	RuleMissingDescription = "missing-description"
	RuleMissingEmoji       = "missing-emoji"
	RuleMissingTitle       = "missing-title"
	RuleDuplicateKey       = "duplicate-key"
	RuleMissingScript      = "missing-script"
	RuleUndocumented       = "undocumented-script"
	RuleShortDescription   = "short-description"
	RuleLongDescription    = "long-description"
	RuleTitleEqualsKey     = "title-equals-key"
	RuleEmojiOutlier       = "emoji-outlier"
	RuleNamingConvention   = "naming-convention"
	RuleRecursiveDelete    = "recursive-delete"
	RuleSudo               = "sudo"
	RuleSilencedOutput     = "silenced-output"
	RuleSchema             = "schema"
)

// Issue is one finding.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Group    string   `json:"group,omitempty"`
	Key      string   `json:"key,omitempty"`
	Message  string   `json:"message"`
}

// Report collects the issues of one run.
type Report struct {
	Issues   []Issue `json:"issues"`
	Errors   int     `json:"errors"`
	Warnings int     `json:"warnings"`
	Infos    int     `json:"infos"`
	Passed   bool    `json:"passed"`
}

// Policy selects optional rules and thresholds.
type Policy struct {
	RequireDescriptions bool
	RequireEmoji        bool
	RequireTitle        bool
	// MinDescription and MaxDescription bound description length in
	// characters. Zero disables the bound.
	MinDescription int
	MaxDescription int
	// Security enables the shell command checks.
	Security bool
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		RequireDescriptions: true,
		MinDescription:      10,
		MaxDescription:      80,
		Security:            true,
	}
}

// Run lints cfg against the raw scripts.
func Run(cfg descriptor.Config, scripts []descriptor.Command, policy Policy) *Report {
	r := &Report{Issues: []Issue{}}

	checkStructure(r, cfg, policy)
	checkReferences(r, cfg, scripts)
	checkNaming(r, cfg, scripts)
	if policy.Security {
		for _, s := range scripts {
			checkCommand(r, s.Key, s.Command)
		}
	}

	r.tally()
	return r
}

// AddSchema folds schema validation issues into the report.
func (r *Report) AddSchema(issues []manifest.ValidationIssue) {
	for _, vi := range issues {
		msg := vi.Message
		if vi.Path != "" {
			msg = fmt.Sprintf("%s: %s", vi.Path, vi.Message)
		}
		r.add(Issue{Rule: RuleSchema, Severity: SeverityError, Message: msg})
	}
	r.tally()
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

func (r *Report) tally() {
	r.Errors, r.Warnings, r.Infos = 0, 0, 0
	for _, i := range r.Issues {
		switch i.Severity {
		case SeverityError:
			r.Errors++
		case SeverityWarning:
			r.Warnings++
		case SeverityInfo:
			r.Infos++
		}
	}
	r.Passed = r.Errors == 0 && r.Warnings == 0
}

func checkStructure(r *Report, cfg descriptor.Config, policy Policy) {
	if len(cfg.Groups) == 0 {
		r.add(Issue{Rule: RuleNoGroups, Severity: SeverityError, Message: "config defines no script groups"})
		return
	}

	for i, g := range cfg.Groups {
		if strings.TrimSpace(g.Name) == "" {
			r.add(Issue{Rule: RuleGroupName, Severity: SeverityError, Message: fmt.Sprintf("group #%d has no name", i+1)})
		}
		if len(g.Scripts) == 0 {
			r.add(Issue{Rule: RuleEmptyGroup, Severity: SeverityWarning, Group: g.Name, Message: "group has no scripts"})
		}
		for _, d := range g.Scripts {
			checkDescriptor(r, g.Name, d, policy)
		}
	}
}

func checkDescriptor(r *Report, group string, d descriptor.Descriptor, policy Policy) {
	issue := func(rule string, sev Severity, format string, args ...any) {
		r.add(Issue{Rule: rule, Severity: sev, Group: group, Key: d.Key, Message: fmt.Sprintf(format, args...)})
	}

	desc := strings.TrimSpace(d.Description)
	if desc == "" {
		if policy.RequireDescriptions {
			issue(RuleMissingDescription, SeverityError, "script has no description")
		}
	} else {
		n := utf8.RuneCountInString(desc)
		if policy.MinDescription > 0 && n < policy.MinDescription {
			issue(RuleShortDescription, SeverityWarning, "description is %d characters, minimum is %d", n, policy.MinDescription)
		}
		if policy.MaxDescription > 0 && n > policy.MaxDescription {
			issue(RuleLongDescription, SeverityInfo, "description is %d characters, maximum is %d", n, policy.MaxDescription)
		}
	}

	if d.Emoji == "" {
		if policy.RequireEmoji {
			issue(RuleMissingEmoji, SeverityWarning, "script has no emoji")
		}
	} else if n := descriptor.EmojiCount(d.Emoji); n < 1 || n > 2 {
		issue(RuleEmojiOutlier, SeverityWarning, "emoji %q should be one or two emoji", d.Emoji)
	}

	if d.Title == "" {
		if policy.RequireTitle {
			issue(RuleMissingTitle, SeverityWarning, "script has no title")
		}
	} else if strings.EqualFold(strings.TrimSpace(d.Title), d.Key) {
		issue(RuleTitleEqualsKey, SeverityInfo, "title repeats the script key")
	}
}

func checkReferences(r *Report, cfg descriptor.Config, scripts []descriptor.Command) {
	raw := make(map[string]bool, len(scripts))
	for _, s := range scripts {
		raw[s.Key] = true
	}

	documented := make(map[string]string)
	for _, g := range cfg.Groups {
		for _, d := range g.Scripts {
			if first, ok := documented[d.Key]; ok {
				r.add(Issue{Rule: RuleDuplicateKey, Severity: SeverityError, Group: g.Name, Key: d.Key,
					Message: fmt.Sprintf("script already documented in group %q", first)})
				continue
			}
			documented[d.Key] = g.Name
			if !raw[d.Key] {
				r.add(Issue{Rule: RuleMissingScript, Severity: SeverityWarning, Group: g.Name, Key: d.Key,
					Message: "documented script does not exist in package.json"})
			}
		}
	}

	for _, s := range scripts {
		if _, ok := documented[s.Key]; ok {
			continue
		}
		sev := SeverityWarning
		if aggregate.IsLifecycle(s.Key) {
			sev = SeverityInfo
		}
		r.add(Issue{Rule: RuleUndocumented, Severity: sev, Key: s.Key, Message: "script is not documented"})
	}
}
