package lint

import (
	"fmt"
	"regexp"

	"github.com/scriptdeck/scriptdeck/internal/descriptor"
)

// Key naming styles, in tie-break order.
var styles = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"kebab-case", regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)+$`)},
	{"colon-namespaced", regexp.MustCompile(`^[a-z0-9][a-zA-Z0-9-]*(:[a-zA-Z0-9-]+)+$`)},
	{"camelCase", regexp.MustCompile(`^[a-z][a-z0-9]*([A-Z][a-z0-9]*)+$`)},
	{"snake_case", regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)+$`)},
}

// minClassified is the number of styled keys needed before a majority
// style is enforced.
const minClassified = 3

func classify(key string) string {
	for _, s := range styles {
		if s.pattern.MatchString(key) {
			return s.name
		}
	}
	return ""
}

// checkNaming reports keys deviating from the majority naming style. Single
// lowercase words fit every style and are not classified.
func checkNaming(r *Report, cfg descriptor.Config, scripts []descriptor.Command) {
	seen := make(map[string]bool)
	var keys []string
	for _, k := range cfg.Keys() {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, s := range scripts {
		if !seen[s.Key] {
			seen[s.Key] = true
			keys = append(keys, s.Key)
		}
	}

	counts := make(map[string]int)
	styleOf := make(map[string]string)
	total := 0
	for _, k := range keys {
		if style := classify(k); style != "" {
			styleOf[k] = style
			counts[style]++
			total++
		}
	}
	if total < minClassified {
		return
	}

	majority := ""
	for _, s := range styles {
		if counts[s.name] > counts[majority] {
			majority = s.name
		}
	}

	for _, k := range keys {
		if style, ok := styleOf[k]; ok && style != majority {
			r.add(Issue{Rule: RuleNamingConvention, Severity: SeverityInfo, Key: k,
				Message: fmt.Sprintf("key is %s, most scripts use %s", style, majority)})
		}
	}
}
