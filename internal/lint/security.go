package lint

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

const devNull = "/dev/null"

// dangerousTargets are rm targets that wipe a root or home directory.
var dangerousTargets = map[string]bool{
	"/":       true,
	"/*":      true,
	"~":       true,
	"~/":      true,
	"~/*":     true,
	"$HOME":   true,
	"$HOME/":  true,
	"$HOME/*": true,
	"${HOME}": true,
}

// checkCommand inspects one script command. Commands the shell parser
// rejects are checked on whitespace-separated tokens instead.
func checkCommand(r *Report, key, command string) {
	f, err := syntax.NewParser().Parse(strings.NewReader(command), key)
	if err != nil {
		log.Debug("falling back to token scan", "script", key, "err", err)
		checkTokens(r, key, command)
		return
	}

	printer := syntax.NewPrinter()
	render := func(w *syntax.Word) string {
		if lit := w.Lit(); lit != "" {
			return lit
		}
		var b strings.Builder
		if err := printer.Print(&b, w); err != nil {
			return ""
		}
		return b.String()
	}

	syntax.Walk(f, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.CallExpr:
			args := make([]string, 0, len(n.Args))
			for _, w := range n.Args {
				args = append(args, render(w))
			}
			checkCall(r, key, args)
		case *syntax.Stmt:
			if silenced(n.Redirs, render) {
				silencedIssue(r, key)
			}
		}
		return true
	})
}

// checkCall inspects one simple command's arguments.
func checkCall(r *Report, key string, args []string) {
	if len(args) == 0 {
		return
	}
	if args[0] == "sudo" {
		r.add(Issue{Rule: RuleSudo, Severity: SeverityWarning, Key: key, Message: "script runs sudo"})
		args = skipFlags(args[1:])
		if len(args) == 0 {
			return
		}
	}
	if args[0] != "rm" {
		return
	}

	recursive := false
	var targets []string
	for _, a := range args[1:] {
		switch {
		case a == "--recursive":
			recursive = true
		case strings.HasPrefix(a, "--"):
		case strings.HasPrefix(a, "-") && len(a) > 1:
			if strings.ContainsAny(a[1:], "rR") {
				recursive = true
			}
		default:
			targets = append(targets, a)
		}
	}
	if !recursive {
		return
	}

	for _, t := range targets {
		if dangerousTargets[t] {
			r.add(Issue{Rule: RuleRecursiveDelete, Severity: SeverityError, Key: key,
				Message: fmt.Sprintf("recursive delete of %s", t)})
			return
		}
	}
	r.add(Issue{Rule: RuleRecursiveDelete, Severity: SeverityWarning, Key: key,
		Message: fmt.Sprintf("recursive delete of %s", strings.Join(targets, " "))})
}

func skipFlags(args []string) []string {
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		args = args[1:]
	}
	return args
}

// silenced reports whether a statement's redirections send both stdout and
// stderr to /dev/null.
func silenced(redirs []*syntax.Redirect, render func(*syntax.Word) string) bool {
	stdout, stderr := false, false
	for _, rd := range redirs {
		if rd.Word == nil {
			continue
		}
		fd := "1"
		if rd.N != nil {
			fd = rd.N.Value
		}
		target := render(rd.Word)

		switch rd.Op {
		case syntax.RdrAll, syntax.AppAll:
			if target == devNull {
				stdout, stderr = true, true
			}
		case syntax.RdrOut, syntax.AppOut:
			switch fd {
			case "1":
				stdout = target == devNull
			case "2":
				stderr = target == devNull
			}
		case syntax.DplOut:
			switch {
			case fd == "2" && target == "1":
				stderr = stdout
			case fd == "1" && target == "2":
				stdout = stderr
			}
		}
	}
	return stdout && stderr
}

func silencedIssue(r *Report, key string) {
	r.add(Issue{Rule: RuleSilencedOutput, Severity: SeverityInfo, Key: key,
		Message: "stdout and stderr are both discarded"})
}

// checkTokens applies the same checks to a command the parser rejected.
func checkTokens(r *Report, key, command string) {
	var call []string
	flush := func() {
		checkCall(r, key, call)
		call = nil
	}
	for _, tok := range strings.Fields(command) {
		switch tok {
		case ";", "&&", "||", "|", "&":
			flush()
		default:
			call = append(call, tok)
		}
	}
	flush()

	compact := strings.ReplaceAll(command, " ", "")
	if strings.Contains(compact, "&>"+devNull) ||
		(strings.Contains(compact, ">"+devNull) && (strings.Contains(compact, "2>"+devNull) || strings.Contains(compact, "2>&1"))) {
		silencedIssue(r, key)
	}
}
