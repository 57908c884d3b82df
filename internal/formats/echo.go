package formats

import (
	"strings"
	"unicode"
)

// EchoText extracts the human text from an echo-style pseudo-script such as
// `echo -e "Build the project"`: the echo token, leading -e/-E/-n flags and
// one pair of surrounding quotes are removed. Other commands are returned trimmed.
func EchoText(command string) string {
	s := strings.TrimSpace(command)
	word, rest := cutWord(s)
	if word != "echo" {
		return s
	}
	s = rest
	for {
		word, rest = cutWord(s)
		if !isEchoFlag(word) {
			break
		}
		s = rest
	}
	return strings.TrimSpace(unquote(strings.TrimSpace(s)))
}

// unquote removes one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// cutWord splits off the first whitespace-delimited word.
func cutWord(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimLeftFunc(s[idx:], unicode.IsSpace)
}

func isEchoFlag(word string) bool {
	if len(word) < 2 || word[0] != '-' {
		return false
	}
	for _, r := range word[1:] {
		if r != 'e' && r != 'E' && r != 'n' {
			return false
		}
	}
	return true
}
