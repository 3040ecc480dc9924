package quiz

import (
	"strconv"
	"strings"
)

// ResolveAnswer maps a stored answer key to the option it designates.
// Historical writers stored the answer as a 0-based index, a 1-based index,
// a letter ("a" is the first option) or the option text itself. The second
// result is false when no option matches.
func ResolveAnswer(options []string, key string) (string, bool) {
	if len(options) == 0 {
		return "", false
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}

	if n, ok := leadingInt(key); ok {
		if n >= 0 && n < len(options) {
			return options[n], true
		}
		if n-1 >= 0 && n-1 < len(options) {
			return options[n-1], true
		}
	}

	if len(key) == 1 {
		idx := int(strings.ToLower(key)[0]) - 'a'
		if idx >= 0 && idx < len(options) {
			return options[idx], true
		}
	}

	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), key) {
			return opt, true
		}
	}
	return "", false
}

// AnswerText is the resolved answer of q, or the raw key when it designates
// no option.
func (q Question) AnswerText() string {
	if text, ok := ResolveAnswer(q.Options, q.Answer); ok {
		return text
	}
	return q.Answer
}

func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
