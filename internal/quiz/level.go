package quiz

import (
	"encoding/json"
	"strings"
)

// Level is the difficulty of a question or attempt.
type Level string

const (
	LevelEasy      Level = "E"
	LevelMedium    Level = "M"
	LevelDifficult Level = "D"
)

// Levels lists every valid level, easiest first.
var Levels = []Level{LevelEasy, LevelMedium, LevelDifficult}

// Valid reports whether l is one of the three levels.
func (l Level) Valid() bool {
	switch l {
	case LevelEasy, LevelMedium, LevelDifficult:
		return true
	}
	return false
}

// NormalizeLevel trims and uppercases s and reports whether the result is a
// valid level. Used for caller-supplied filters, where an unknown level means
// "no filter".
func NormalizeLevel(s string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", false
	}
	return l, true
}

// ParseLevel reads a stored level. Unknown or missing values read as
// LevelEasy so a bad value never blocks a read.
func ParseLevel(s string) Level {
	if l, ok := NormalizeLevel(s); ok {
		return l
	}
	return LevelEasy
}

// UnmarshalJSON accepts a level in any case, so "m" decodes as LevelMedium.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = Level(strings.ToUpper(strings.TrimSpace(s)))
	return nil
}
