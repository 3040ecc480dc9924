package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ansiversa/quizdb/internal/errs"
)

// Every domain-typed field read from a row goes through exactly one of the
// functions in this file. Functions taking a fallback never fail; functions
// returning an error are used where no safe default exists.

// ErrInvalidDate is wrapped by ParseDate failures.
var ErrInvalidDate = errors.New("invalid date value")

// CoerceNumber converts v to a float64. Strings must parse as a whole number
// literal after trimming; booleans map to 1/0.
func CoerceNumber(v any, fallback float64) float64 {
	if f, ok := asFloat(v); ok {
		return f
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return fallback
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return fallback
		}
		return f
	case bool:
		if t {
			return 1
		}
		return 0
	}
	return fallback
}

// CoerceInteger converts v to an int64, truncating toward zero. Strings are
// read by their leading integer ("12abc" is 12, "3.7" is 3).
func CoerceInteger(v any, fallback int64) int64 {
	if n, ok := coerceInteger(v); ok {
		return n
	}
	return fallback
}

// RequireInteger is CoerceInteger without a fallback: a value that cannot be
// read as an integer is a ValidationError.
func RequireInteger(field string, v any) (int64, error) {
	if n, ok := coerceInteger(v); ok {
		return n, nil
	}
	return 0, errs.NewValidationError("", field, fmt.Sprintf("expected integer but received %v", v))
}

// CoerceOptionalInteger treats nil and "" as absent and collapses any
// coercion failure to absent as well.
func CoerceOptionalInteger(v any) *int64 {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	n, ok := coerceInteger(v)
	if !ok {
		return nil
	}
	return &n
}

func coerceInteger(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int16:
		return int64(t), true
	case int8:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case uint:
		if uint64(t) > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, false
		}
		return parseIntPrefix(t)
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}

	if f, ok := asFloat(v); ok {
		if f >= math.MaxInt64 || f <= math.MinInt64 {
			return 0, false
		}
		return int64(math.Trunc(f)), true
	}
	return 0, false
}

// parseIntPrefix reads an optional sign followed by decimal digits, ignoring
// leading whitespace and anything after the digits.
func parseIntPrefix(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// asFloat reports finite floating point and json.Number values.
func asFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, _ := coerceInteger(t)
		return float64(n), true
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CoerceBoolean: booleans pass through, numbers are nonzero-true, strings
// match true/1/yes/y and false/0/no/n case-insensitively.
func CoerceBoolean(v any, fallback bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y":
			return true
		case "false", "0", "no", "n":
			return false
		}
		return fallback
	}
	if f, ok := asFloat(v); ok {
		return f != 0
	}
	return fallback
}

// CoerceString stringifies numbers and booleans; other non-strings yield
// fallback.
func CoerceString(v any, fallback string) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	if isInteger(v) {
		n, _ := coerceInteger(v)
		return strconv.FormatInt(n, 10)
	}
	if f, ok := asFloat(v); ok {
		return formatNumber(f)
	}
	return fallback
}

// CoerceNullableString is CoerceString with nil and "" mapped to nil.
func CoerceNullableString(v any) *string {
	if v == nil {
		return nil
	}
	s := CoerceString(v, "")
	if s == "" {
		return nil
	}
	return &s
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ParseJSONValue decodes a JSON column. Structured values pass through,
// blank strings are absent, and malformed JSON is a DecodeError.
func ParseJSONValue(field string, v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any, []any, json.RawMessage:
		if raw, ok := t.(json.RawMessage); ok {
			return ParseJSONValue(field, string(raw))
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
		var out any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, &errs.DecodeError{Field: field, Err: err}
		}
		return out, nil
	}
	return nil, &errs.DecodeError{Field: field, Err: fmt.Errorf("unsupported JSON value type %T", v)}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseDate accepts a time.Time, an ISO-8601 or SQL timestamp string (zoneless
// values are UTC), or a number of Unix milliseconds.
func ParseDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t != nil {
			return *t, nil
		}
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, nil
			}
		}
	default:
		if f, ok := asFloat(v); ok {
			return time.UnixMilli(int64(f)).UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, v)
}

// ToStringArray materializes a list-of-strings column regardless of how it
// was written: a native slice, a map of values, a JSON array or object, or a
// bare string. Empty entries are dropped.
func ToStringArray(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case nil:
		return out
	case []string:
		for _, s := range t {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		for _, item := range t {
			if s := stringEntry(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		for _, key := range orderedKeys(t) {
			if s := stringEntry(t[key]); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(t) == "" {
			return out
		}
		entries, ok := stringArrayFromJSON(t)
		if !ok {
			return []string{t}
		}
		return entries
	}
	return out
}

func stringEntry(item any) string {
	switch t := item.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
	return CoerceString(item, "")
}

// stringArrayFromJSON decodes s as a JSON array or object. ok is false when s
// is not valid JSON; a valid JSON scalar yields no entries.
func stringArrayFromJSON(s string) ([]string, bool) {
	trimmed := strings.TrimSpace(s)
	out := []string{}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, false
		}
		for _, raw := range items {
			if e := rawEntry(raw); e != "" {
				out = append(out, e)
			}
		}
		return out, true
	case '{':
		pairs, err := decodeObject([]byte(trimmed))
		if err != nil {
			return nil, false
		}
		for _, p := range orderPairs(pairs) {
			if e := rawEntry(p.value); e != "" {
				out = append(out, e)
			}
		}
		return out, true
	}

	if !json.Valid([]byte(trimmed)) {
		return nil, false
	}
	return out, true
}

func rawEntry(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case 'n':
		return ""
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't':
		return "true"
	case 'f':
		return "false"
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return ""
		}
		return buf.String()
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return ""
	}
	return formatNumber(f)
}

type jsonPair struct {
	key   string
	value json.RawMessage
}

// decodeObject reads the members of a JSON object in document order.
func decodeObject(data []byte) ([]jsonPair, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var pairs []jsonPair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		pairs = append(pairs, jsonPair{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after object")
	}
	return pairs, nil
}

// orderPairs puts array-index keys first in ascending order and keeps the
// remaining keys in document order. Later duplicates replace earlier ones.
func orderPairs(pairs []jsonPair) []jsonPair {
	seen := make(map[string]int, len(pairs))
	var unique []jsonPair
	for _, p := range pairs {
		if i, ok := seen[p.key]; ok {
			unique[i].value = p.value
			continue
		}
		seen[p.key] = len(unique)
		unique = append(unique, p)
	}

	var indexed, named []jsonPair
	for _, p := range unique {
		if _, ok := arrayIndex(p.key); ok {
			indexed = append(indexed, p)
		} else {
			named = append(named, p)
		}
	}
	sort.SliceStable(indexed, func(i, j int) bool {
		a, _ := arrayIndex(indexed[i].key)
		b, _ := arrayIndex(indexed[j].key)
		return a < b
	})
	return append(indexed, named...)
}

// orderedKeys applies the same ordering to a native map; non-index keys are
// sorted since maps carry no insertion order.
func orderedKeys(m map[string]any) []string {
	var indexed, named []string
	for k := range m {
		if _, ok := arrayIndex(k); ok {
			indexed = append(indexed, k)
		} else {
			named = append(named, k)
		}
	}
	sort.Slice(indexed, func(i, j int) bool {
		a, _ := arrayIndex(indexed[i])
		b, _ := arrayIndex(indexed[j])
		return a < b
	})
	sort.Strings(named)
	return append(indexed, named...)
}

func arrayIndex(key string) (uint32, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}
