package db

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/ansiversa/quizdb/internal/errs"
)

func TestCoerceInteger(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"int64", int64(7), 7},
		{"int", 42, 42},
		{"float truncates", 3.9, 3},
		{"negative float truncates toward zero", -3.9, -3},
		{"string", "12", 12},
		{"string prefix", "12abc", 12},
		{"decimal string", "3.7", 3},
		{"leading whitespace and sign", "  -8", -8},
		{"true", true, 1},
		{"false", false, 0},
		{"json number", json.Number("15"), 15},
		{"empty string", "", -1},
		{"garbage", "abc", -1},
		{"nil", nil, -1},
		{"NaN", math.NaN(), -1},
		{"infinity", math.Inf(1), -1},
		{"slice", []any{1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceInteger(tt.in, -1); got != tt.want {
				t.Fatalf("CoerceInteger(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestRequireInteger(t *testing.T) {
	n, err := RequireInteger("id", "17")
	if err != nil || n != 17 {
		t.Fatalf("RequireInteger = %d, %v", n, err)
	}

	_, err = RequireInteger("id", "x")
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Errors[0].Field != "id" {
		t.Fatalf("field = %q", verr.Errors[0].Field)
	}
}

func TestCoerceOptionalInteger(t *testing.T) {
	if CoerceOptionalInteger(nil) != nil {
		t.Error("nil should be absent")
	}
	if CoerceOptionalInteger("") != nil {
		t.Error("empty string should be absent")
	}
	if CoerceOptionalInteger("nope") != nil {
		t.Error("unparseable should be absent")
	}
	if got := CoerceOptionalInteger("4"); got == nil || *got != 4 {
		t.Errorf("got %v, want 4", got)
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{7.5, 7.5},
		{int64(3), 3},
		{"2.25", 2.25},
		{" 10 ", 10},
		{"12abc", -1},
		{"", -1},
		{true, 1},
		{nil, -1},
	}
	for _, tt := range tests {
		if got := CoerceNumber(tt.in, -1); got != tt.want {
			t.Errorf("CoerceNumber(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCoerceBoolean(t *testing.T) {
	tests := []struct {
		in       any
		fallback bool
		want     bool
	}{
		{true, false, true},
		{int64(1), false, true},
		{int64(0), true, false},
		{2.5, false, true},
		{"YES", false, true},
		{" y ", false, true},
		{"1", false, true},
		{"No", true, false},
		{"false", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
		{nil, true, true},
	}
	for _, tt := range tests {
		if got := CoerceBoolean(tt.in, tt.fallback); got != tt.want {
			t.Errorf("CoerceBoolean(%v, %v) = %v, want %v", tt.in, tt.fallback, got, tt.want)
		}
	}
}

func TestCoerceString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"x", "x"},
		{int64(5), "5"},
		{2.5, "2.5"},
		{3.0, "3"},
		{true, "true"},
		{nil, "fb"},
		{[]any{}, "fb"},
	}
	for _, tt := range tests {
		if got := CoerceString(tt.in, "fb"); got != tt.want {
			t.Errorf("CoerceString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if CoerceNullableString("") != nil || CoerceNullableString(nil) != nil {
		t.Error("empty and nil should be absent")
	}
	if got := CoerceNullableString("icon.svg"); got == nil || *got != "icon.svg" {
		t.Errorf("got %v", got)
	}
}

func TestParseJSONValue(t *testing.T) {
	v, err := ParseJSONValue("responses", `{"1":"a"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, map[string]any{"1": "a"}) {
		t.Fatalf("got %#v", v)
	}

	if v, err := ParseJSONValue("responses", "   "); v != nil || err != nil {
		t.Fatalf("blank should be nil, got %v, %v", v, err)
	}
	if v, err := ParseJSONValue("responses", nil); v != nil || err != nil {
		t.Fatalf("nil should be nil, got %v, %v", v, err)
	}

	passthrough := []any{"a"}
	if v, _ := ParseJSONValue("responses", passthrough); !reflect.DeepEqual(v, passthrough) {
		t.Fatalf("structured values should pass through, got %#v", v)
	}

	_, err = ParseJSONValue("responses", "{not json")
	var derr *errs.DecodeError
	if !errors.As(err, &derr) || derr.Field != "responses" {
		t.Fatalf("expected DecodeError for responses, got %v", err)
	}

	if _, err := ParseJSONValue("responses", 12); !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError for unsupported type, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)
	tests := []struct {
		name string
		in   any
	}{
		{"time", want},
		{"rfc3339", "2024-03-05T10:20:30Z"},
		{"rfc3339 offset", "2024-03-05T12:20:30+02:00"},
		{"sql datetime", "2024-03-05 10:20:30"},
		{"unix millis", float64(want.UnixMilli())},
		{"unix millis int", want.UnixMilli()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(want) {
				t.Fatalf("got %v, want %v", got, want)
			}
		})
	}

	if _, err := ParseDate("yesterday"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := ParseDate(nil); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for nil, got %v", err)
	}
}

func TestToStringArray(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"string slice drops empties", []string{"a", "", "b"}, []string{"a", "b"}},
		{"mixed slice", []any{"a", int64(2), nil, true, map[string]any{"k": "v"}}, []string{"a", "2", "true", `{"k":"v"}`}},
		{"map orders index keys first", map[string]any{"b": "y", "1": "second", "0": "first", "a": "x"}, []string{"first", "second", "x", "y"}},
		{"json array", `["A","B",""]`, []string{"A", "B"}},
		{"json array with numbers", `[1, 2.5, null]`, []string{"1", "2.5"}},
		{"json object keeps document order for named keys", `{"z":"last?","1":"b","0":"a","m":"mid"}`, []string{"a", "b", "last?", "mid"}},
		{"json nested", `[["x"],{"k":1}]`, []string{`["x"]`, `{"k":1}`}},
		{"plain string", "hello", []string{"hello"}},
		{"broken json", `["a",`, []string{`["a",`}},
		{"json scalar string", `"hello"`, []string{}},
		{"json number", `42`, []string{}},
		{"whitespace", "   ", []string{}},
		{"unsupported", 12, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToStringArray(tt.in)
			if got == nil {
				t.Fatal("ToStringArray must never return nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ToStringArray(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCoerceIntegerIsStableThroughItsString(t *testing.T) {
	inputs := []any{
		"12", "12abc", " -8 ", "+4", "3.7", "-0.5", "9223372036854775807",
		3.9, -3.9, 1e18, float32(2.5), json.Number("15"),
		true, false,
		"", "abc", "--1", nil, math.NaN(), []any{1},
	}
	for _, in := range inputs {
		first := CoerceInteger(in, 0)
		if again := CoerceInteger(strconv.FormatInt(first, 10), 0); again != first {
			t.Errorf("CoerceInteger(%#v) = %d, but its string coerces to %d", in, first, again)
		}
	}
}

func TestToStringArrayIsIdempotent(t *testing.T) {
	inputs := []any{
		`["a","b",""]`,
		`[1, 2.5, true, null, ["x"]]`,
		`{"2":"c","0":"a","1":"b"}`,
		`{"z":"last","1":"b","m":"mid","0":"a"}`,
		map[string]any{"1": "b", "0": "a", "name": "n", "": "blank key"},
		[]any{"a", int64(2), map[string]any{"k": "v"}},
		"red,green,blue",
		"  spaced , csv ",
		`{"a":`,
		`["unterminated`,
		"",
		nil,
	}
	for _, in := range inputs {
		once := ToStringArray(in)
		if twice := ToStringArray(once); !reflect.DeepEqual(twice, once) {
			t.Errorf("ToStringArray(%#v): once %#v, twice %#v", in, once, twice)
		}
	}
}
