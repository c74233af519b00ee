package rules

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestLengthRule_Comparison(t *testing.T) {
	cases := []struct {
		name  string
		rule  LengthRule
		value string
		want  bool
	}{
		{name: "inclusive at minimum", rule: LengthRule{Min: 3, Comparison: Inclusive}, value: "abc", want: true},
		{name: "inclusive below minimum", rule: LengthRule{Min: 3, Comparison: Inclusive}, value: "ab", want: false},
		{name: "exclusive at minimum", rule: LengthRule{Min: 3, Comparison: Exclusive}, value: "abc", want: false},
		{name: "exclusive above minimum", rule: LengthRule{Min: 3, Comparison: Exclusive}, value: "abcd", want: true},
		{name: "whitespace trimmed", rule: LengthRule{Min: 3, Comparison: Inclusive}, value: "  ab  ", want: false},
		{name: "zero minimum empty inclusive", rule: LengthRule{Min: 0, Comparison: Inclusive}, value: "", want: true},
		{name: "zero minimum empty exclusive", rule: LengthRule{Min: 0, Comparison: Exclusive}, value: "   ", want: false},
		{name: "runes not bytes", rule: LengthRule{Min: 2, Comparison: Inclusive}, value: "é", want: false},
		{name: "zero comparison behaves inclusive", rule: LengthRule{Min: 2}, value: "ab", want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rule.Evaluate(Input{Value: tc.value}); got != tc.want {
				t.Fatalf("Evaluate(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestLengthRule_MatchesTrimmedLength(t *testing.T) {
	values := []string{"", " ", "a", " ab ", "hello world", "\tçà\n", strings.Repeat("x", 40)}
	for _, value := range values {
		n := utf8.RuneCountInString(strings.TrimSpace(value))
		for min := 0; min < 12; min++ {
			inclusive := LengthRule{Min: min, Comparison: Inclusive}.Evaluate(Input{Value: value})
			exclusive := LengthRule{Min: min, Comparison: Exclusive}.Evaluate(Input{Value: value})
			if inclusive != (n >= min) {
				t.Fatalf("inclusive(%q, %d) = %v", value, min, inclusive)
			}
			if exclusive != (n > min) {
				t.Fatalf("exclusive(%q, %d) = %v", value, min, exclusive)
			}
		}
	}
}

func TestPhoneRule_CountsStrippedDigits(t *testing.T) {
	values := []string{"", "+1 (555) 010-9999", "555-01", "abc", "12345", "1 2 3 4 5 6 7 8 9 0"}
	for _, value := range values {
		digits := Digits(value)
		for _, threshold := range []int{0, 5, 10} {
			got := PhoneRule{MinDigits: threshold}.Evaluate(Input{Value: value})
			if want := len(digits) >= threshold; got != want {
				t.Fatalf("PhoneRule{%d}(%q) = %v, want %v", threshold, value, got, want)
			}
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("+44 (20) 7946-0018"); got != "442079460018" {
		t.Fatalf("Digits = %q", got)
	}
	if got := Digits("٣٤"); got != "" {
		t.Fatalf("expected non-ASCII digits stripped, got %q", got)
	}
}

func TestSanitizePhone(t *testing.T) {
	got := SanitizePhone("+1 (555) abc-0100 ext.9", DefaultPhoneAllowed)
	if want := "+1 (555) -0100 .9"; got != want {
		t.Fatalf("SanitizePhone = %q, want %q", got, want)
	}
	if got := SanitizePhone("555-0100", ""); got != "5550100" {
		t.Fatalf("SanitizePhone with empty allow list = %q", got)
	}
}

func TestEmailRule(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":           true,
		"first.last@ex.io": true,
		"a@b":              false,
		"a b@c.com":        false,
		"@b.co":            false,
		"a@@b.co":          false,
		"":                 false,
	}
	for value, want := range cases {
		if got := (EmailRule{}).Evaluate(Input{Value: value}); got != want {
			t.Fatalf("EmailRule(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestCheckboxRule(t *testing.T) {
	for _, checked := range []bool{true, false} {
		if got := (CheckboxRule{}).Evaluate(Input{Checked: checked, Value: "on"}); got != checked {
			t.Fatalf("CheckboxRule(checked=%v) = %v", checked, got)
		}
	}
}

func TestEvaluate_NilRulePasses(t *testing.T) {
	if !Evaluate(nil, Input{}) {
		t.Fatalf("expected nil rule to pass")
	}
	if KindOf(nil) != KindNone {
		t.Fatalf("expected KindNone for nil rule")
	}
}
