package util

import "testing"

func TestNullInt64FromPtr(t *testing.T) {
	if got := NullInt64FromPtr(nil); got.Valid {
		t.Error("nil pointer should yield invalid NullInt64")
	}
	v := int64(42)
	got := NullInt64FromPtr(&v)
	if !got.Valid || got.Int64 != 42 {
		t.Errorf("got %+v, want valid 42", got)
	}
}

func TestParseNullInt64Positive(t *testing.T) {
	tests := []struct {
		in        string
		wantValid bool
		wantVal   int64
	}{
		{"", false, 0},
		{"abc", false, 0},
		{"0", false, 0},
		{"-5", false, 0},
		{"7", true, 7},
	}
	for _, tt := range tests {
		got := ParseNullInt64Positive(tt.in)
		if got.Valid != tt.wantValid || got.Int64 != tt.wantVal {
			t.Errorf("ParseNullInt64Positive(%q) = %+v", tt.in, got)
		}
	}
}

func TestNullStringFromValue(t *testing.T) {
	if got := NullStringFromValue(""); got.Valid {
		t.Error("empty string should yield invalid NullString")
	}
	if got := NullStringFromValue("x"); !got.Valid || got.String != "x" {
		t.Errorf("got %+v, want valid x", got)
	}
}
