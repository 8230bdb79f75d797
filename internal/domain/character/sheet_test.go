package character

import (
	"errors"
	"testing"
)

func TestSheet_ValueIsCaseInsensitive(t *testing.T) {
	s := NewSheet(1)
	s.Set("INT", 60)
	if v, ok := s.Value("int"); !ok || v != 60 {
		t.Fatalf("Value(int)=(%d,%v) want (60,true)", v, ok)
	}
	if v, ok := s.Value("Int"); !ok || v != 60 {
		t.Fatalf("Value(Int)=(%d,%v) want (60,true)", v, ok)
	}
	if _, ok := s.Value("str"); ok {
		t.Fatalf("Value(str) unexpectedly present")
	}
}

func TestSheet_CurrentFallsBackToMax(t *testing.T) {
	s := NewSheet(1)
	s.Set("san", 50)
	if got := s.Current("san"); got != 50 {
		t.Fatalf("Current(san)=%d want 50", got)
	}
	s.Set("current_san", 42)
	if got := s.Current("san"); got != 42 {
		t.Fatalf("Current(san)=%d want 42", got)
	}
}

func TestSheet_AdjustHPClamps(t *testing.T) {
	s := NewSheet(1)
	s.Set("hp", 12)
	if got := s.AdjustHP(5); got != 12 {
		t.Fatalf("AdjustHP(+5)=%d want clamp at max 12", got)
	}
	if got := s.AdjustHP(-20); got != 0 {
		t.Fatalf("AdjustHP(-20)=%d want floor 0", got)
	}
	if got := s.AdjustHP(3); got != 3 {
		t.Fatalf("AdjustHP(+3)=%d want 3", got)
	}
}

func TestSheet_SanAdjustments(t *testing.T) {
	s := NewSheet(1)
	s.Set("san", 50)
	if got := s.SpendSan(8); got != 42 {
		t.Fatalf("SpendSan(8)=%d want 42", got)
	}
	if got := s.SpendSan(100); got != 0 {
		t.Fatalf("SpendSan(100)=%d want floor 0", got)
	}
	if got := s.RestoreSan(5); got != 5 {
		t.Fatalf("RestoreSan(5)=%d want 5", got)
	}
	if got := s.RestoreSan(100); got != 50 {
		t.Fatalf("RestoreSan(100)=%d want cap at max 50", got)
	}
}

func TestParseUpload(t *testing.T) {
	attrs, err := ParseUpload(".st 力量50 san60 hp12 int55")
	if err != nil {
		t.Fatalf("ParseUpload error: %v", err)
	}
	want := map[string]int{
		"力量": 50,
		"san": 60, "current_san": 60,
		"hp": 12, "current_hp": 12,
		"int": 55,
	}
	if len(attrs) != len(want) {
		t.Fatalf("got %d attrs want %d: %v", len(attrs), len(want), attrs)
	}
	for name, value := range want {
		if attrs[name] != value {
			t.Fatalf("attrs[%q]=%d want %d", name, attrs[name], value)
		}
	}
}

func TestParseUpload_RejectsMissingPrefix(t *testing.T) {
	if _, err := ParseUpload("str50"); !errors.Is(err, ErrBadUploadFormat) {
		t.Fatalf("expected ErrBadUploadFormat, got %v", err)
	}
}

func TestParseUpload_RejectsNoPairs(t *testing.T) {
	if _, err := ParseUpload(".st ???"); !errors.Is(err, ErrBadUploadFormat) {
		t.Fatalf("expected ErrBadUploadFormat, got %v", err)
	}
}
