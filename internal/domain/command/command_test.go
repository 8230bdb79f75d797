package command

import "testing"

func TestClassify_DiceExpressions(t *testing.T) {
	cases := []string{"1d3", "d8+10", "2d6-1d4+3", "D20", "7", "3+1d6", "1d100-5"}
	for _, in := range cases {
		c := Classify(in)
		if c.Kind != KindPlainRoll {
			t.Fatalf("Classify(%q).Kind=%v want KindPlainRoll", in, c.Kind)
		}
		if c.Tag != TagPlainRoll {
			t.Fatalf("Classify(%q).Tag=%v want TagPlainRoll", in, c.Tag)
		}
		if c.Args[0] != in {
			t.Fatalf("Classify(%q).Args[0]=%q want the whole expression", in, c.Args[0])
		}
		for i := 1; i < ArgSlots; i++ {
			if c.Args[i] != "" {
				t.Fatalf("Classify(%q).Args[%d]=%q want empty", in, i, c.Args[i])
			}
		}
	}
}

func TestClassify_TrimsSurroundingSpace(t *testing.T) {
	c := Classify("  2d6+1  ")
	if c.Kind != KindPlainRoll {
		t.Fatalf("Kind=%v want KindPlainRoll", c.Kind)
	}
	if c.Args[0] != "2d6+1" {
		t.Fatalf("Args[0]=%q want trimmed expression", c.Args[0])
	}
}

func TestClassify_NamedCommands(t *testing.T) {
	cases := []struct {
		in    string
		tag   Tag
		args  []string
		token string
	}{
		{"ra 1 厨艺", TagAttributeRoll, []string{"1", "厨艺"}, "ra"},
		{"rd 3 力量 -1", TagAttributeRoll, []string{"3", "力量", "-1"}, "rd"},
		{"RM 2", TagRewardPenaltyRoll, []string{"2"}, "rm"},
		{"rav 1 cooking 2 cooking", TagOpposedRoll, []string{"1", "cooking", "2", "cooking"}, "rav"},
		{"RAVS 80 1 brawl", TagOpposedRollStrict, []string{"80", "1", "brawl"}, "ravs"},
		{"sc 1 1 1d3", TagSanityCheck, []string{"1", "1", "1d3"}, "sc"},
		{"st 1 int", TagAttributeQuery, []string{"1", "int"}, "st"},
		{"hp 2 -1d10", TagHitPointAdjust, []string{"2", "-1d10"}, "hp"},
		{"r 1d3", TagPlainRoll, []string{"1d3"}, "r"},
	}
	for _, tc := range cases {
		c := Classify(tc.in)
		if c.Kind != KindNamedCommand {
			t.Fatalf("Classify(%q).Kind=%v want KindNamedCommand", tc.in, c.Kind)
		}
		if c.Tag != tc.tag {
			t.Fatalf("Classify(%q).Tag=%v want %v", tc.in, c.Tag, tc.tag)
		}
		if c.Token != tc.token {
			t.Fatalf("Classify(%q).Token=%q want %q", tc.in, c.Token, tc.token)
		}
		for i := 0; i < ArgSlots; i++ {
			want := ""
			if i < len(tc.args) {
				want = tc.args[i]
			}
			if c.Args[i] != want {
				t.Fatalf("Classify(%q).Args[%d]=%q want %q", tc.in, i, c.Args[i], want)
			}
		}
	}
}

func TestClassify_TruncatesBeyondSixArgs(t *testing.T) {
	c := Classify("rav a b c d e f g h")
	if c.Kind != KindNamedCommand {
		t.Fatalf("Kind=%v want KindNamedCommand", c.Kind)
	}
	if c.Args != [ArgSlots]string{"a", "b", "c", "d", "e", "f"} {
		t.Fatalf("Args=%v want first six positional tokens", c.Args)
	}
}

func TestClassify_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "hello", "roll 1d6", "1d", "d", "2x6", "r2d6x"} {
		if c := Classify(in); c.Kind != KindInvalid {
			t.Fatalf("Classify(%q).Kind=%v want KindInvalid", in, c.Kind)
		}
	}
}

func TestParseTag_CaseInsensitive(t *testing.T) {
	for _, tc := range []struct {
		token string
		tag   Tag
	}{
		{"R", TagPlainRoll}, {"Rm", TagRewardPenaltyRoll}, {"RA", TagAttributeRoll},
		{"rd", TagAttributeRoll}, {"RH", TagHiddenRoll}, {"rAv", TagOpposedRoll},
		{"RAVS", TagOpposedRollStrict}, {"Sc", TagSanityCheck}, {"ST", TagAttributeQuery},
		{"hP", TagHitPointAdjust},
	} {
		tag, ok := ParseTag(tc.token)
		if !ok || tag != tc.tag {
			t.Fatalf("ParseTag(%q)=(%v,%v) want (%v,true)", tc.token, tag, ok, tc.tag)
		}
	}
	if _, ok := ParseTag("xyz"); ok {
		t.Fatalf("ParseTag(xyz) unexpectedly resolved")
	}
}
