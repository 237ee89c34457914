package difficulty

import (
	"errors"
	"testing"
)

func TestParseAcronyms(t *testing.T) {
	cases := []struct {
		acronyms []string
		want     Modifier
	}{
		{nil, None},
		{[]string{"HD"}, Hidden},
		{[]string{"HD", "DT"}, Hidden | DoubleTime},
		{[]string{"hr", "fl"}, HardRock | Flashlight},
		{[]string{"NC"}, Nightcore | DoubleTime},
		{[]string{"CL"}, Classic},
		{[]string{"LZ"}, Lazer},
	}

	for _, tc := range cases {
		got, err := ParseAcronyms(tc.acronyms)
		if err != nil {
			t.Errorf("%v: unexpected error %v", tc.acronyms, err)
			continue
		}

		if got != tc.want {
			t.Errorf("%v = %v, want %v", tc.acronyms, got, tc.want)
		}
	}
}

func TestParseAcronymsRejectsUnknown(t *testing.T) {
	_, err := ParseAcronyms([]string{"XX"})
	if !errors.Is(err, ErrUnsupportedModifier) {
		t.Errorf("err = %v, want ErrUnsupportedModifier", err)
	}
}

func TestParseAcronymsRejectsIncompatible(t *testing.T) {
	cases := [][]string{
		{"EZ", "HR"},
		{"DT", "HT"},
		{"NC", "HT"},
		{"CL", "LZ"},
	}

	for _, acronyms := range cases {
		if _, err := ParseAcronyms(acronyms); !errors.Is(err, ErrIncompatibleModifier) {
			t.Errorf("%v: err = %v, want ErrIncompatibleModifier", acronyms, err)
		}
	}
}

func TestModifierString(t *testing.T) {
	if got := (Hidden | DoubleTime).String(); got != "HDDT" {
		t.Errorf("String() = %q, want HDDT", got)
	}

	if got := None.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}
