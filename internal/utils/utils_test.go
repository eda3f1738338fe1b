package utils

import "testing"

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount   int64
		currency string
		want     string
	}{
		{5600, "RUB", "5 600 RUB"},
		{5600, "", "5 600 RUB"},
		{1234567, "RUB", "1 234 567 RUB"},
		{0, "RUB", "0 RUB"},
		{-5600, "RUB", "-5 600 RUB"},
		{999, "USD", "999 USD"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.amount, tc.currency); got != tc.want {
			t.Fatalf("FormatPrice(%d, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  led "); got != "LED" {
		t.Fatalf("NormalizeCode = %q, want LED", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "SVO", "LED"); got != "SVO" {
		t.Fatalf("FirstNonEmpty = %q, want SVO", got)
	}
	if got := FirstNonEmpty("", "  "); got != "" {
		t.Fatalf("FirstNonEmpty of blanks = %q, want empty", got)
	}
}

func TestTimeHM(t *testing.T) {
	cases := map[string]string{
		"23:15:00": "23:15",
		"23:15":    "23:15",
		" 08:45 ":  "08:45",
		"9:5":      "9:5",
		"":         "",
	}
	for in, want := range cases {
		if got := TimeHM(in); got != want {
			t.Fatalf("TimeHM(%q) = %q, want %q", in, got, want)
		}
	}
}
