package normalization

import "testing"

func TestParseInputString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  User@Example.COM  ", "user@example.com"},
		{"plain", "plain"},
		{"", ""},
		{"  MIXED Case  ", "mixed case"},
	}
	for _, tc := range cases {
		if got := ParseInputString(tc.in); got != tc.want {
			t.Fatalf("ParseInputString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTrimInputString(t *testing.T) {
	if got := TrimInputString("  Keep Case  "); got != "Keep Case" {
		t.Fatalf("TrimInputString = %q", got)
	}
}

func TestParseInputStringPtr(t *testing.T) {
	if got := ParseInputStringPtr(nil); got != nil {
		t.Fatalf("nil input should stay nil")
	}
	in := "  A@B.Com "
	got := ParseInputStringPtr(&in)
	if got == nil || *got != "a@b.com" {
		t.Fatalf("ParseInputStringPtr = %v", got)
	}
}
