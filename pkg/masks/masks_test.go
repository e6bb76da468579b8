package masks

import "testing"

func TestPhone(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"11987", "11987"},
		{"1133334444", "(11) 3333-4444"},
		{"11999998888", "(11) 99999-8888"},
		{"(11) 99999-8888", "(11) 99999-8888"},
		{"119999", "(11) 9999-"},
	}
	for _, tc := range cases {
		if got := Phone(tc.in); got != tc.want {
			t.Fatalf("Phone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTaxID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"12345678", "12345678"},
		{"123456789", "123.456.789-"},
		{"12345678901", "123.456.789-01"},
		{"123.456.789-01", "123.456.789-01"},
		{"12345678000195", "12.345.678/0001-95"},
	}
	for _, tc := range cases {
		if got := TaxID(tc.in); got != tc.want {
			t.Fatalf("TaxID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPostalCode(t *testing.T) {
	t.Parallel()

	if got := PostalCode("01310100"); got != "01310-100" {
		t.Fatalf("unexpected postal mask: %q", got)
	}
	if got := PostalCode("0131"); got != "0131" {
		t.Fatalf("short input must stay bare: %q", got)
	}
	if got := PostalCode("01310-100"); got != "01310-100" {
		t.Fatalf("masking must be stable: %q", got)
	}
}

func TestUnmaskRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{"11999998888", "12345678901", "01310100", "12 3a4-5b6", ""}
	for _, in := range inputs {
		raw := Unmask(in)
		if Unmask(Phone(in)) != raw {
			t.Fatalf("Phone dropped digits for %q", in)
		}
		if Unmask(TaxID(in)) != raw {
			t.Fatalf("TaxID dropped digits for %q", in)
		}
		if Unmask(PostalCode(in)) != raw {
			t.Fatalf("PostalCode dropped digits for %q", in)
		}
	}
}

func TestPostalCodeComplete(t *testing.T) {
	t.Parallel()

	if !PostalCodeComplete("01310-100") {
		t.Fatal("masked 8-digit code should be complete")
	}
	if PostalCodeComplete("01310-10") {
		t.Fatal("7 digits must not be complete")
	}
	if PostalCodeComplete("01310-1000") {
		t.Fatal("9 digits must not be complete")
	}
}
