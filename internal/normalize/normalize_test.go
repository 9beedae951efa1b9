package normalize

import (
	"errors"
	"testing"
	"time"
)

func TestCurrencyToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"$12.34", 1234},
		{"$5.00", 500},
		{"$0.29", 28},
		{"12.34", 1234},
		{" $7 ", 0},
		{"$ 7", 700},
		{"$-1.50", -150},
		{"garbage", 0},
		{"", 0},
		{"$", 0},
		{"$inf", 0},
		{"$NaN", 0},
		{"$1e30", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CurrencyToCents(tt.in); got != tt.want {
				t.Errorf("CurrencyToCents(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	if n, err := ParseQuantity(" 10 "); err != nil || n != 10 {
		t.Errorf("expected 10, got %d (%v)", n, err)
	}

	for _, in := range []string{"7.00", "ten", ""} {
		if _, err := ParseQuantity(in); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("ParseQuantity(%q): expected ErrInvalidQuantity, got %v", in, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Run("Padded date", func(t *testing.T) {
		got, err := ParseDate("03/07/2021")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2021, time.March, 7, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Unpadded month and day", func(t *testing.T) {
		got, err := ParseDate("3/7/2021")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if FormatDate(got) != "03/07/2021" {
			t.Errorf("expected 03/07/2021, got %s", FormatDate(got))
		}
	})

	t.Run("Rejected shapes", func(t *testing.T) {
		for _, in := range []string{"2021-03-07", "13/01/2021", "03/07/21", "03/07/2021 ", "yesterday", ""} {
			if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDate) {
				t.Errorf("ParseDate(%q): expected ErrInvalidDate, got %v", in, err)
			}
		}
	})
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		cents int
		want  string
	}{
		{1234, "$12.34"},
		{500, "$5.0"},
		{1230, "$12.3"},
		{5, "$0.05"},
		{0, "$0.0"},
		{-150, "$-1.5"},
		{1e18, "$1e+16"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.cents); got != tt.want {
			t.Errorf("FormatCurrency(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	for _, cents := range []int{1234, 500, 1230, 5, 0, 99999} {
		if got := CurrencyToCents(FormatCurrency(cents)); got != cents {
			t.Errorf("round trip of %d gave %d via %q", cents, got, FormatCurrency(cents))
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2020, time.January, 1, 8, 30, 0, 0, time.UTC)
	if got := FormatTimestamp(ts); got != "2020-01-01 08:30:00" {
		t.Errorf("unexpected timestamp %q", got)
	}

	ts = ts.Add(1500 * time.Microsecond)
	if got := FormatTimestamp(ts); got != "2020-01-01 08:30:00.001500" {
		t.Errorf("unexpected timestamp %q", got)
	}
}
