package format

import (
	"errors"
	"math"
	"testing"
)

func TestFormatterInteger(t *testing.T) {
	formatter := DefaultFormatter()

	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{"Zero", 0, "0"},
		{"Small positive", 42, "42"},
		{"Small negative", -42, "-42"},
		{"Exactly three digits", 999, "999"},
		{"First group", 1000, "1 000"},
		{"Millions", 1234567, "1 234 567"},
		{"Negative millions", -1234567, "-1 234 567"},
		{"Default total cost", 3704100, "3 704 100"},
		{"Largest int64", math.MaxInt64, "9 223 372 036 854 775 807"},
		{"Smallest int64", math.MinInt64, "-9 223 372 036 854 775 808"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatter.Integer(tt.input)
			if result != tt.expected {
				t.Errorf("Integer(%d) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name      string
		separator string
		input     int64
		expected  string
		expectErr bool
	}{
		{name: "Space", separator: " ", input: 1234567, expected: "1 234 567"},
		{name: "Comma", separator: ",", input: 1234567, expected: "1,234,567"},
		{name: "Apostrophe", separator: "'", input: -1234567, expected: "-1'234'567"},
		{name: "Narrow no-break space", separator: "\u202f", input: 1234, expected: "1\u202f234"},
		{name: "Empty separator", separator: "", expectErr: true},
		{name: "Two characters", separator: "..", expectErr: true},
		{name: "Digit", separator: "0", expectErr: true},
		{name: "Minus sign", separator: "-", expectErr: true},
		{name: "Plus sign", separator: "+", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter, err := NewFormatter(Options{Separator: tt.separator})
			if tt.expectErr {
				if !errors.Is(err, ErrInvalidSeparator) {
					t.Fatalf("expected ErrInvalidSeparator, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFormatter() error = %v", err)
			}
			if formatter.Separator() != tt.separator {
				t.Errorf("Separator() = %q, expected %q", formatter.Separator(), tt.separator)
			}
			if result := formatter.Integer(tt.input); result != tt.expected {
				t.Errorf("Integer(%d) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatterDecimal(t *testing.T) {
	formatter := DefaultFormatter()

	tests := []struct {
		name        string
		input       float64
		minDecimals int
		maxDecimals int
		expected    string
	}{
		{"Default interest rate", 5.5, 1, 3, "5.5"},
		{"Whole number padded", 5, 1, 3, "5.0"},
		{"Zero padded", 0, 1, 3, "0.0"},
		{"Three decimals kept", 3.125, 1, 3, "3.125"},
		{"Extra decimals dropped", 7.12345, 1, 3, "7.123"},
		{"Upper bound", 20, 2, 3, "20.00"},
		{"No minimum", 4, 0, 3, "4"},
		{"Maximum below minimum", 1.5, 2, 1, "1.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatter.Decimal(tt.input, tt.minDecimals, tt.maxDecimals)
			if result != tt.expected {
				t.Errorf("Decimal(%v, %d, %d) = %q, expected %q",
					tt.input, tt.minDecimals, tt.maxDecimals, result, tt.expected)
			}
		})
	}
}
