// Package format renders calculator figures for display.
package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/iwvelando/loan-calc/pkg/constants"
)

// ErrInvalidSeparator is returned when a digit group separator cannot be
// told apart from the digits or the sign of a number.
var ErrInvalidSeparator = errors.New("invalid digit group separator")

// Options configures a Formatter.
type Options struct {
	// Separator is inserted between groups of three digits. It must be a
	// single character that is not a digit or a sign.
	Separator string
}

// Formatter renders whole numbers with grouped thousands and a "-" prefix
// for negative values. It is immutable and safe for concurrent use.
type Formatter struct {
	separator string
}

// NewFormatter validates opts and builds a Formatter.
func NewFormatter(opts Options) (*Formatter, error) {
	sep := opts.Separator
	if utf8.RuneCountInString(sep) != 1 {
		return nil, fmt.Errorf("%w: %q must be exactly one character", ErrInvalidSeparator, sep)
	}
	r, _ := utf8.DecodeRuneInString(sep)
	if r == utf8.RuneError || unicode.IsDigit(r) || strings.ContainsRune("+-", r) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeparator, sep)
	}
	return &Formatter{separator: sep}, nil
}

// DefaultFormatter returns the space separated formatter used by the UI.
func DefaultFormatter() *Formatter {
	return &Formatter{separator: constants.DefaultSeparator}
}

// Separator returns the configured digit group separator.
func (f *Formatter) Separator() string {
	return f.separator
}

// Integer formats n with digit grouping, e.g. 1234567 -> "1 234 567".
func (f *Formatter) Integer(n int64) string {
	grouped := humanize.Comma(n)
	if f.separator == "," {
		return grouped
	}
	return strings.ReplaceAll(grouped, ",", f.separator)
}

// Decimal formats v with at least minDecimals and at most maxDecimals
// fractional digits, dropping trailing zeros in between.
func (f *Formatter) Decimal(v float64, minDecimals, maxDecimals int) string {
	if maxDecimals < minDecimals {
		maxDecimals = minDecimals
	}
	s := humanize.FtoaWithDigits(v, maxDecimals)
	if minDecimals <= 0 {
		return s
	}

	decimals := 0
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		decimals = len(s) - dot - 1
	} else {
		s += "."
	}
	if decimals >= minDecimals {
		return s
	}
	return s + strings.Repeat("0", minDecimals-decimals)
}
