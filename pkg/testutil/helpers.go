// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/iwvelando/loan-calc/pkg/loans"
)

// FindPayment finds a payment by its number in the schedule.
// Returns a pointer to the payment if found, nil otherwise.
func FindPayment(schedule []loans.Payment, number int) *loans.Payment {
	for i := range schedule {
		if schedule[i].Number == number {
			return &schedule[i]
		}
	}
	return nil
}

// SumPrincipal adds up the principal portions of a schedule.
func SumPrincipal(schedule []loans.Payment) float64 {
	var total float64
	for _, payment := range schedule {
		total += payment.Principal
	}
	return total
}

// WithinTolerance reports whether got is within tolerance of expected.
func WithinTolerance(got, expected, tolerance float64) bool {
	return math.Abs(got-expected) <= tolerance
}
