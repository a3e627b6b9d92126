package validation

import (
	"fmt"

	"github.com/iwvelando/loan-calc/pkg/constants"
	"github.com/iwvelando/loan-calc/pkg/mathutil"
)

// ValidateInputs reports every calculator input outside its slider range.
// The returned warnings are informational; callers clamp the values.
func ValidateInputs(loanAmount, interestRate, loanPeriodYears, termPrice float64) []string {
	var warnings []string

	check := func(name string, value, max float64) {
		switch {
		case !mathutil.Finite(value):
			warnings = append(warnings, fmt.Sprintf("%s is not a finite number", name))
		case value < 0 || value > max:
			warnings = append(warnings, fmt.Sprintf("%s %.2f is outside the range 0 to %.0f", name, value, max))
		}
	}

	check("loan amount", loanAmount, constants.MaxLoanAmount)
	check("interest rate", interestRate, constants.MaxInterestRate)
	check("loan period", loanPeriodYears, constants.MaxLoanPeriodYears)
	check("term price", termPrice, constants.MaxTermPrice)

	return warnings
}
