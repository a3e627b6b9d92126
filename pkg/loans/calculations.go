// Package loans provides the annuity loan calculations behind the calculator.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-calc/pkg/constants"
	"github.com/iwvelando/loan-calc/pkg/mathutil"
	"go.uber.org/zap"
)

// MaxScheduleRows bounds the number of rows GenerateSchedule produces.
const MaxScheduleRows = 100 * constants.MonthsPerYear

// Result holds the repayment terms shown to the user, in whole units.
type Result struct {
	TotalCost    int64 `json:"totalCost"`
	MonthlyCost  int64 `json:"monthlyCost"`
	InterestPaid int64 `json:"interestPaid"`
}

// Payment holds the values for a given payment.
type Payment struct {
	Number             int     `json:"number"`
	Payment            float64 `json:"payment"`
	Fee                float64 `json:"fee"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// LoanConfig represents loan configuration parameters
type LoanConfig struct {
	Principal    float64
	InterestRate float64 // percent per year
	PeriodYears  float64
	TermPrice    float64 // fixed fee per payment
}

// NumberOfPayments converts a loan period in years into monthly payments.
func NumberOfPayments(periodYears float64) float64 {
	return periodYears * constants.MonthsPerYear
}

// MonthlyInterestRate converts an annual percentage into a monthly rate.
func MonthlyInterestRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula, without fees or rounding. A term of zero
// payments yields zero.
func CalculateMonthlyPayment(principal, annualInterestRate, termMonths float64) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / termMonths
	}

	periodicInterestRate := MonthlyInterestRate(annualInterestRate)
	// growth is (1+r)^n - 1, computed without cancellation for tiny r.
	growth := math.Expm1(termMonths * math.Log1p(periodicInterestRate))
	if growth == 0 {
		return principal / termMonths
	}
	return principal * periodicInterestRate * (growth + 1) / growth
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * MonthlyInterestRate(annualInterestRate)
}

// CalculateLoan computes the monthly cost, total cost and total interest of an
// annuity loan with a fixed fee added to every monthly payment.
//
// The monthly cost is rounded before it is multiplied by the number of
// payments. A zero interest rate spreads the principal evenly over the
// payments, a period of zero payments yields an all-zero Result, and
// non-finite inputs are treated as zero.
func CalculateLoan(loanAmount, interestPercentage, loanPeriodYears, pricePerTerm float64) Result {
	loanAmount = mathutil.FiniteOr(loanAmount, 0)
	interestPercentage = mathutil.FiniteOr(interestPercentage, 0)
	loanPeriodYears = mathutil.FiniteOr(loanPeriodYears, 0)
	pricePerTerm = mathutil.FiniteOr(pricePerTerm, 0)

	numPayments := NumberOfPayments(loanPeriodYears)
	if numPayments <= 0 {
		return Result{}
	}

	monthlyInstallment := math.Round(
		CalculateMonthlyPayment(loanAmount, interestPercentage, numPayments) + pricePerTerm)
	totalCost := monthlyInstallment * numPayments

	return Result{
		TotalCost:    mathutil.RoundToInt64(totalCost),
		MonthlyCost:  mathutil.RoundToInt64(monthlyInstallment),
		InterestPaid: mathutil.RoundToInt64(totalCost - loanAmount),
	}
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule splits every monthly payment into fee, interest and
// principal. Amounts are rounded to cents for presentation while the running
// balance keeps full precision. A fractional number of payments is rounded up
// and the final payment clears whatever balance is left.
func (g *AmortizationScheduleGenerator) GenerateSchedule(loan LoanConfig) ([]Payment, error) {
	if !mathutil.Finite(loan.Principal) || !mathutil.Finite(loan.InterestRate) ||
		!mathutil.Finite(loan.PeriodYears) || !mathutil.Finite(loan.TermPrice) {
		return nil, fmt.Errorf("loan parameters must be finite numbers")
	}

	numPayments := NumberOfPayments(loan.PeriodYears)
	if numPayments <= 0 {
		return nil, nil
	}

	rows := int(math.Ceil(numPayments))
	if rows > MaxScheduleRows {
		return nil, fmt.Errorf("schedule of %d payments exceeds the limit of %d", rows, MaxScheduleRows)
	}

	monthlyPayment := CalculateMonthlyPayment(loan.Principal, loan.InterestRate, numPayments)
	g.logger.Debug(fmt.Sprintf("generating %d payments of %.2f", rows, monthlyPayment+loan.TermPrice),
		zap.String("op", "loans.GenerateSchedule"),
	)

	schedule := make([]Payment, 0, rows)
	balance := loan.Principal
	for month := 1; month <= rows; month++ {
		interest := CalculateInterestPayment(balance, loan.InterestRate)
		principal := monthlyPayment - interest
		if month == rows || principal > balance {
			// Clear the residue left by floating point error or a partial
			// final period.
			principal = balance
		}
		balance -= principal

		schedule = append(schedule, Payment{
			Number:             month,
			Payment:            mathutil.Round(principal + interest + loan.TermPrice),
			Fee:                mathutil.Round(loan.TermPrice),
			Principal:          mathutil.Round(principal),
			Interest:           mathutil.Round(interest),
			RemainingPrincipal: mathutil.Round(balance),
		})
	}

	return schedule, nil
}
