// Package calculator holds the loan calculator state shared by the desktop
// and web front ends.
package calculator

import (
	"github.com/iwvelando/loan-calc/pkg/constants"
	"github.com/iwvelando/loan-calc/pkg/format"
	"github.com/iwvelando/loan-calc/pkg/loans"
	"github.com/iwvelando/loan-calc/pkg/mathutil"
	"github.com/iwvelando/loan-calc/pkg/output"
	"github.com/iwvelando/loan-calc/pkg/validation"
)

// Inputs are the four user-adjustable values. They are the only state that
// survives a restart.
type Inputs struct {
	LoanAmount      float64 `json:"loan_amount" yaml:"loanAmount" mapstructure:"loanAmount"`
	InterestRate    float64 `json:"interest_rate" yaml:"interestRate" mapstructure:"interestRate"`
	LoanPeriodYears float64 `json:"loan_period_years" yaml:"loanPeriodYears" mapstructure:"loanPeriodYears"`
	TermPrice       float64 `json:"term_price" yaml:"termPrice" mapstructure:"termPrice"`
}

// DefaultInputs returns the values shown on first start.
func DefaultInputs() Inputs {
	return Inputs{
		LoanAmount:      constants.DefaultLoanAmount,
		InterestRate:    constants.DefaultInterestRate,
		LoanPeriodYears: constants.DefaultLoanPeriodYears,
		TermPrice:       constants.DefaultTermPrice,
	}
}

// Normalize replaces non-finite values with their defaults and clamps
// every value into its slider range.
func (in Inputs) Normalize() Inputs {
	def := DefaultInputs()
	return Inputs{
		LoanAmount:      mathutil.Clamp(mathutil.FiniteOr(in.LoanAmount, def.LoanAmount), 0, constants.MaxLoanAmount),
		InterestRate:    mathutil.Clamp(mathutil.FiniteOr(in.InterestRate, def.InterestRate), 0, constants.MaxInterestRate),
		LoanPeriodYears: mathutil.Clamp(mathutil.FiniteOr(in.LoanPeriodYears, def.LoanPeriodYears), 0, constants.MaxLoanPeriodYears),
		TermPrice:       mathutil.Clamp(mathutil.FiniteOr(in.TermPrice, def.TermPrice), 0, constants.MaxTermPrice),
	}
}

// Warnings lists the inputs that Normalize would change.
func (in Inputs) Warnings() []string {
	return validation.ValidateInputs(in.LoanAmount, in.InterestRate, in.LoanPeriodYears, in.TermPrice)
}

// Result runs the annuity calculation on the inputs.
func (in Inputs) Result() loans.Result {
	return loans.CalculateLoan(in.LoanAmount, in.InterestRate, in.LoanPeriodYears, in.TermPrice)
}

// LoanConfig converts the inputs for the schedule generator.
func (in Inputs) LoanConfig() loans.LoanConfig {
	return loans.LoanConfig{
		Principal:    in.LoanAmount,
		InterestRate: in.InterestRate,
		PeriodYears:  in.LoanPeriodYears,
		TermPrice:    in.TermPrice,
	}
}

// Report pairs the inputs with their result for the output printers.
func (in Inputs) Report() output.Report {
	return output.Report{
		LoanAmount:      in.LoanAmount,
		InterestRate:    in.InterestRate,
		LoanPeriodYears: in.LoanPeriodYears,
		TermPrice:       in.TermPrice,
		Result:          in.Result(),
	}
}

// Line is one labelled value as shown in the UI.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Display holds the formatted results, in display order.
type Display struct {
	TotalCost    Line `json:"totalCost"`
	MonthlyCost  Line `json:"monthlyCost"`
	InterestPaid Line `json:"interestPaid"`
}

// Lines returns the results in display order.
func (d Display) Lines() []Line {
	return []Line{d.TotalCost, d.MonthlyCost, d.InterestPaid}
}

// Calculator is the live UI state: the persisted inputs plus the formatter,
// which is rebuilt on every start rather than stored.
type Calculator struct {
	Inputs
	formatter *format.Formatter
}

// New returns a Calculator with default inputs. A nil formatter selects
// format.DefaultFormatter.
func New(formatter *format.Formatter) *Calculator {
	if formatter == nil {
		formatter = format.DefaultFormatter()
	}
	return &Calculator{Inputs: DefaultInputs(), formatter: formatter}
}

// Formatter returns the formatter used for display.
func (c *Calculator) Formatter() *format.Formatter {
	return c.formatter
}

// SetInputs replaces the inputs after normalizing them.
func (c *Calculator) SetInputs(in Inputs) {
	c.Inputs = in.Normalize()
}

// Display recomputes the result and formats it.
func (c *Calculator) Display() Display {
	return FormatResult(c.Result(), c.formatter)
}

// FormatResult formats a result with the shared labels.
func FormatResult(result loans.Result, formatter *format.Formatter) Display {
	return Display{
		TotalCost:    Line{Label: constants.LabelTotalCost, Value: formatter.Integer(result.TotalCost)},
		MonthlyCost:  Line{Label: constants.LabelMonthlyCost, Value: formatter.Integer(result.MonthlyCost)},
		InterestPaid: Line{Label: constants.LabelInterestPaid, Value: formatter.Integer(result.InterestPaid)},
	}
}
