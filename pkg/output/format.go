// Package output provides utilities for formatting and displaying loan results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/loan-calc/pkg/constants"
	"github.com/iwvelando/loan-calc/pkg/format"
	"github.com/iwvelando/loan-calc/pkg/loans"
	"github.com/iwvelando/loan-calc/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Report bundles the inputs of a calculation with its result.
type Report struct {
	LoanAmount      float64
	InterestRate    float64
	LoanPeriodYears float64
	TermPrice       float64
	Result          loans.Result
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, report Report, formatter *format.Formatter) error {
	if formatter == nil {
		formatter = format.DefaultFormatter()
	}

	rows := []struct {
		label string
		value string
	}{
		{constants.LabelLoanAmount, formatter.Integer(mathutil.RoundToInt64(report.LoanAmount))},
		{constants.LabelInterestRate, formatter.Decimal(report.InterestRate, 1, 3)},
		{constants.LabelLoanPeriodYears, formatter.Integer(mathutil.RoundToInt64(report.LoanPeriodYears))},
		{constants.LabelTermPrice, formatter.Integer(mathutil.RoundToInt64(report.TermPrice))},
		{"", ""},
		{constants.LabelTotalCost, formatter.Integer(report.Result.TotalCost)},
		{constants.LabelMonthlyCost, formatter.Integer(report.Result.MonthlyCost)},
		{constants.LabelInterestPaid, formatter.Integer(report.Result.InterestPaid)},
	}

	if _, err := fmt.Fprintf(w, "--- Loan Calc ---\n"); err != nil {
		return err
	}
	for _, row := range rows {
		var err error
		if row.label == "" {
			_, err = fmt.Fprintf(w, "%-21s | %s\n", "_____", "_____")
		} else {
			_, err = fmt.Fprintf(w, "%-21s | %s\n", row.label, row.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs an amortization schedule in comma-separated value format.
func CsvFormat(w io.Writer, schedule []loans.Payment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"payment", "amount", "fee", "principal", "interest", "remaining principal"}); err != nil {
		return err
	}
	for _, payment := range schedule {
		record := []string{
			strconv.Itoa(payment.Number),
			money(payment.Payment),
			money(payment.Fee),
			money(payment.Principal),
			money(payment.Interest),
			money(payment.RemainingPrincipal),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func money(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
