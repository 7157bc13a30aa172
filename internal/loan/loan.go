// Package loan simulates fixed-installment personal loans before the client applies.
package loan

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	Approved = "Loan approved"
	Rejected = "Loan not approved (portion with commitment of more than 30% of income)"
)

var (
	// MonthlyRate is the interest charged per month.
	MonthlyRate = decimal.RequireFromString("0.08")
	// MaxCommitment is the share of monthly income an installment may take.
	MaxCommitment = decimal.RequireFromString("0.3")

	ErrInvalidInput = errors.New("loan value, term and income must be positive")
)

const divPrecision = 16

type Simulation struct {
	Value              decimal.Decimal `json:"value"`
	Term               int             `json:"term"`
	MonthlyInstallment decimal.Decimal `json:"monthlyInstallment"`
	TotalPayment       decimal.Decimal `json:"totalPayment"`
	Approved           bool            `json:"approved"`
	Message            string          `json:"message"`
}

// Simulate prices a loan of value over term months with the price table
// formula pmt = v·r / (1 − (1+r)^−n). It is approved when the installment
// does not exceed 30% of monthlyIncome. Amounts are rounded to cents after
// the approval check.
func Simulate(value decimal.Decimal, term int, monthlyIncome decimal.Decimal) (Simulation, error) {
	if !value.IsPositive() || term < 1 || !monthlyIncome.IsPositive() {
		return Simulation{}, ErrInvalidInput
	}

	n := decimal.NewFromInt(int64(term))
	growth := decimal.NewFromInt(1).Add(MonthlyRate).Pow(n)
	discount := decimal.NewFromInt(1).DivRound(growth, divPrecision)
	pmt := value.Mul(MonthlyRate).DivRound(decimal.NewFromInt(1).Sub(discount), divPrecision)

	approved := pmt.LessThanOrEqual(monthlyIncome.Mul(MaxCommitment))
	msg := Rejected
	if approved {
		msg = Approved
	}

	return Simulation{
		Value:              value,
		Term:               term,
		MonthlyInstallment: pmt.Round(2),
		TotalPayment:       pmt.Mul(n).Round(2),
		Approved:           approved,
		Message:            msg,
	}, nil
}
