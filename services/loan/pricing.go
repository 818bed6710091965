package loan

import (
	"errors"
	"math"
)

const (
	ProcessingFeeRate = 0.05 // flat 5% of principal
	DailyInterestRate = 0.01 // simple interest, 1% per day
)

const (
	MinPrincipal = 500
	MaxPrincipal = 50000
)

// TermOptions are the repayment periods on offer, in days.
var TermOptions = []int{14, 30, 60}

var (
	ErrInvalidPrincipal = errors.New("principal must be a positive amount")
	ErrInvalidTerm      = errors.New("term must be one of 14, 30 or 60 days")
)

// Quote is the priced offer for a principal/term pair. It is derived from the
// application record and recomputed on every change, never stored on its own.
type Quote struct {
	Principal int `json:"principal"`
	TermDays  int `json:"term_days"`
	Fee       int `json:"fee"`
	Interest  int `json:"interest"`
	Total     int `json:"total"`
}

func IsValidTerm(termDays int) bool {
	for _, t := range TermOptions {
		if t == termDays {
			return true
		}
	}
	return false
}

// PriceLoan computes the fee, interest and total repayment for a loan.
// Out-of-range inputs are rejected rather than clamped: the stages that call
// this only submit principals and terms that already passed validation.
func PriceLoan(principal, termDays int) (Quote, error) {
	if principal <= 0 {
		return Quote{}, ErrInvalidPrincipal
	}
	if !IsValidTerm(termDays) {
		return Quote{}, ErrInvalidTerm
	}
	fee := int(math.Round(float64(principal) * ProcessingFeeRate))
	interest := int(math.Round(float64(principal) * DailyInterestRate * float64(termDays)))
	return Quote{
		Principal: principal,
		TermDays:  termDays,
		Fee:       fee,
		Interest:  interest,
		Total:     principal + fee + interest,
	}, nil
}
