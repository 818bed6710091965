package controllers

import (
	"net/http"

	"pesaswift/services/loan"

	"github.com/gin-gonic/gin"
)

type CalculatorController struct{}

func NewCalculatorController() *CalculatorController {
	return &CalculatorController{}
}

type QuoteRequest struct {
	Amount   int `json:"amount" binding:"required"`
	TermDays int `json:"term_days" binding:"required"`
}

// POST /loans/quote
// Stateless pricing preview: fee, interest and total repayment for a
// candidate amount and term.
func (cc *CalculatorController) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and term_days are required"})
		return
	}

	quote, err := loan.PriceLoan(req.Amount, req.TermDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "terms": loan.TermOptions})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// GET /loans/terms
func (cc *CalculatorController) Terms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"terms":          loan.TermOptions,
		"min_amount":     loan.MinPrincipal,
		"max_amount":     loan.MaxPrincipal,
		"fee_rate":       loan.ProcessingFeeRate,
		"daily_interest": loan.DailyInterestRate,
	})
}
