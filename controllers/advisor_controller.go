package controllers

import (
	"net/http"

	"pesaswift/services/advisor"
	"pesaswift/services/loan"
	"pesaswift/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type AdvisorController struct {
	RDB    *redis.Client
	client *advisor.Client
}

func NewAdvisorController(rdb *redis.Client, client *advisor.Client) *AdvisorController {
	return &AdvisorController{RDB: rdb, client: client}
}

type EligibilityRequest struct {
	Amount        int `json:"amount"`
	TermDays      int `json:"term_days"`
	MonthlyIncome int `json:"monthly_income"`
}

// POST /applications/:id/eligibility
// Advisory only: the verdict never blocks the workflow. The check is rate
// limited per application so a stuck client cannot burn through the quota.
func (ac *AdvisorController) CheckEligibility(c *gin.Context) {
	var req EligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Amount <= 0 || !loan.IsValidTerm(req.TermDays) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and a valid term_days are required"})
		return
	}

	limiterKey := c.Param("id")
	if ok, reason := utils.CanRequestAdvice(ac.RDB, limiterKey); !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": reason})
		return
	}
	utils.MarkAdviceRequested(ac.RDB, limiterKey)

	result := ac.client.CheckEligibility(req.Amount, req.TermDays, req.MonthlyIncome)
	c.JSON(http.StatusOK, gin.H{"eligibility": result})
}

type AdviceRequest struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Goal     string `json:"goal" binding:"required"`
}

// POST /advisor/advice
func (ac *AdvisorController) GetAdvice(c *gin.Context) {
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal is required"})
		return
	}

	limiterKey := c.ClientIP()
	if ok, reason := utils.CanRequestAdvice(ac.RDB, limiterKey); !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": reason})
		return
	}
	utils.MarkAdviceRequested(ac.RDB, limiterKey)

	advice := ac.client.GetFinancialAdvice(req.Income, req.Expenses, req.Goal)
	c.JSON(http.StatusOK, gin.H{"advice": advice})
}
