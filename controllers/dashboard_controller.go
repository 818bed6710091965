package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"pesaswift/config"
	"pesaswift/models"
	"pesaswift/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	cfg *config.Config
}

func NewDashboardController(cfg *config.Config) *DashboardController {
	return &DashboardController{cfg: cfg}
}

// Dashboard godoc
// GET /user/dashboard — active loan, repayment history and the last approved
// credit limit for the signed-in borrower.
func (dc *DashboardController) Dashboard(c *gin.Context) {
	phone := c.GetString("phone")
	if phone == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please sign in again"})
		return
	}
	db := utils.GetDB()

	var user models.User
	if err := db.Where("phone = ?", phone).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var activeLoan *models.Loan
	var l models.Loan
	err := db.Where("user_id = ? AND status IN ?", user.ID,
		[]string{models.LoanStatusDisbursed, models.LoanStatusOverdue}).
		Order("created_at DESC").First(&l).Error
	if err == nil {
		activeLoan = &l
	}

	var repayments []models.Repayment
	db.Where("user_id = ?", user.ID).Order("paid_at DESC").Limit(20).Find(&repayments)

	var lastApp models.LoanApplication
	creditLimit := 0
	if err := db.Where("phone_number = ?", phone).Order("created_at DESC").First(&lastApp).Error; err == nil {
		creditLimit = lastApp.ApprovedLimit
	}

	c.JSON(http.StatusOK, gin.H{
		"active_loan":  activeLoan,
		"repayments":   repayments,
		"credit_limit": creditLimit,
	})
}

type StatementRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Statement godoc
// POST /user/statement — emails a plain-text loan statement.
func (dc *DashboardController) Statement(c *gin.Context) {
	phone := c.GetString("phone")
	if phone == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please sign in again"})
		return
	}
	var req StatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	db := utils.GetDB()
	var user models.User
	if err := db.Where("phone = ?", phone).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var loans []models.Loan
	db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&loans)
	var repayments []models.Repayment
	db.Where("user_id = ?", user.ID).Order("paid_at DESC").Find(&repayments)

	body := dc.buildStatement(phone, loans, repayments)

	go func() {
		err := utils.SendEmail(req.Email, "Your PesaSwift loan statement", body,
			dc.cfg.SMTPHost, dc.cfg.SMTPPort, dc.cfg.SMTPUser, dc.cfg.SMTPPass)
		if err != nil {
			utils.LogError(err, "statement email")
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Statement sent to " + req.Email})
}

func (dc *DashboardController) buildStatement(phone string, loans []models.Loan, repayments []models.Repayment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PesaSwift statement for %s\nGenerated %s\n\n", phone,
		utils.NairobiTime().Format("2006-01-02 15:04"))

	b.WriteString("Loans:\n")
	if len(loans) == 0 {
		b.WriteString("  none\n")
	}
	for _, l := range loans {
		fmt.Fprintf(&b, "  #%d  %s over %d days, %s, due %s, balance %s\n",
			l.ID, utils.FormatKES(l.Principal), l.TermDays, l.Status,
			l.DueDate.Format("2006-01-02"), utils.FormatKES(l.Balance))
	}

	b.WriteString("\nRepayments:\n")
	if len(repayments) == 0 {
		b.WriteString("  none\n")
	}
	for _, r := range repayments {
		fmt.Fprintf(&b, "  %s  %s towards loan #%d\n",
			r.PaidAt.In(time.FixedZone("EAT", 3*3600)).Format("2006-01-02"),
			utils.FormatKES(r.Amount), r.LoanID)
	}
	return b.String()
}
