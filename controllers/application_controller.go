package controllers

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"pesaswift/config"
	"pesaswift/models"
	"pesaswift/services/loan"
	"pesaswift/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// In-flight applications live in Redis only; an abandoned application simply
// expires.
const applicationTTL = 30 * time.Minute

type ApplicationController struct {
	RDB      *redis.Client
	cfg      *config.Config
	sessions *utils.SessionStore
	rng      *rand.Rand
}

func NewApplicationController(rdb *redis.Client, cfg *config.Config) *ApplicationController {
	return &ApplicationController{
		RDB:      rdb,
		cfg:      cfg,
		sessions: utils.NewSessionStore(rdb),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func applicationKey(id string) string {
	return "loanapp:" + id
}

func (ac *ApplicationController) save(app *loan.Application) error {
	data, err := json.Marshal(app)
	if err != nil {
		return err
	}
	return ac.RDB.Set(utils.RedisCtx(), applicationKey(app.ID), data, applicationTTL).Err()
}

func (ac *ApplicationController) load(id string) (*loan.Application, error) {
	data, err := ac.RDB.Get(utils.RedisCtx(), applicationKey(id)).Result()
	if err != nil {
		return nil, err
	}
	var app loan.Application
	if err := json.Unmarshal([]byte(data), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

type CreateApplicationRequest struct {
	Amount   int `json:"amount"`
	TermDays int `json:"term_days"`
}

// POST /applications
func (ac *ApplicationController) Create(c *gin.Context) {
	var req CreateApplicationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	app := loan.NewApplication(uuid.NewString(), req.Amount, req.TermDays)
	if err := ac.save(app); err != nil {
		utils.LogError(err, "save application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start application"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app.Snapshot()})
}

// GET /applications/:id
func (ac *ApplicationController) Get(c *gin.Context) {
	app, err := ac.load(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found or expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app.Snapshot()})
}

type EditRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// POST /applications/:id/edit
func (ac *ApplicationController) Edit(c *gin.Context) {
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Field == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	app, err := ac.load(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found or expired"})
		return
	}

	accepted := app.ApplyEdit(req.Field, req.Value)
	if err := ac.save(app); err != nil {
		utils.LogError(err, "save application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save application"})
		return
	}
	if !accepted {
		c.JSON(http.StatusBadRequest, gin.H{"error": app.Reason, "application": app.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app.Snapshot()})
}

// sessionLogin bridges the workflow's login event onto the Redis session
// store.
type sessionLogin struct {
	sessions  *utils.SessionStore
	sessionID string
	fired     bool
}

func (s *sessionLogin) Login(name, phoneNumber string) {
	s.fired = true
	if err := s.sessions.Save(s.sessionID, utils.SessionUser{Name: name, PhoneNumber: phoneNumber}); err != nil {
		utils.LogError(err, "save session")
	}
}

type SubmitRequest struct {
	TransactionCode string `json:"transaction_code"`
}

// POST /applications/:id/submit
// Advances the current stage. For the income stage before the limit is known
// this performs the credit-limit draw; a duplicate submit while a draw is
// outstanding is ignored.
func (ac *ApplicationController) Submit(c *gin.Context) {
	var req SubmitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	app, err := ac.load(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found or expired"})
		return
	}

	switch app.Stage {
	case loan.StageIdentity:
		ac.submitIdentity(c, app)
	case loan.StageIncome:
		if app.Record.ApprovedLimit == nil {
			ac.submitLimitDraw(c, app)
		} else {
			ac.submitOffer(c, app)
		}
	case loan.StagePayment:
		ac.submitPayment(c, app, req.TransactionCode)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application is already under review", "application": app.Snapshot()})
	}
}

func (ac *ApplicationController) submitIdentity(c *gin.Context, app *loan.Application) {
	login := &sessionLogin{sessions: ac.sessions, sessionID: utils.GenerateSessionID()}

	ok := app.SubmitIdentity(utils.NairobiTime(), login)
	if err := ac.save(app); err != nil {
		utils.LogError(err, "save application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save application"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": app.Reason, "application": app.Snapshot()})
		return
	}

	resp := gin.H{"application": app.Snapshot()}
	if login.fired {
		token, err := utils.GenerateJWT(login.sessionID, app.Record.PhoneNumber, ac.cfg.JWTSecret)
		if err != nil {
			utils.LogError(err, "generate token")
		} else {
			resp["token"] = token
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (ac *ApplicationController) submitLimitDraw(c *gin.Context, app *loan.Application) {
	ok, err := app.BeginLimitDraw()
	if err == loan.ErrLimitDrawBusy {
		// Draw already in flight, drop the duplicate trigger.
		c.JSON(http.StatusAccepted, gin.H{"status": "limit check in progress", "application": app.Snapshot()})
		return
	}
	if !ok {
		ac.saveAndReject(c, app)
		return
	}
	if err := ac.save(app); err != nil {
		utils.LogError(err, "save application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save application"})
		return
	}

	dob, err := app.BirthDate()
	if err != nil {
		// Identity stage guarantees a parseable date; treat this as a bug.
		utils.LogError(err, "limit draw birth date")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign credit limit"})
		return
	}
	limit := loan.AssignLimit(dob, utils.NairobiTime(), ac.rng)
	app.CompleteLimitDraw(limit)

	if err := ac.save(app); err != nil {
		utils.LogError(err, "save application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save application"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app.Snapshot()})
}

func (ac *ApplicationController) submitOffer(c *gin.Context, app *loan.Application) {
	if app.SubmitOffer() {
		if err := ac.save(app); err != nil {
			utils.LogError(err, "save application")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save application"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"application": app.Snapshot()})
		return
	}
	ac.saveAndReject(c, app)
}

func (ac *ApplicationController) submitPayment(c *gin.Context, app *loan.Application, code string) {
	if code != "" {
		if !app.ApplyEdit("transaction_code", code) {
			ac.saveAndReject(c, app)
			return
		}
	}
	if !app.SubmitPayment() {
		ac.saveAndReject(c, app)
		return
	}
	if err := ac.save(app); err != nil {
		utils.LogError(err, "save application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save application"})
		return
	}

	ac.enqueueForReview(app)
	c.JSON(http.StatusOK, gin.H{"application": app.Snapshot()})
}

func (ac *ApplicationController) saveAndReject(c *gin.Context, app *loan.Application) {
	if err := ac.save(app); err != nil {
		utils.LogError(err, "save application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save application"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": app.Reason, "application": app.Snapshot()})
}

// enqueueForReview writes the durable review-queue row and notifies the
// applicant. Both are best effort: the workflow itself is already complete.
func jsonFrom(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

// reviewRow maps a finished application onto its durable review-queue row.
// The PIN never reaches the database, not even inside the snapshot.
func reviewRow(app *loan.Application) *models.LoanApplication {
	rec := app.Record
	snap := rec
	snap.PIN = ""
	row := &models.LoanApplication{
		ApplicationID:   app.ID,
		FullName:        rec.FullName,
		NationalID:      rec.NationalID,
		PhoneNumber:     rec.PhoneNumber,
		DateOfBirth:     rec.DateOfBirth,
		IncomeBracket:   rec.IncomeBracket,
		Principal:       rec.Principal,
		TermDays:        rec.TermDays,
		TransactionCode: rec.TransactionCode,
		Status:          "PENDING_REVIEW",
		RecordSnapshot:  jsonFrom(snap),
	}
	if rec.ApprovedLimit != nil {
		row.ApprovedLimit = *rec.ApprovedLimit
	}
	if app.Quote != nil {
		row.Fee = app.Quote.Fee
		row.Interest = app.Quote.Interest
		row.TotalRepayment = app.Quote.Total
	}
	return row
}

func (ac *ApplicationController) enqueueForReview(app *loan.Application) {
	rec := app.Record
	row := reviewRow(app)
	if db := utils.GetDB(); db != nil {
		if err := db.Create(row).Error; err != nil {
			utils.LogError(err, "enqueue application for review")
		}
	}

	if ac.cfg.ATAPIKey != "" {
		go func() {
			msg := fmt.Sprintf("PesaSwift: your loan application for %s is being processed. You will receive an M-Pesa notification shortly.",
				utils.FormatKES(rec.Principal))
			if err := utils.SendSMS(ac.cfg.ATAPIKey, ac.cfg.ATUsername, ac.cfg.ATSender, rec.PhoneNumber, msg); err != nil {
				utils.LogError(err, "application sms")
			}
		}()
	}
}
