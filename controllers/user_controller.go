package controllers

import (
	"net/http"
	"time"

	"pesaswift/config"
	"pesaswift/models"
	"pesaswift/services/loan"
	"pesaswift/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type UserController struct {
	RDB      *redis.Client
	cfg      *config.Config
	sessions *utils.SessionStore
}

func NewUserController(rdb *redis.Client, cfg *config.Config) *UserController {
	return &UserController{RDB: rdb, cfg: cfg, sessions: utils.NewSessionStore(rdb)}
}

type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	PIN   string `json:"pin" binding:"required"`
}

// Login godoc
// POST /auth/login — returning borrowers sign in with phone number and PIN.
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone and pin are required"})
		return
	}
	if !loan.IsValidPhone(req.Phone) || !loan.IsValidPIN(req.PIN) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or PIN"})
		return
	}

	db := utils.GetDB()
	var user models.User
	if err := db.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or PIN"})
		return
	}
	if !utils.CheckPasswordHash(req.PIN, user.PINHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or PIN"})
		return
	}

	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	sessionID := utils.GenerateSessionID()
	if err := uc.sessions.Save(sessionID, utils.SessionUser{Name: name, PhoneNumber: req.Phone}); err != nil {
		utils.LogError(err, "save session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	token, err := utils.GenerateJWT(sessionID, req.Phone, uc.cfg.JWTSecret)
	if err != nil {
		utils.LogError(err, "generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"name": name, "phone": req.Phone},
	})
}

// Logout godoc
// POST /user/logout — revokes the token and drops the session.
func (uc *UserController) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token != "" {
		// Blacklist entry outlives the token itself.
		if err := uc.RDB.Set(utils.RedisCtx(), "blacklist:"+token, "1", 72*time.Hour).Err(); err != nil {
			utils.LogError(err, "blacklist token")
		}
	}
	if sessionID := c.GetString("session_id"); sessionID != "" {
		uc.sessions.Delete(sessionID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile godoc
// GET /user/profile
func (uc *UserController) Profile(c *gin.Context) {
	sessionID := c.GetString("session_id")
	user, err := uc.sessions.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please sign in again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
