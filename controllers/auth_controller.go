package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/screenwise/screenwise/config"
	"github.com/screenwise/screenwise/models"
	"github.com/screenwise/screenwise/utils"
)

// AuthController is the thin boundary with the external identity provider:
// token issuance for local accounts plus the profile upsert on first
// authenticated access. Everything heavier (OAuth, sessions, recovery)
// stays outside this service.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new controller instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"fullName"`
	DailyGoal int    `json:"dailyGoal"`
}

// Register creates a profile and returns a token for it.
func (a *AuthController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		utils.Error(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusBadRequest, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Sugar.Errorw("failed to check existing email", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to register")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to register")
		return
	}

	cfg := config.Get()
	goal := req.DailyGoal
	if goal <= 0 {
		goal = cfg.DefaultDailyGoalMinutes
	}

	user := models.User{
		Email:            email,
		FullName:         utils.Sanitize(strings.TrimSpace(req.FullName)),
		PasswordHash:     hash,
		DailyGoalMinutes: goal,
	}
	if err := a.db.Create(&user).Error; err != nil {
		utils.Sugar.Errorw("failed to create user", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, time.Duration(cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to register")
		return
	}

	utils.DataWith(ctx, http.StatusCreated, user, gin.H{"token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a fresh token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		utils.Error(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		utils.Sugar.Errorw("failed to load user for login", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to login")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	cfg := config.Get()
	token, err := utils.GenerateToken(user.ID, user.Email, time.Duration(cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to login")
		return
	}

	utils.DataWith(ctx, http.StatusOK, user, gin.H{"token": token})
}

// Me returns the caller's profile, creating it on first authenticated
// access when the identity is known but no row exists yet.
func (a *AuthController) Me(ctx *gin.Context) {
	userID := ctx.GetString("user_id")
	email := ctx.GetString("email")

	var user models.User
	err := a.db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:               userID,
			Email:            email,
			FullName:         fullNameFromEmail(email),
			DailyGoalMinutes: config.Get().DefaultDailyGoalMinutes,
		}
		err = a.db.Create(&user).Error
	}
	if err != nil {
		utils.Sugar.Errorw("failed to load profile", "user_id", userID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	utils.Data(ctx, http.StatusOK, user)
}

// fullNameFromEmail is the placeholder display name for rows created on
// first access: the local part with dots and underscores spaced out.
func fullNameFromEmail(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		local = email[:i]
	}
	local = strings.NewReplacer(".", " ", "_", " ").Replace(local)
	return strings.TrimSpace(local)
}
