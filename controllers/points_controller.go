package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/screenwise/screenwise/models"
	"github.com/screenwise/screenwise/utils"
)

// PointsController implements the award operation of the points engine.
type PointsController struct {
	db *gorm.DB
}

// NewPointsController creates a new controller instance.
func NewPointsController(db *gorm.DB) *PointsController {
	return &PointsController{db: db}
}

type awardRequest struct {
	UserID string `json:"userId"`
	Points *int   `json:"points"`
	Reason string `json:"reason"`
}

// AwardPoints adds a delta to the user's balance and returns the new total.
// The delta is unclamped and there is no idempotency key: two identical
// requests award twice. Callers claiming the daily goal bonus rely on this
// endpoint staying a plain read-add-write.
func (p *PointsController) AwardPoints(ctx *gin.Context) {
	var req awardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Points == nil {
		utils.Error(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}

	var user models.User
	if err := p.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "User not found")
			return
		}
		utils.Sugar.Errorw("failed to load user for award", "user_id", req.UserID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update points")
		return
	}

	newTotal := user.Points + *req.Points
	if err := p.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("points", newTotal).Error; err != nil {
		utils.Sugar.Errorw("failed to persist points", "user_id", req.UserID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update points")
		return
	}
	user.Points = newTotal

	utils.CacheInvalidate(utils.CacheKeyLeaderboard)

	reason := utils.Sanitize(req.Reason)
	if reason == "" {
		reason = "Points awarded"
	}

	utils.DataWith(ctx, http.StatusOK, user, gin.H{
		"pointsAdded": *req.Points,
		"reason":      reason,
		"newTotal":    newTotal,
	})
}
