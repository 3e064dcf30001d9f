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

// ScreenTimeController handles usage logging, fetching, and the daily goal
// summary.
type ScreenTimeController struct {
	db *gorm.DB
}

// NewScreenTimeController creates a new controller instance.
func NewScreenTimeController(db *gorm.DB) *ScreenTimeController {
	return &ScreenTimeController{db: db}
}

type logEntryRequest struct {
	UserID          string `json:"userId"`
	AppName         string `json:"appName"`
	DurationMinutes *int   `json:"durationMinutes"`
	Date            string `json:"date"`
}

// LogEntry appends one screen-time row. All fields are required; duration
// is only checked for presence, matching the self-reported trust model.
func (s *ScreenTimeController) LogEntry(ctx *gin.Context) {
	var req logEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil ||
		req.UserID == "" || strings.TrimSpace(req.AppName) == "" ||
		req.DurationMinutes == nil || req.Date == "" {
		utils.Error(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}

	entry := models.ScreenTimeEntry{
		UserID:          req.UserID,
		AppName:         utils.Sanitize(strings.TrimSpace(req.AppName)),
		DurationMinutes: *req.DurationMinutes,
		Date:            req.Date,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		utils.Sugar.Errorw("failed to log screen time", "user_id", req.UserID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to log screen time")
		return
	}

	utils.Data(ctx, http.StatusCreated, entry)
}

// ListEntries returns a user's entries ordered by creation time descending,
// optionally narrowed to one exact calendar date.
func (s *ScreenTimeController) ListEntries(ctx *gin.Context) {
	userID := strings.TrimSpace(ctx.Query("userId"))
	if userID == "" {
		utils.Error(ctx, http.StatusBadRequest, "User ID is required")
		return
	}

	query := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if date := strings.TrimSpace(ctx.Query("date")); date != "" {
		query = query.Where("date = ?", date)
	}

	var entries []models.ScreenTimeEntry
	if err := query.Find(&entries).Error; err != nil {
		utils.Sugar.Errorw("failed to fetch screen time logs", "user_id", userID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch screen time logs")
		return
	}

	utils.Data(ctx, http.StatusOK, entries)
}

// DailySummary sums a day's minutes against the stored goal so clients can
// render progress and decide whether to claim the bonus. Nothing here
// prevents claiming the bonus more than once per day.
func (s *ScreenTimeController) DailySummary(ctx *gin.Context) {
	userID := strings.TrimSpace(ctx.Query("userId"))
	if userID == "" {
		utils.Error(ctx, http.StatusBadRequest, "User ID is required")
		return
	}
	date := strings.TrimSpace(ctx.Query("date"))
	if date == "" {
		date = time.Now().In(time.Local).Format("2006-01-02")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "User not found")
			return
		}
		utils.Sugar.Errorw("failed to load user for summary", "user_id", userID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}

	var total int
	if err := s.db.Model(&models.ScreenTimeEntry{}).
		Where("user_id = ? AND date = ?", userID, date).
		Select("COALESCE(SUM(duration_minutes),0)").
		Scan(&total).Error; err != nil {
		utils.Sugar.Errorw("failed to sum screen time", "user_id", userID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}

	percent, under := goalProgress(total, user.DailyGoalMinutes)
	utils.Data(ctx, http.StatusOK, gin.H{
		"user_id":         userID,
		"date":            date,
		"total_minutes":   total,
		"daily_goal":      user.DailyGoalMinutes,
		"percent_of_goal": percent,
		"under_goal":      under,
		"bonus_eligible":  under && total > 0,
		"bonus_points":    config.Get().GoalBonusPoints,
	})
}

// goalProgress computes percentage-of-goal capped at 100 for display and
// whether the total is still under the goal.
func goalProgress(totalMinutes, goalMinutes int) (percent int, underGoal bool) {
	if goalMinutes <= 0 {
		return 0, false
	}
	percent = totalMinutes * 100 / goalMinutes
	if percent > 100 {
		percent = 100
	}
	return percent, totalMinutes < goalMinutes
}
