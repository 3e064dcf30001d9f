package controllers

import (
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/screenwise/screenwise/config"
	"github.com/screenwise/screenwise/models"
	"github.com/screenwise/screenwise/utils"
)

// LeaderboardController serves the ranked top-profiles view.
type LeaderboardController struct {
	db *gorm.DB
}

// NewLeaderboardController creates a new controller instance.
func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{db: db}
}

type leaderboardEntry struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Points   int    `json:"points"`
	Streak   int    `json:"streak"`
	Rank     int    `json:"rank"`
	Avatar   string `json:"avatar"`
}

// GetLeaderboard returns the top profiles ordered by points descending.
// Rank is the dense position 1..N; ties keep the store's fetch order.
func (l *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(utils.CacheKeyLeaderboard); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	cfg := config.Get()
	var users []models.User
	if err := l.db.Model(&models.User{}).
		Select("id, full_name, points, streak").
		Order("points DESC").
		Limit(cfg.LeaderboardSize).
		Find(&users).Error; err != nil {
		utils.Sugar.Errorw("failed to fetch leaderboard", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}

	entries := make([]leaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, leaderboardEntry{
			ID:       u.ID,
			FullName: u.FullName,
			Points:   u.Points,
			Streak:   u.Streak,
			Rank:     i + 1,
			Avatar:   initials(u.FullName),
		})
	}

	utils.CacheSetJSON(utils.CacheKeyLeaderboard, gin.H{"data": entries},
		time.Duration(cfg.LeaderboardCacheTTLSec)*time.Second)
	utils.Data(ctx, http.StatusOK, entries)
}

// initials derives the avatar string from a display name: first rune of
// each space-separated token, uppercased, truncated to two characters.
func initials(name string) string {
	rs := make([]rune, 0, 2)
	for _, token := range strings.Fields(name) {
		rs = append(rs, unicode.ToUpper([]rune(token)[0]))
		if len(rs) == 2 {
			break
		}
	}
	return string(rs)
}
