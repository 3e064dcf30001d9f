package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/screenwise/screenwise/models"
	"github.com/screenwise/screenwise/utils"
)

// SeedController loads demo rewards and profiles. It is only routed when
// SEED_ENABLED is set; never expose it in production.
type SeedController struct {
	db *gorm.DB
}

// NewSeedController creates a new controller instance.
func NewSeedController(db *gorm.DB) *SeedController {
	return &SeedController{db: db}
}

var seedRewards = []models.Reward{
	{Name: "Free Coffee", Description: "Enjoy a free coffee on us", PointsRequired: 30, Category: "Food", Available: true},
	{Name: "Movie Ticket", Description: "Redeem for a movie ticket", PointsRequired: 60, Category: "Entertainment", Available: true},
	{Name: "Amazon Gift Card", Description: "$10 Amazon voucher", PointsRequired: 100, Category: "Shopping", Available: false},
	{Name: "Spa Discount", Description: "20% off your next spa session", PointsRequired: 80, Category: "Wellness", Available: true},
	{Name: "Gym Pass", Description: "1-day gym access", PointsRequired: 50, Category: "Fitness", Available: true},
}

var seedUsers = []models.User{
	{FullName: "Alice Johnson", Email: "alice.j@gmail.com", Points: 250, Streak: 8, DailyGoalMinutes: 120},
	{FullName: "Bob Smith", Email: "bob.smith@hotmail.com", Points: 220, Streak: 7, DailyGoalMinutes: 90},
	{FullName: "Carla Reyes", Email: "carla.reyes@outlook.com", Points: 210, Streak: 6, DailyGoalMinutes: 100},
	{FullName: "David Kim", Email: "davidk@gmail.com", Points: 195, Streak: 5, DailyGoalMinutes: 60},
	{FullName: "Eva Green", Email: "eva.green@icloud.com", Points: 185, Streak: 6, DailyGoalMinutes: 110},
	{FullName: "Felix Chan", Email: "felixchan@yahoo.com", Points: 175, Streak: 4, DailyGoalMinutes: 120},
	{FullName: "Grace Patel", Email: "grace.patel@gmail.com", Points: 165, Streak: 3, DailyGoalMinutes: 80},
	{FullName: "Henry Wu", Email: "henrywu@protonmail.com", Points: 160, Streak: 4, DailyGoalMinutes: 90},
	{FullName: "Isla Morgan", Email: "islamorgan@gmail.com", Points: 150, Streak: 2, DailyGoalMinutes: 60},
	{FullName: "Jake Turner", Email: "jaketurner@aol.com", Points: 145, Streak: 1, DailyGoalMinutes: 120},
	{FullName: "Kara Singh", Email: "kara.singh@yahoo.com", Points: 140, Streak: 2, DailyGoalMinutes: 75},
	{FullName: "Leo Martinez", Email: "leom@gmail.com", Points: 135, Streak: 3, DailyGoalMinutes: 100},
	{FullName: "Mia Chen", Email: "miac_95@gmail.com", Points: 125, Streak: 1, DailyGoalMinutes: 90},
	{FullName: "Noah Ahmed", Email: "noah.ahmed@live.com", Points: 115, Streak: 0, DailyGoalMinutes: 60},
	{FullName: "Olivia Brooks", Email: "oliviabrooks@gmail.com", Points: 105, Streak: 1, DailyGoalMinutes: 85},
}

// Seed upserts the demo catalog and profiles. Rewards conflict on name,
// users on email, so repeated calls refresh rather than duplicate.
func (s *SeedController) Seed(ctx *gin.Context) {
	rewards := make([]models.Reward, len(seedRewards))
	copy(rewards, seedRewards)
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "points_required", "category", "available"}),
	}).Create(&rewards).Error; err != nil {
		utils.Sugar.Errorw("failed to seed rewards", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to seed data")
		return
	}

	users := make([]models.User, len(seedUsers))
	copy(users, seedUsers)
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "points", "streak", "daily_goal_minutes"}),
	}).Create(&users).Error; err != nil {
		utils.Sugar.Errorw("failed to seed users", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to seed data")
		return
	}

	utils.CacheInvalidate(utils.CacheKeyLeaderboard, utils.CacheKeyRewards)

	utils.DataWith(ctx, http.StatusOK, nil, gin.H{
		"success": true,
		"message": "Data seeded successfully",
	})
}
