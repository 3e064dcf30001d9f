package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/screenwise/screenwise/models"
	"github.com/screenwise/screenwise/utils"
)

// RewardController handles the reward catalog and the redeem operation.
type RewardController struct {
	db *gorm.DB
}

var (
	errUserNotFound       = errors.New("user not found")
	errRewardNotFound     = errors.New("reward not found")
	errRewardUnavailable  = errors.New("reward is not available")
	errInsufficientPoints = errors.New("insufficient points")
)

// NewRewardController creates a new controller instance.
func NewRewardController(db *gorm.DB) *RewardController {
	return &RewardController{db: db}
}

// ListRewards returns available rewards ordered by cost ascending.
func (r *RewardController) ListRewards(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(utils.CacheKeyRewards); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var rewards []models.Reward
	if err := r.db.Where("available = ?", true).
		Order("points_required ASC").
		Find(&rewards).Error; err != nil {
		utils.Sugar.Errorw("failed to fetch rewards", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch rewards")
		return
	}

	utils.CacheSetJSON(utils.CacheKeyRewards, gin.H{"data": rewards}, 5*time.Minute)
	utils.Data(ctx, http.StatusOK, rewards)
}

type redeemRequest struct {
	UserID   string `json:"userId"`
	RewardID string `json:"rewardId"`
}

// Redeem exchanges points for a reward. Validation order: user exists,
// reward exists, reward available, balance covers cost. The ledger insert
// and the balance decrement commit or roll back together; the user row is
// locked for the duration so concurrent redemptions serialize.
func (r *RewardController) Redeem(ctx *gin.Context) {
	var req redeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.RewardID == "" {
		utils.Error(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}

	var redemption models.Redemption
	var newPoints int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", req.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}

		var reward models.Reward
		if err := tx.First(&reward, "id = ?", req.RewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRewardNotFound
			}
			return err
		}

		if !reward.Available {
			return errRewardUnavailable
		}
		if user.Points < reward.PointsRequired {
			return errInsufficientPoints
		}

		redemption = models.Redemption{
			UserID:   user.ID,
			RewardID: reward.ID,
			Status:   models.RedemptionStatusCompleted,
		}
		if err := tx.Create(&redemption).Error; err != nil {
			return err
		}

		newPoints = user.Points - reward.PointsRequired
		return tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("points", newPoints).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound):
			utils.Error(ctx, http.StatusBadRequest, "User not found")
		case errors.Is(err, errRewardNotFound):
			utils.Error(ctx, http.StatusBadRequest, "Reward not found")
		case errors.Is(err, errRewardUnavailable):
			utils.Error(ctx, http.StatusBadRequest, "Reward is not available")
		case errors.Is(err, errInsufficientPoints):
			utils.Error(ctx, http.StatusBadRequest, "Insufficient points")
		default:
			utils.Sugar.Errorw("failed to redeem reward", "user_id", req.UserID, "reward_id", req.RewardID, "err", err)
			utils.Error(ctx, http.StatusInternalServerError, "Failed to redeem reward")
		}
		return
	}

	// points changed, ranked view is stale
	utils.CacheInvalidate(utils.CacheKeyLeaderboard)

	utils.DataWith(ctx, http.StatusCreated, redemption, gin.H{
		"newPoints": newPoints,
		"message":   "Reward redeemed successfully!",
	})
}
