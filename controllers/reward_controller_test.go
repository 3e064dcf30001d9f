package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRedeem(t *testing.T, ctl *RewardController, payload string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/rewards/redeem", ctl.Redeem)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rewards/redeem", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func userRow(points int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "full_name", "points"}).
		AddRow("u1", "Alice Johnson", points)
}

func rewardRow(cost int, available bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "points_required", "available"}).
		AddRow("r1", "Free Coffee", cost, available)
}

func TestRedeemSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewRewardController(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)FOR UPDATE`).
		WillReturnRows(userRow(100))
	mock.ExpectQuery(`SELECT (.+) FROM "rewards" WHERE id = (.+)`).
		WillReturnRows(rewardRow(30, true))
	mock.ExpectExec(`INSERT INTO "redemptions"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := performRedeem(t, ctl, `{"userId":"u1","rewardId":"r1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(70), body["newPoints"], "new balance = prior balance - cost")
	assert.Equal(t, "Reward redeemed successfully!", body["message"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, "u1", data["user_id"])
	assert.Equal(t, "r1", data["reward_id"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemInsufficientPoints(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewRewardController(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)FOR UPDATE`).
		WillReturnRows(userRow(10))
	mock.ExpectQuery(`SELECT (.+) FROM "rewards" WHERE id = (.+)`).
		WillReturnRows(rewardRow(30, true))
	mock.ExpectRollback()

	w := performRedeem(t, ctl, `{"userId":"u1","rewardId":"r1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Insufficient points", body["error"])

	// no ledger insert and no balance mutation were issued
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemUnavailableReward(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewRewardController(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)FOR UPDATE`).
		WillReturnRows(userRow(500))
	mock.ExpectQuery(`SELECT (.+) FROM "rewards" WHERE id = (.+)`).
		WillReturnRows(rewardRow(30, false))
	mock.ExpectRollback()

	w := performRedeem(t, ctl, `{"userId":"u1","rewardId":"r1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Reward is not available", body["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemUserNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewRewardController(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "points"}))
	mock.ExpectRollback()

	w := performRedeem(t, ctl, `{"userId":"missing","rewardId":"r1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "User not found", body["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemMissingFields(t *testing.T) {
	db, _ := newMockDB(t)
	ctl := NewRewardController(db)

	for _, payload := range []string{`{}`, `{"userId":"u1"}`, `{"rewardId":"r1"}`, `not json`} {
		w := performRedeem(t, ctl, payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %s", payload)
		body := decodeBody(t, w)
		assert.Equal(t, "Missing required fields", body["error"])
	}
}

func TestListRewards(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewRewardController(db)

	rows := sqlmock.NewRows([]string{"id", "name", "points_required", "category", "available"}).
		AddRow("r1", "Free Coffee", 30, "Food", true).
		AddRow("r2", "Gym Pass", 50, "Fitness", true)
	mock.ExpectQuery(`SELECT (.+) FROM "rewards" WHERE available = (.+) ORDER BY points_required`).
		WillReturnRows(rows)

	r := gin.New()
	r.GET("/rewards", ctl.ListRewards)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rewards", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Free Coffee", first["name"])
	assert.Equal(t, float64(30), first["points_required"])
	require.NoError(t, mock.ExpectationsWereMet())
}
