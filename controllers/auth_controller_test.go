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

	"github.com/screenwise/screenwise/utils"
)

func performLogin(t *testing.T, ctl *AuthController, payload string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/auth/login", ctl.Login)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewAuthController(db)

	hash, err := utils.HashPassword("hunter22")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "password_hash", "points"}).
			AddRow("u1", "alice.j@gmail.com", "Alice Johnson", hash, 250))

	w := performLogin(t, ctl, `{"email":"Alice.J@gmail.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "alice.j@gmail.com", data["email"])
	_, hasHash := data["password_hash"]
	assert.False(t, hasHash, "password hash must never serialize")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewAuthController(db)

	hash, err := utils.HashPassword("hunter22")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow("u1", "alice.j@gmail.com", hash))

	w := performLogin(t, ctl, `{"email":"alice.j@gmail.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)
	ctl := NewAuthController(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := performLogin(t, ctl, `{"email":"nobody@example.com","password":"x"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFullNameFromEmail(t *testing.T) {
	assert.Equal(t, "alice j", fullNameFromEmail("alice.j@gmail.com"))
	assert.Equal(t, "miac 95", fullNameFromEmail("miac_95@gmail.com"))
	assert.Equal(t, "plain", fullNameFromEmail("plain"))
}
