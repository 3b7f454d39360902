package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emretknc/driveaway/internal/auth"
	"github.com/emretknc/driveaway/internal/models"
	"github.com/emretknc/driveaway/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUsersRepo struct {
	users map[string]*models.User
}

func (r *memUsersRepo) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	if _, ok := r.users[email]; ok {
		return nil, models.ErrUserExists
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = email
	r.users[email] = user
	return user, nil
}

func (r *memUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (r *memUsersRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func newAuthRouter() (*gin.Engine, *auth.Manager) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewManager("test-secret")
	svc := services.NewUserService(&memUsersRepo{users: map[string]*models.User{}}, tokens)

	r := gin.New()
	r.POST("/api/auth/register", Register(svc))
	r.POST("/api/auth/login", Login(svc))
	r.POST("/api/auth/logout", Logout())
	return r, tokens
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const registerBody = `{"email":"john.doe@example.com","password":"password123","firstName":"John","lastName":"Doe"}`

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/register", registerBody)
	assert.Equal(t, http.StatusCreated, w.Code)

	var res models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	// password hash must not leak through the JSON envelope
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/register", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"JOHN.DOE@example.com","password":"password123","firstName":"John","lastName":"Doe"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	r, tokens := newAuthRouter()
	doJSON(r, http.MethodPost, "/api/auth/register", registerBody)

	w := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"john.doe@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var sessionToken string
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session_token" {
			sessionToken = cookie.Value
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, int(auth.SessionTTL.Seconds()), cookie.MaxAge)
		}
	}
	require.NotEmpty(t, sessionToken)

	claims, err := tokens.ParseToken(sessionToken)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", claims.Name)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	r, _ := newAuthRouter()
	doJSON(r, http.MethodPost, "/api/auth/register", registerBody)

	wrongPass := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"john.doe@example.com","password":"wrong"}`)
	unknownUser := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String())
}

func TestLogoutClearsCookie(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cleared bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session_token" {
			cleared = cookie.Value == "" && cookie.MaxAge < 0
		}
	}
	assert.True(t, cleared)
}
