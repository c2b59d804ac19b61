//nolint:unused
package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"dsmovie/httpserver"
	"dsmovie/movie"
	"dsmovie/pkg/config"
	"dsmovie/score"
	"dsmovie/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signTestToken(t *testing.T, username string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(1 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func decodeAPIResult(t *testing.T, result interface{}, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) FindAll(ctx context.Context, title string, page movie.PageRequest) (movie.Page, error) {
	args := m.Called(ctx, title, page)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockMovieService) FindByID(ctx context.Context, id int64) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Insert(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, id int64, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, id, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockScoreService struct {
	mock.Mock
}

func (m *MockScoreService) SaveScore(ctx context.Context, in score.Input) (movie.Movie, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(movie.Movie), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Authenticated(ctx context.Context) (user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) LoadPrincipalByUsername(ctx context.Context, username string) (user.Principal, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(user.Principal), args.Error(1)
}

func adminPrincipal(username string) user.Principal {
	return user.Principal{Username: username, Roles: []string{user.RoleUser, user.RoleAdmin}}
}
