package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "fitfans/internal/errors"
	"fitfans/internal/model"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id uint, in *model.User) (*model.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newUserServer(svc *MockUserService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	h := NewUserHandler(svc)
	e.GET("/users", h.GetUsers)
	e.POST("/users", h.CreateUser)
	e.PUT("/users/:id", h.UpdateUser)
	e.DELETE("/users/:id", h.DeleteUser)
	return e
}

func storedUser() *model.User {
	return &model.User{
		ID:       1,
		FullName: "Ana",
		Age:      30,
		Weight:   60.5,
		Height:   165.0,
		Gender:   "F",
		Email:    "ana@x.com",
	}
}

const validBody = `{"full_name":"Ana","age":30,"weight":60.5,"height":165.0,"gender":"F","email":"ana@x.com"}`

func TestGetUsers_BothFiltersRejected(t *testing.T) {
	svc := new(MockUserService)
	e := newUserServer(svc)

	// Both filters present always fail, even with values that would match.
	req := httptest.NewRequest(http.MethodGet, "/users?user_id=1&user_email=ana@x.com", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Provide either user_id or user_email, not both")
	svc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
}

func TestGetUsers_ByID(t *testing.T) {
	svc := new(MockUserService)
	svc.On("GetUser", mock.Anything, uint(1)).Return(storedUser(), nil)
	e := newUserServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/users?user_id=1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, "ana@x.com", got.Email)
}

func TestGetUsers_ByEmailNotFound(t *testing.T) {
	svc := new(MockUserService)
	svc.On("GetUserByEmail", mock.Anything, "ghost@x.com").Return(nil, apperrors.ErrUserNotFound)
	e := newUserServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/users?user_email=ghost@x.com", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestGetUsers_ListAll(t *testing.T) {
	svc := new(MockUserService)
	svc.On("ListUsers", mock.Anything).Return([]model.User{*storedUser()}, nil)
	e := newUserServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestCreateUser(t *testing.T) {
	t.Run("valid payload echoes fields with assigned id", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).Return(storedUser(), nil)
		e := newUserServer(svc)

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(validBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got model.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, uint(1), got.ID)
		assert.Equal(t, "Ana", got.FullName)
		assert.Equal(t, 30, got.Age)
		assert.Equal(t, 60.5, got.Weight)
		assert.Equal(t, 165.0, got.Height)
		assert.Equal(t, "F", got.Gender)
		assert.Equal(t, "ana@x.com", got.Email)
	})

	t.Run("missing field rejected before the service runs", func(t *testing.T) {
		svc := new(MockUserService)
		e := newUserServer(svc)

		body := `{"full_name":"Ana","age":30,"weight":60.5,"height":165.0,"gender":"F"}`
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid User Data")
		svc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil, apperrors.ErrEmailTaken)
		e := newUserServer(svc)

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(validBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("non-existent id", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("UpdateUser", mock.Anything, uint(42), mock.AnythingOfType("*model.User")).Return(nil, apperrors.ErrUserNotFound)
		e := newUserServer(svc)

		req := httptest.NewRequest(http.MethodPut, "/users/42", strings.NewReader(validBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("partial body rejected", func(t *testing.T) {
		svc := new(MockUserService)
		e := newUserServer(svc)

		req := httptest.NewRequest(http.MethodPut, "/users/1", strings.NewReader(`{"full_name":"Ana"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success returns updated record", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("UpdateUser", mock.Anything, uint(1), mock.AnythingOfType("*model.User")).Return(storedUser(), nil)
		e := newUserServer(svc)

		req := httptest.NewRequest(http.MethodPut, "/users/1", strings.NewReader(validBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("success is 204 with empty body", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("DeleteUser", mock.Anything, uint(1)).Return(nil)
		e := newUserServer(svc)

		req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("missing id is 404", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("DeleteUser", mock.Anything, uint(9)).Return(apperrors.ErrUserNotFound)
		e := newUserServer(svc)

		req := httptest.NewRequest(http.MethodDelete, "/users/9", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		svc := new(MockUserService)
		e := newUserServer(svc)

		req := httptest.NewRequest(http.MethodDelete, "/users/abc", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
