package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fitfans/internal/errors"
	"fitfans/internal/model"
	"fitfans/internal/service"
)

// UserHandler bundles the user CRUD endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates the user handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserRequest is the create/update payload. All six fields are required; a
// partial body is rejected.
type UserRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Age      int     `json:"age" validate:"required"`
	Weight   float64 `json:"weight" validate:"required"`
	Height   float64 `json:"height" validate:"required"`
	Gender   string  `json:"gender" validate:"required"`
	Email    string  `json:"email" validate:"required"`
}

func (r *UserRequest) toModel() *model.User {
	return &model.User{
		FullName: r.FullName,
		Age:      r.Age,
		Weight:   r.Weight,
		Height:   r.Height,
		Gender:   r.Gender,
		Email:    r.Email,
	}
}

// GetUsers godoc
// @Summary List users, or look one up by id or email
// @Description The user_id and user_email filters are mutually exclusive. With neither, the full collection is returned.
// @Tags users
// @Produce json
// @Param user_id query int false "User ID"
// @Param user_email query string false "User email"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) GetUsers(c echo.Context) error {
	userID := c.QueryParam("user_id")
	userEmail := c.QueryParam("user_email")

	switch {
	case userID != "" && userEmail != "":
		httpErr := errors.MapErrorToHTTP(errors.ErrAmbiguousLookup)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())

	case userID != "":
		id, err := strconv.Atoi(userID)
		if err != nil || id < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid user_id",
				Code:  "INVALID_USER_ID",
			})
		}
		user, err := h.svc.GetUser(c.Request().Context(), uint(id))
		if err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return c.JSON(http.StatusOK, user)

	case userEmail != "":
		user, err := h.svc.GetUserByEmail(c.Request().Context(), userEmail)
		if err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return c.JSON(http.StatusOK, user)

	default:
		users, err := h.svc.ListUsers(c.Request().Context())
		if err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return c.JSON(http.StatusOK, users)
	}
}

// CreateUser godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body UserRequest true "User payload"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	req, err := bindUserRequest(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	created, err := h.svc.CreateUser(c.Request().Context(), req.toModel())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateUser godoc
// @Summary Replace all fields of a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UserRequest true "Full user payload"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	req, err := bindUserRequest(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	updated, err := h.svc.UpdateUser(c.Request().Context(), id, req.toModel())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// bindUserRequest decodes and validates a full user payload. Any missing
// field maps to ErrInvalidUserData.
func bindUserRequest(c echo.Context) (*UserRequest, error) {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.ErrInvalidUserData
	}
	if err := c.Validate(&req); err != nil {
		return nil, errors.ErrInvalidUserData
	}
	return &req, nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_USER_ID",
		})
	}
	return uint(id), nil
}
