package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"fitfans/internal/errors"
	"fitfans/internal/service"
)

// PredictHandler handles the image classification endpoint.
type PredictHandler struct {
	svc service.PredictionService
}

// NewPredictHandler creates the predict handler layer.
func NewPredictHandler(svc service.PredictionService) *PredictHandler {
	return &PredictHandler{svc: svc}
}

// Predict godoc
// @Summary Classify a gym-equipment image
// @Description Accepts one multipart file field named "file". Returns the predicted label, or "not recognized" when the top probability is below 0.5.
// @Tags predict
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image to classify"
// @Success 200 {object} classifier.Result
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /predict [post]
func (h *PredictHandler) Predict(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrNoFilePart)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if fileHeader.Filename == "" {
		httpErr := errors.MapErrorToHTTP(errors.ErrEmptyFilename)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	src, err := fileHeader.Open()
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	result, err := h.svc.Predict(c.Request().Context(), fileHeader.Filename, data)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}
