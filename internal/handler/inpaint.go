package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/maskpaint/inpaint-api/internal/models"
	"github.com/maskpaint/inpaint-api/internal/service"
)

type inpaintService interface {
	Parse(contentType string, body io.Reader) (*models.InpaintRequest, error)
	Inpaint(ctx context.Context, req *models.InpaintRequest) (*models.InpaintResponse, error)
}

type InpaintHandler struct {
	service      inpaintService
	maxBodyBytes int64
}

func NewInpaintHandler(service inpaintService, maxBodyBytes int64) *InpaintHandler {
	return &InpaintHandler{
		service:      service,
		maxBodyBytes: maxBodyBytes,
	}
}

// Inpaint godoc
// @Summary Inpaint masked region
// @Description Regenerates the white area of mask inside image according to prompt. Image and mask are data URLs (image may also be a direct link).
// @Tags inpaint
// @Accept json
// @Produce json
// @Param request body models.InpaintRequest true "Inpaint request"
// @Success 200 {object} models.InpaintResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 415 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 502 {object} models.UnexpectedResponse
// @Router /api/inpaint [post]
func (h *InpaintHandler) Inpaint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	req, err := h.service.Parse(r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp, err := h.service.Inpaint(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var unexpected *service.UnexpectedResponseError
	switch {
	case errors.Is(err, service.ErrUnsupportedMediaType):
		writeError(w, http.StatusUnsupportedMediaType, service.ErrUnsupportedMediaType.Error())
	case errors.Is(err, service.ErrInvalidJSON):
		writeError(w, http.StatusBadRequest, service.ErrInvalidJSON.Error())
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, service.ErrMissingFields.Error())
	case errors.As(err, &unexpected):
		writeJSON(w, http.StatusBadGateway, models.UnexpectedResponse{
			Error:  service.ErrUnexpectedResponse.Error(),
			Result: unexpected.Payload(),
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
