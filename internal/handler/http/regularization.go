package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/regularization"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
)

type RegularizationHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	GetMyRegularizations(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type RegularizationHandlerImpl struct {
	regularizationService regularization.RegularizationService
}

func NewRegularizationHandler(regularizationService regularization.RegularizationService) RegularizationHandler {
	return &RegularizationHandlerImpl{regularizationService: regularizationService}
}

// Request implements RegularizationHandler.
func (h *RegularizationHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req regularization.CreateRegularizationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create regularization decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	regularizationResponse, err := h.regularizationService.Request(r.Context(), req)
	if err != nil {
		slog.Error("Create regularization service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Regularization request filed", "regularization_id", regularizationResponse.ID)
	response.Created(w, "Regularization request submitted successfully", regularizationResponse)
}

// GetMyRegularizations implements RegularizationHandler.
func (h *RegularizationHandlerImpl) GetMyRegularizations(w http.ResponseWriter, r *http.Request) {
	requests, err := h.regularizationService.GetMyRegularizations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// List implements RegularizationHandler.
func (h *RegularizationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	requests, err := h.regularizationService.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *RegularizationHandlerImpl) process(w http.ResponseWriter, r *http.Request,
	fn func(r *http.Request, req regularization.ProcessRegularizationRequest) (regularization.RegularizationResponse, error), message string) {

	regularizationID := chi.URLParam(r, "id")
	if regularizationID == "" {
		response.BadRequest(w, "Regularization ID is required", nil)
		return
	}

	var req regularization.ProcessRegularizationRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Process regularization decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ID = regularizationID

	regularizationResponse, err := fn(r, req)
	if err != nil {
		slog.Error("Process regularization service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Regularization request processed", "regularization_id", regularizationID, "status", regularizationResponse.Status)
	response.SuccessWithMessage(w, message, regularizationResponse)
}

// Approve implements RegularizationHandler.
func (h *RegularizationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, func(r *http.Request, req regularization.ProcessRegularizationRequest) (regularization.RegularizationResponse, error) {
		return h.regularizationService.Approve(r.Context(), req)
	}, "Regularization request approved successfully")
}

// Reject implements RegularizationHandler.
func (h *RegularizationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, func(r *http.Request, req regularization.ProcessRegularizationRequest) (regularization.RegularizationResponse, error) {
		return h.regularizationService.Reject(r.Context(), req)
	}, "Regularization request rejected successfully")
}
