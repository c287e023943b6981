package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)

	ListPending(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	ListTeamHistory(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)
	GetTeamBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// userIDFromToken pulls the authenticated user's id out of the JWT claims.
func userIDFromToken(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		slog.Error("Failed to get JWT claims", "error", err)
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		slog.Error("user_id not found in JWT claims")
		return "", false
	}
	return userID, true
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = userID

	created, err := l.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := l.leaveService.ListMyRequests(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	if err := l.leaveService.CancelRequest(r.Context(), requestID, userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", nil)
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	balance, err := l.leaveService.GetBalance(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// ListPending implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	managerID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := l.leaveService.ListPendingForManager(r.Context(), managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	managerID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	updated, err := l.leaveService.ApproveRequest(r.Context(), requestID, managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", updated)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	managerID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	// Body is optional; a bare reject carries no reason.
	var req leave.RejectLeaveRequestRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("RejectRequest decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	updated, err := l.leaveService.RejectRequest(r.Context(), requestID, managerID, req.RejectionReason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", updated)
}

// ListTeamHistory implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTeamHistory(w http.ResponseWriter, r *http.Request) {
	managerID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := l.leaveService.ListTeamHistory(r.Context(), managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetSchedule implements LeaveHandler.
func (l *LeaveHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	managerID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := l.leaveService.ListApprovedSchedule(r.Context(), managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetTeamBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetTeamBalances(w http.ResponseWriter, r *http.Request) {
	managerID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	balances, err := l.leaveService.GetTeamBalances(r.Context(), managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}
