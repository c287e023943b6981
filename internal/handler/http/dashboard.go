package http

import (
	"net/http"

	"github.com/leavedesk/leavedesk-backend-go/internal/handler/http/response"
	"github.com/leavedesk/leavedesk-backend-go/internal/service/dashboard"
)

type DashboardHandler interface {
	GetEmployeeStats(w http.ResponseWriter, r *http.Request)
	GetManagerStats(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService *dashboard.DashboardService
}

func NewDashboardHandler(dashboardService *dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// GetEmployeeStats implements DashboardHandler.
func (d *DashboardHandlerImpl) GetEmployeeStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	stats, err := d.dashboardService.GetEmployeeStats(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetManagerStats implements DashboardHandler.
func (d *DashboardHandlerImpl) GetManagerStats(w http.ResponseWriter, r *http.Request) {
	managerID, ok := userIDFromToken(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	stats, err := d.dashboardService.GetManagerStats(r.Context(), managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
