package main

import (
	"fmt"
	"net/http"

	"github.com/leavedesk/leavedesk-backend-go/internal/config"
	appHTTP "github.com/leavedesk/leavedesk-backend-go/internal/handler/http"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/jwt"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/leavedesk/leavedesk-backend-go/internal/service/auth"
	dashboardService "github.com/leavedesk/leavedesk-backend-go/internal/service/dashboard"
	leaveService "github.com/leavedesk/leavedesk-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	calculator := leaveService.NewBalanceCalculator()
	authSvc := serviceAuth.NewAuthService(db, userRepo, JWTService)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, userRepo, calculator)
	dashboardSvc := dashboardService.NewDashboardService(leaveRequestRepo, userRepo, calculator)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(JWTService, authHandler, leaveHandler, dashboardHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
