package app

import (
	"go-attendance/internal/attendance"
	"go-attendance/internal/auth"
	"go-attendance/internal/employee"
	"go-attendance/internal/leaverequest"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	leaveRequestRepo := leaverequest.NewRepository(db)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, logger)
	authService := auth.NewService(employeeRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, rdb, logger)
	leaveRequestService := leaverequest.NewService(db, leaveRequestRepo, employeeRepo, attendanceRepo, rdb, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	authHandler := auth.NewHandler(authService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService, rdb, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, logger)
		employee.RegisterRoutes(api, employeeHandler, logger)
		attendance.RegisterRoutes(api, attendanceHandler, logger)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rdb, logger)
	}

	return nil
}
