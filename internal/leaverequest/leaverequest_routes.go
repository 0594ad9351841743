package leaverequest

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client, logger *zap.Logger) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	requests.Use(middleware.ContextLogger(logger))
	{
		requests.GET("",
			middleware.RateLimitByActor(3, 10),
			handler.GetAll,
		)

		requests.GET("/:id",
			middleware.RateLimitByActor(3, 10),
			handler.GetByID,
		)

		requests.POST("",
			middleware.RateLimitByActor(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		requests.PATCH("/:id",
			middleware.RateLimitByActor(0.5, 2),
			handler.Update,
		)

		requests.POST("/:id/approve",
			middleware.RateLimitByActor(0.5, 2),
			middleware.RequirePrivileged(),
			middleware.Idempotency(rdb),
			handler.Approve,
		)

		requests.POST("/:id/deny",
			middleware.RateLimitByActor(0.5, 2),
			middleware.RequirePrivileged(),
			middleware.Idempotency(rdb),
			handler.Deny,
		)
	}
}
