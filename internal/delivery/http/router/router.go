// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"schedulemaker/internal/delivery/http/middleware"
	"schedulemaker/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	ScheduleHandler *handler.ScheduleHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	scheduleHandler *handler.ScheduleHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		scheduleHandler: params.ScheduleHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes. /me reads the bearer token itself, so it stays outside the
	// auth group.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.GET("/me", r.userHandler.Me)
	}

	logoutGroup := e.Group("/auth")
	logoutGroup.Use(r.authMiddleware.Authenticate)
	{
		logoutGroup.POST("/logout", r.userHandler.Logout)
	}

	// Schedule routes require authentication.
	scheduleGroup := e.Group("/schedule")
	scheduleGroup.Use(r.authMiddleware.Authenticate)
	{
		scheduleGroup.GET("/slots", r.scheduleHandler.ListSlots)
		scheduleGroup.POST("/slots", r.scheduleHandler.CreateSlot)
		scheduleGroup.PUT("/slots/:id", r.scheduleHandler.UpdateSlot)
		scheduleGroup.DELETE("/slots/:id", r.scheduleHandler.DeleteSlot)
		scheduleGroup.DELETE("/slots", r.scheduleHandler.ClearSchedule)
	}
}
