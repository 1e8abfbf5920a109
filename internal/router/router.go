package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stock-quote-api/internal/handler"
	"github.com/iliyamo/stock-quote-api/internal/middleware"
)

// Register wires every route of the API onto the provided Echo instance.
// Only the health check and login are reachable without a token; everything
// else sits behind the JWT gate.
func Register(e *echo.Echo, jwtSecret string, a *handler.AuthHandler, u *handler.UserHandler, s *handler.StockHandler) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Login is the only way to obtain a token, so it cannot require one.
	e.POST("/auth/login", a.Login)

	jwt := middleware.JWTAuth(jwtSecret)

	// Stock lookup and history are per-user and therefore protected.
	e.GET("/stock", s.GetStock, jwt)
	e.GET("/history", s.GetHistory, jwt)

	// User CRUD lives in its own protected group.
	g := e.Group("/users", jwt)
	g.GET("", u.GetAll)
	g.POST("", u.Create)
	g.GET("/:id", u.GetOne)
	g.PUT("/:id", u.Update)
	g.DELETE("/:id", u.Delete)
}
