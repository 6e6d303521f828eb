package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/CamiloBytes/reportesvc/internal/http/handlers"
	"github.com/CamiloBytes/reportesvc/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, rh *handlers.ReportHandlers, authmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)

	// Public intake and read surface: filing a report and browsing the map
	// never require an account.
	r.POST("/reports", rh.Submit)
	r.GET("/reports", rh.List)
	r.GET("/reports/:id", rh.Get)
	r.GET("/damage", rh.ListDamage)
	r.GET("/barrios", rh.ListBarrios)

	v := r.Group("/").Use(authmw.WithSession(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)
	v.GET("/dashboard", rh.Dashboard)
	v.POST("/reports/:id/advance", rh.Advance)
	v.PUT("/reports/:id/status", rh.SetStatus)
	v.POST("/reports/:id/reconcile", rh.Reconcile)
	v.PATCH("/damage/:id/status", rh.PatchDamageStatus)

	return r
}
