package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/CamiloBytes/reportesvc/internal/config"
	httpx "github.com/CamiloBytes/reportesvc/internal/http"
	"github.com/CamiloBytes/reportesvc/internal/http/handlers"
	"github.com/CamiloBytes/reportesvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.PolicySvc.SeedDefaultPolicies(); err != nil {
		return err
	}
	log.Println("casbin: seeded default policies")

	// Initialize handlers
	authH := handlers.NewAuthHandlers(c.AuthSvc)
	reportH := handlers.NewReportHandlers(c.ReportSvc, c.DashboardSvc, c.ReportRepo, c.BarrioRepo)

	// Initialize middleware
	authMW := middleware.NewAuthMW(c.AuthSvc)
	casbinMW := middleware.NewCasbinMW(c.PolicySvc)

	r := httpx.BuildRouter(authH, reportH, authMW, casbinMW)

	// Background dashboard refresh, stopped with the server.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.DashboardSvc.StartPolling(ctx, cfg.PollInterval)

	// The intake and map pages are served from another origin.
	handler := cors.AllowAll().Handler(r)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, handler)
}
