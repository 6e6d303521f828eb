package app

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/CamiloBytes/reportesvc/domain"
	"github.com/CamiloBytes/reportesvc/internal/config"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/auth"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/geo"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/notifications"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/repositories"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/rest"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/storage"
	"github.com/CamiloBytes/reportesvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	RedisClient *redis.Client
	RestClient  *rest.Client

	// Stores and repositories
	SessionStore domain.SessionStore
	UserRepo     domain.UserRepository
	ReportRepo   domain.ReportRepository
	BarrioRepo   domain.BarrioRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	Geocoder        domain.Geocoder
	AuthSvc         domain.AuthService
	ReportSvc       domain.ReportService
	DashboardSvc    *services.DashboardService
	PolicySvc       *services.PolicyServiceImpl
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initSessionStore(); err != nil {
		return nil, err
	}
	container.initRestClient()
	container.initRepositories()
	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func (c *Container) initSessionStore() error {
	if c.Config.SessionBackend == "redis" {
		c.RedisClient = redis.NewClient(&redis.Options{
			Addr:     c.Config.RedisAddr,
			Password: c.Config.RedisPassword,
			DB:       c.Config.RedisDB,
		})
		if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
			return err
		}
		c.SessionStore = storage.NewRedisStore(c.RedisClient, c.Config.SessionExpiry)
		return nil
	}
	c.SessionStore = storage.NewMemoryStore()
	return nil
}

func (c *Container) initRestClient() {
	// A 401/403 from the store invalidates whatever session made the call.
	c.RestClient = rest.NewClient(
		c.Config.StoreBaseURL,
		c.Config.StoreTimeout,
		rest.WithAuthRejectHook(func(ctx context.Context, status int) {
			sess := domain.SessionFromContext(ctx)
			if sess == nil {
				rest.LogAuthReject(ctx, status)
				return
			}
			if err := c.SessionStore.Delete(ctx, sess.Token); err != nil {
				log.Printf("SESSION_CLEAR_FAILED: user_id=%s error=%v", sess.User.ID, err)
				return
			}
			log.Printf("AUTH_REJECT_LOGOUT: user_id=%s status=%d", sess.User.ID, status)
		}),
	)
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.RestClient)
	c.ReportRepo = repositories.NewReportRepository(c.RestClient)
	c.BarrioRepo = repositories.NewBarrioRepository(c.RestClient)
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.SessionExpiry)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)
	c.Geocoder = geo.NewNominatimGeocoder(c.Config.GeocoderURL, c.Config.StoreTimeout)

	policySvc, err := services.NewPolicyService()
	if err != nil {
		return err
	}
	c.PolicySvc = policySvc

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionStore,
		c.PasswordSvc,
		c.TokenSvc,
		c.Config.SessionExpiry,
	)
	c.ReportSvc = services.NewReportService(
		c.ReportRepo,
		c.Geocoder,
		c.NotificationSvc,
		services.ReportServiceConfig{
			DefaultLat:    c.Config.DefaultLat,
			DefaultLon:    c.Config.DefaultLon,
			RetryAttempts: c.Config.RetryAttempts,
			RetryBackoff:  c.Config.RetryBackoff,
		},
	)
	c.DashboardSvc = services.NewDashboardService(c.ReportRepo, c.BarrioRepo)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
