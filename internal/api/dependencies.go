package api

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"iwannabeavolunteer/portal/internal/auth"
	"iwannabeavolunteer/portal/internal/common"
	"iwannabeavolunteer/portal/internal/config"
	"iwannabeavolunteer/portal/internal/db"
	"iwannabeavolunteer/portal/internal/db/repositories"
	"iwannabeavolunteer/portal/internal/logging"
	"iwannabeavolunteer/portal/internal/metrics"
	"iwannabeavolunteer/portal/internal/providers/supabase"
	"iwannabeavolunteer/portal/internal/providers/wheel"
	"iwannabeavolunteer/portal/internal/services"
)

type Repositories struct {
	CouncilAdmins repositories.CouncilAdminRepository
}

type Services struct {
	Cache        common.CacheInterface
	Verifier     *auth.Verifier
	Authorizer   *services.RoleAuthorizer
	Admin        *services.AdminService
	Wheel        *services.WheelService
	PasswordGate *services.PasswordGateService
}

type Dependencies struct {
	Config   *config.Config
	Metrics  *metrics.MetricsRegistry
	Provider *supabase.Client
	// DB is the direct Postgres pool, nil unless ADMIN_STORE=postgres
	DB       *sqlx.DB
	Repo     *Repositories
	Services *Services
	UpSince  time.Time
}

// InitDependencies wires every collaborator from cfg around the process-wide provider client
func InitDependencies(ctx context.Context, cfg *config.Config, m *metrics.MetricsRegistry) (*Dependencies, error) {
	provider := supabase.Shared(supabase.Options{
		BaseURL:        cfg.SupabaseURL,
		ServiceRoleKey: cfg.SupabaseServiceRoleKey,
		Timeout:        cfg.ProviderTimeout,
		Metrics:        m,
	})
	return NewDependencies(ctx, cfg, m, provider)
}

// NewDependencies wires every collaborator around the given provider client
func NewDependencies(ctx context.Context, cfg *config.Config, m *metrics.MetricsRegistry, provider *supabase.Client) (*Dependencies, error) {
	deps := &Dependencies{
		Config:   cfg,
		Metrics:  m,
		Provider: provider,
		Repo:     &Repositories{},
		UpSince:  time.Now(),
	}

	switch cfg.AdminStore {
	case config.AdminStorePostgres:
		orm, err := db.InitPostgresORM(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pool, err := db.InitPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		deps.DB = pool
		deps.Repo.CouncilAdmins = repositories.NewCouncilAdminGORMRepository(orm)
	default:
		deps.Repo.CouncilAdmins = repositories.NewCouncilAdminRESTRepository(provider)
	}

	var cache common.CacheInterface
	if addr := cfg.RedisAddr(); addr != "" {
		cache = common.NewRedisCacheService(common.NewRedisClient(addr, cfg.RedisPassword))
	} else {
		cache = common.NewCacheService(cfg.LoginBlockDuration, 5*time.Minute)
	}
	guard := common.NewLoginGuard(cache, cfg.LoginMaxFailures, cfg.LoginBlockDuration)

	deps.Services = &Services{
		Cache:        cache,
		Verifier:     auth.NewVerifier(provider, cfg.SupabaseJWTSecret),
		Authorizer:   services.NewRoleAuthorizer(deps.Repo.CouncilAdmins),
		Admin:        services.NewAdminService(provider, deps.Repo.CouncilAdmins, m),
		Wheel:        services.NewWheelService(wheel.NewClient(cfg.WheelAPIURL, cfg.WheelAPIKey, cfg.ProviderTimeout, m), m),
		PasswordGate: services.NewPasswordGateService(cfg.AdminPasswordSHA256, guard, m),
	}

	logging.Info("Dependencies initialized",
		"admin_store", string(cfg.AdminStore),
		"redis", cfg.RedisAddr() != "",
		"jwt_precheck", cfg.SupabaseJWTSecret != "",
	)
	return deps, nil
}

// HealthChecks lists the probes served on /healthCheck
func (d *Dependencies) HealthChecks() []HealthCheck {
	checks := []HealthCheck{{
		Name:    "provider_auth",
		Details: "Auth API reachable",
		Check:   d.Provider.Health,
	}}
	if d.DB != nil {
		checks = append(checks, HealthCheck{
			Name:    "postgres",
			Details: "Postgres Connected",
			Check:   func(ctx context.Context) error { return db.Ping(ctx, d.DB) },
		})
	}
	return checks
}

// Close releases pooled connections
func (d *Dependencies) Close() error {
	var errs []error
	if d.Services != nil && d.Services.Cache != nil {
		if err := d.Services.Cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close dependencies: %v", errs)
	}
	return nil
}
