// Package app assembles the services from their dependencies.
package app

import (
	"log/slog"

	"github.com/propvest/propvest/pkg/config"
	domainscheme "github.com/propvest/propvest/pkg/domain/scheme"
	"github.com/propvest/propvest/pkg/flowstore"
	"github.com/propvest/propvest/pkg/provider"
	"github.com/propvest/propvest/pkg/repository"
	"github.com/propvest/propvest/pkg/service/auth"
	"github.com/propvest/propvest/pkg/service/portfolio"
	"github.com/propvest/propvest/pkg/service/purchase"
	"github.com/propvest/propvest/pkg/service/scheme"
)

// Deps contains the infrastructure dependencies the services are built from.
type Deps struct {
	Uow            repository.UnitOfWork
	FlowStore      flowstore.Store
	ProfileCreator provider.ProfileCreator
	Verifier       provider.DocumentVerifier
	Payments       provider.PaymentConfirmer
	Logger         *slog.Logger
}

// App holds the wired services.
type App struct {
	Deps             *Deps
	Config           *config.App
	AuthService      *auth.Service
	SchemeService    *scheme.Service
	PurchaseService  *purchase.Service
	PortfolioService *portfolio.Service
}

// New wires the application from its dependencies and configuration.
func New(deps *Deps, cfg *config.App) *App {
	planCfg := planConfigFrom(cfg.Plan)
	return &App{
		Deps:          deps,
		Config:        cfg,
		AuthService:   auth.New(cfg.Auth.Jwt, deps.Logger),
		SchemeService: scheme.New(deps.Uow, planCfg, deps.Logger),
		PurchaseService: purchase.New(
			deps.FlowStore,
			deps.Uow,
			deps.ProfileCreator,
			deps.Verifier,
			deps.Payments,
			planCfg,
			deps.Logger,
		),
		PortfolioService: portfolio.New(deps.Uow, deps.Logger),
	}
}

func planConfigFrom(cfg *config.Plan) domainscheme.PlanConfig {
	if cfg == nil {
		return domainscheme.DefaultPlanConfig()
	}
	return domainscheme.PlanConfig{
		MinPaymentFloor:           cfg.MinPaymentFloor,
		InstallmentRentalFactor:   cfg.InstallmentRentalFactor,
		SinglePaymentRentalFactor: cfg.SinglePaymentRentalFactor,
	}
}
