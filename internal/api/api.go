// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/config"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/infrastructure"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/middleware"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	if err := domain.Start(runtime); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
