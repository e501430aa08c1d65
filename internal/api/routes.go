package api

import (
	"net/http"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/config"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Documents.Handler().Routes(),
		domain.Reports.Handler().Routes(),
		domain.Sessions.Handler(domain.Reports, cfg.API.MaxUploadSizeBytes()).Routes(),
	)
}
