package api

import (
	"fmt"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/config"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/documents"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/reports"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/sessions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents documents.System
	Reports   reports.System
	Sessions  sessions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	reportsSystem := reports.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
		cfg.API.ReportRetentionDuration(),
	)

	sessionsSystem := sessions.New(
		runtime.Lifecycle.Context(),
		runtime.Engine,
		docsSystem,
		runtime.Logger,
		cfg.API.MaxUploadSizeBytes(),
	)

	return &Domain{
		Documents: docsSystem,
		Reports:   reportsSystem,
		Sessions:  sessionsSystem,
	}
}

// Start registers domain systems with the lifecycle coordinator.
func (d *Domain) Start(runtime *Runtime) error {
	if err := d.Reports.Start(runtime.Lifecycle); err != nil {
		return fmt.Errorf("reports start failed: %w", err)
	}
	if err := d.Sessions.Start(runtime.Lifecycle); err != nil {
		return fmt.Errorf("sessions start failed: %w", err)
	}
	return nil
}
