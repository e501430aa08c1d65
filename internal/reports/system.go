package reports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/lifecycle"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/pagination"
)

// System defines the public contract for report domain operations.
type System interface {
	Handler() *Handler

	// Start registers the retention sweep as a startup hook.
	Start(lc *lifecycle.Coordinator) error

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Report], error)

	Find(ctx context.Context, id uuid.UUID) (*Report, error)
	Create(ctx context.Context, cmd CreateCommand) (*Report, error)
	Download(ctx context.Context, id uuid.UUID) (*Artifact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
