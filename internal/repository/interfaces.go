package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ritmodivulga/promo-engine/internal/domain"
)

// Repositories return sql.ErrNoRows when a lookup by id finds nothing.

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	// Create creates a new client
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)

	// List returns every client ordered by name
	List(ctx context.Context) ([]*domain.Client, error)

	// Update persists name, agency name and frequent flag
	Update(ctx context.Context, client *domain.Client) error

	// Delete removes a client; packages keep their snapshot of the name
	Delete(ctx context.Context, id uuid.UUID) error
}

// PackageRepository defines the interface for package and post data operations
type PackageRepository interface {
	// Create creates a new package
	Create(ctx context.Context, pkg *domain.Package) error

	// GetByID retrieves a package by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error)

	// GetForUpdate retrieves a package and locks it until the surrounding
	// transaction ends
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Package, error)

	// List returns packages matching filter, newest first
	List(ctx context.Context, filter domain.PackageFilter) ([]*domain.Package, error)

	// UpdateStatus moves a package from one status to another. It reports
	// false when the package was not in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PackageStatus, at time.Time) (bool, error)

	// UpdatePaymentFlag sets one checklist flag
	UpdatePaymentFlag(ctx context.Context, id uuid.UUID, field domain.PaymentField, paid bool, at time.Time) error
}

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	// CreateBatch creates all videos of a new package
	CreateBatch(ctx context.Context, videos []*domain.Video) error

	// GetByID retrieves a video by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)

	// GetByPackageID retrieves the videos of a package ordered by number
	GetByPackageID(ctx context.Context, packageID uuid.UUID) ([]*domain.Video, error)

	// UpdateStatus moves a video from one status to another. It reports
	// false when the video was not in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.VideoStatus, at time.Time) (bool, error)

	// CountPending counts videos of active packages that are not engaged yet
	CountPending(ctx context.Context) (int, error)
}

// Store groups the repositories and runs units of work.
type Store interface {
	Clients() ClientRepository
	Packages() PackageRepository
	Videos() VideoRepository

	// WithTx runs fn against a transactional store. fn's writes are applied
	// together or not at all. Nested calls join the outer transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
