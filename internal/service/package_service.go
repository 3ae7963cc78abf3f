package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/repository"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
)

// VideoCounts fixes how many videos each contract type starts with.
type VideoCounts struct {
	PerPackage     int
	DefaultPerPost int
}

type PackageService struct {
	store      repository.Store
	calculator *FinancialCalculator
	videos     VideoCounts
	rt         Runtime
}

func NewPackageService(store repository.Store, calculator *FinancialCalculator, videos VideoCounts, rt Runtime) *PackageService {
	return &PackageService{
		store:      store,
		calculator: calculator,
		videos:     videos,
		rt:         rt,
	}
}

// Quote computes the breakdown a CreatePackage call with the same input
// would store, without writing anything.
func (s *PackageService) Quote(ctx context.Context, req *domain.QuoteRequest) (*domain.FinancialBreakdown, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	count, err := s.videoCount(req.Type, req.VideoCount)
	if err != nil {
		return nil, err
	}
	return s.breakdown(req.Type, req.TotalValue, req.CostModel, count)
}

// CreatePackage stores a package or post with its derived financials, a
// cleared payment checklist and its videos, all in one transaction.
func (s *PackageService) CreatePackage(ctx context.Context, actor domain.Actor, req *domain.CreatePackageRequest) (*domain.CreatePackageResponse, error) {
	if err := authorize(actor, "create packages", domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if !req.ClientID.Valid && strings.TrimSpace(req.ClientName) == "" {
		return nil, customError.WrapValidation("client_id or client_name is required")
	}

	count, err := s.videoCount(req.Type, req.VideoCount)
	if err != nil {
		return nil, err
	}
	result, err := s.breakdown(req.Type, req.TotalValue, req.CostModel, count)
	if err != nil {
		return nil, err
	}

	now := s.rt.now()
	pkg := &domain.Package{
		ID:         uuid.New(),
		ClientID:   req.ClientID,
		ClientName: strings.TrimSpace(req.ClientName),
		Type:       req.Type,
		Status:     domain.PackageStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	pkg.ApplyBreakdown(result)

	videos := make([]*domain.Video, 0, count)
	for n := 1; n <= count; n++ {
		videos = append(videos, &domain.Video{
			ID:          uuid.New(),
			PackageID:   pkg.ID,
			VideoNumber: n,
			Status:      domain.VideoStatusBriefingSent,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if req.ClientID.Valid {
			client, err := tx.Clients().GetByID(ctx, req.ClientID.UUID)
			if err != nil {
				return notFound(err, func() *customError.BusinessError {
					return customError.WrapClientNotFound(req.ClientID.UUID.String())
				})
			}
			pkg.ClientName = client.Name
		}

		if err := tx.Packages().Create(ctx, pkg); err != nil {
			return customError.WrapDatabaseError(err)
		}
		if err := tx.Videos().CreateBatch(ctx, videos); err != nil {
			return customError.WrapDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.rt.Metrics.PackagesCreated.WithLabelValues(string(pkg.Type)).Inc()
	s.rt.invalidateDashboard(ctx)
	s.rt.Logger.InfoContext(ctx, "package created",
		slog.String("package_id", pkg.ID.String()),
		slog.String("type", string(pkg.Type)),
		slog.String("client", pkg.ClientName),
		slog.Int("videos", len(videos)),
		slog.Bool("loss", pkg.IsLoss()),
	)

	return &domain.CreatePackageResponse{Package: pkg, Videos: videos}, nil
}

// CancelPackage moves an active package to cancelled.
func (s *PackageService) CancelPackage(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Package, error) {
	if err := authorize(actor, "cancel packages", domain.RoleAdmin); err != nil {
		return nil, err
	}

	var pkg *domain.Package
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		pkg, err = tx.Packages().GetForUpdate(ctx, id)
		if err != nil {
			return notFound(err, func() *customError.BusinessError {
				return customError.WrapPackageNotFound(id.String())
			})
		}

		if pkg.Status.IsFinal() {
			return customError.WrapInvalidTransition("package", string(pkg.Status), string(domain.PackageStatusCancelled))
		}

		at := s.rt.now()
		updated, err := tx.Packages().UpdateStatus(ctx, id, domain.PackageStatusActive, domain.PackageStatusCancelled, at)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if !updated {
			return customError.WrapInvalidTransition("package", string(pkg.Status), string(domain.PackageStatusCancelled))
		}
		pkg.Status = domain.PackageStatusCancelled
		pkg.UpdatedAt = at
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.rt.Metrics.PackagesCancelled.Inc()
	s.rt.invalidateDashboard(ctx)
	s.rt.Logger.InfoContext(ctx, "package cancelled",
		slog.String("package_id", id.String()),
		slog.String("actor", actor.UserID),
	)
	return pkg, nil
}

func (s *PackageService) GetPackage(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Package, error) {
	if err := authenticated(actor, "view packages"); err != nil {
		return nil, err
	}

	pkg, err := s.store.Packages().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, func() *customError.BusinessError {
			return customError.WrapPackageNotFound(id.String())
		})
	}
	return pkg, nil
}

func (s *PackageService) ListPackages(ctx context.Context, actor domain.Actor, filter domain.PackageFilter) ([]*domain.Package, error) {
	if err := authenticated(actor, "list packages"); err != nil {
		return nil, err
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, customError.WrapValidation("unknown package type %q", filter.Type)
	}
	switch filter.Status {
	case "", domain.PackageStatusActive, domain.PackageStatusCompleted, domain.PackageStatusCancelled:
	default:
		return nil, customError.WrapValidation("unknown package status %q", filter.Status)
	}

	packages, err := s.store.Packages().List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return packages, nil
}

// ListVideos returns the videos of a package in workflow order.
func (s *PackageService) ListVideos(ctx context.Context, actor domain.Actor, packageID uuid.UUID) ([]*domain.Video, error) {
	if err := authorize(actor, "view videos", domain.RoleAdmin, domain.RoleVideoManager); err != nil {
		return nil, err
	}

	if _, err := s.store.Packages().GetByID(ctx, packageID); err != nil {
		return nil, notFound(err, func() *customError.BusinessError {
			return customError.WrapPackageNotFound(packageID.String())
		})
	}

	videos, err := s.store.Videos().GetByPackageID(ctx, packageID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return videos, nil
}

// videoCount resolves the number of videos for a contract. Packages always
// get the configured amount; posts take the requested count or the default.
func (s *PackageService) videoCount(typ domain.PackageType, requested int) (int, error) {
	switch typ {
	case domain.PackageTypePackage:
		if requested != 0 && requested != s.videos.PerPackage {
			return 0, customError.WrapValidation("a package always has %d videos, got %d", s.videos.PerPackage, requested)
		}
		return s.videos.PerPackage, nil
	case domain.PackageTypePost:
		if requested > 0 {
			return requested, nil
		}
		return s.videos.DefaultPerPost, nil
	}
	return 0, customError.WrapValidation("unknown contract type %q", typ)
}

func (s *PackageService) breakdown(typ domain.PackageType, total decimal.Decimal, model *domain.CostModel, videos int) (*domain.FinancialBreakdown, error) {
	if model == nil {
		return s.calculator.Flat(total, typ)
	}
	return s.calculator.Configurable(total, *model, videos)
}
