package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/repository"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
	"github.com/ritmodivulga/promo-engine/pkg/utils"
)

// Recipients names who hears about workflow events.
type Recipients struct {
	VideoPosted      string
	PackageCompleted string
}

// WorkflowService moves videos through the engagement workflow and completes
// packages once every video is engaged.
type WorkflowService struct {
	store      repository.Store
	recipients Recipients
	rt         Runtime
}

func NewWorkflowService(store repository.Store, recipients Recipients, rt Runtime) *WorkflowService {
	return &WorkflowService{
		store:      store,
		recipients: recipients,
		rt:         rt,
	}
}

// Advance moves a video to requested, which must be the step right after its
// current one. The role gate runs before the step check, and nothing is
// written unless both pass. The completion check runs in the same
// transaction as the video update.
func (s *WorkflowService) Advance(ctx context.Context, actor domain.Actor, videoID uuid.UUID, requested domain.VideoStatus) (*domain.Video, error) {
	var (
		video     *domain.Video
		pkg       *domain.Package
		completed bool
	)

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		video, err = tx.Videos().GetByID(ctx, videoID)
		if err != nil {
			return notFound(err, func() *customError.BusinessError {
				return customError.WrapVideoNotFound(videoID.String())
			})
		}

		// serializes transitions and completion checks of one package
		pkg, err = tx.Packages().GetForUpdate(ctx, video.PackageID)
		if err != nil {
			return notFound(err, func() *customError.BusinessError {
				return customError.WrapPackageNotFound(video.PackageID.String())
			})
		}

		if !domain.CanAdvanceFrom(actor.Role, video.Status) {
			return customError.WrapPermissionDenied(string(actor.Role), fmt.Sprintf("advance a video from %s", video.Status))
		}

		next, ok := video.Status.Next()
		if !ok || next != requested {
			return customError.WrapInvalidTransition("video", string(video.Status), string(requested))
		}

		at := s.rt.now()
		updated, err := tx.Videos().UpdateStatus(ctx, video.ID, video.Status, next, at)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if !updated {
			// someone else moved it since we read it
			return customError.WrapInvalidTransition("video", string(video.Status), string(requested))
		}
		video.Status = next
		video.UpdatedAt = at

		completed, err = s.completeIfDone(ctx, tx, pkg)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.rt.Metrics.VideoTransitions.WithLabelValues(string(video.Status)).Inc()
	s.rt.invalidateDashboard(ctx)
	s.rt.Logger.InfoContext(ctx, "video advanced",
		slog.String("video_id", video.ID.String()),
		slog.String("package_id", pkg.ID.String()),
		slog.String("status", string(video.Status)),
		slog.String("actor", actor.UserID),
	)

	if video.Status == domain.VideoStatusVideoPosted {
		s.rt.notify(ctx, domain.Notification{
			Recipient: s.recipients.VideoPosted,
			Title:     "Vídeo Postado",
			Message:   fmt.Sprintf("Vídeo %d do pacote %s foi postado. Aguardando envio para o grupo.", video.VideoNumber, pkg.ClientName),
			Severity:  domain.SeverityInfo,
		})
	}
	if completed {
		s.announceCompletion(ctx, pkg)
	}

	return video, nil
}

// AdvanceVideo validates req and applies it through Advance.
func (s *WorkflowService) AdvanceVideo(ctx context.Context, actor domain.Actor, videoID uuid.UUID, req *domain.AdvanceVideoRequest) (*domain.Video, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.Advance(ctx, actor, videoID, req.Status)
}

// CheckPackageCompletion completes an active package whose videos are all
// engaged. It reports whether this call made the change; packages that are
// already completed or cancelled, or that own no videos, are left alone.
func (s *WorkflowService) CheckPackageCompletion(ctx context.Context, packageID uuid.UUID) (bool, error) {
	var (
		pkg       *domain.Package
		completed bool
	)

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		pkg, err = tx.Packages().GetForUpdate(ctx, packageID)
		if err != nil {
			return notFound(err, func() *customError.BusinessError {
				return customError.WrapPackageNotFound(packageID.String())
			})
		}

		completed, err = s.completeIfDone(ctx, tx, pkg)
		return err
	})
	if err != nil {
		return false, err
	}

	if completed {
		s.rt.invalidateDashboard(ctx)
		s.announceCompletion(ctx, pkg)
	}
	return completed, nil
}

// Reconcile runs the completion check for every active package and returns
// how many were completed. Failures on one package do not stop the others.
func (s *WorkflowService) Reconcile(ctx context.Context) (int, error) {
	active, err := s.store.Packages().List(ctx, domain.PackageFilter{Status: domain.PackageStatusActive})
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	var (
		count int
		errs  []error
	)
	for _, pkg := range active {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		completed, err := s.CheckPackageCompletion(ctx, pkg.ID)
		if err != nil {
			s.rt.Logger.ErrorContext(ctx, "completion check failed",
				slog.String("package_id", pkg.ID.String()),
				slog.Any("error", err),
			)
			errs = append(errs, err)
			continue
		}
		if completed {
			count++
		}
	}

	return count, errors.Join(errs...)
}

func (s *WorkflowService) completeIfDone(ctx context.Context, tx repository.Store, pkg *domain.Package) (bool, error) {
	if pkg.Status.IsFinal() {
		return false, nil
	}

	videos, err := tx.Videos().GetByPackageID(ctx, pkg.ID)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}
	if !domain.AllEngaged(videos) {
		return false, nil
	}

	at := s.rt.now()
	updated, err := tx.Packages().UpdateStatus(ctx, pkg.ID, domain.PackageStatusActive, domain.PackageStatusCompleted, at)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}
	if updated {
		pkg.Status = domain.PackageStatusCompleted
		pkg.UpdatedAt = at
	}
	return updated, nil
}

func (s *WorkflowService) announceCompletion(ctx context.Context, pkg *domain.Package) {
	s.rt.Metrics.PackagesCompleted.Inc()
	s.rt.Logger.InfoContext(ctx, "package completed",
		slog.String("package_id", pkg.ID.String()),
		slog.String("client", pkg.ClientName),
	)

	kind := "Pacote"
	if pkg.Type == domain.PackageTypePost {
		kind = "Post"
	}
	s.rt.notify(ctx, domain.Notification{
		Recipient: s.recipients.PackageCompleted,
		Title:     kind + " Concluído",
		Message:   fmt.Sprintf("%s de %s (%s) concluído: todos os vídeos foram engajados.", kind, pkg.ClientName, utils.FormatBRL(pkg.TotalValue)),
		Severity:  domain.SeveritySuccess,
	})
}
