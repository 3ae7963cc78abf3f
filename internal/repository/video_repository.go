package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ritmodivulga/promo-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type videoRepository struct {
	db sqlx.ExtContext
}

const videoColumns = `id, package_id, video_number, status, created_at, updated_at`

// CreateBatch expects to run inside Store.WithTx so the package and its
// videos land together.
func (r *videoRepository) CreateBatch(ctx context.Context, videos []*domain.Video) error {
	query := r.db.Rebind(`
		INSERT INTO videos (` + videoColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	for _, video := range videos {
		_, err := r.db.ExecContext(ctx, query,
			video.ID,
			video.PackageID,
			video.VideoNumber,
			video.Status,
			video.CreatedAt,
			video.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	query := r.db.Rebind(`SELECT ` + videoColumns + ` FROM videos WHERE id = ?`)

	var video domain.Video
	if err := sqlx.GetContext(ctx, r.db, &video, query, id); err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *videoRepository) GetByPackageID(ctx context.Context, packageID uuid.UUID) ([]*domain.Video, error) {
	query := r.db.Rebind(`
		SELECT ` + videoColumns + `
		FROM videos
		WHERE package_id = ?
		ORDER BY video_number
	`)

	var videos []*domain.Video
	if err := sqlx.SelectContext(ctx, r.db, &videos, query, packageID); err != nil {
		return nil, err
	}

	return videos, nil
}

func (r *videoRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.VideoStatus, at time.Time) (bool, error) {
	query := r.db.Rebind(`
		UPDATE videos
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`)

	result, err := r.db.ExecContext(ctx, query, to, at, id, from)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (r *videoRepository) CountPending(ctx context.Context) (int, error) {
	query := r.db.Rebind(`
		SELECT COUNT(*)
		FROM videos v
		JOIN packages p ON p.id = v.package_id
		WHERE p.status = ? AND v.status <> ?
	`)

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, domain.PackageStatusActive, domain.VideoStatusEngaged); err != nil {
		return 0, err
	}

	return count, nil
}
