package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/model"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

const videoColumns = `id, video_id, s3_url, duration, title, description, tags, explicit_content,
        explicit_content_detected, transcription, streaming_url, ai_generated_title,
        ai_generated_description, created_at, updated_at`

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*model.Video, error) {
	var v model.Video
	if err := row.Scan(
		&v.ID, &v.VideoID, &v.StorageKey, &v.Duration,
		&v.Title, &v.Description, &v.Tags, &v.ExplicitFrames,
		&v.ExplicitContentDetected, &v.Transcription, &v.StreamingURL,
		&v.AIGeneratedTitle, &v.AIGeneratedDescription,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepository) Create(ctx context.Context, v *model.Video) error {
	logger.Infof(ctx, "creating database record for video %q...", v.VideoID)

	const query = `
      INSERT INTO videos
        (video_id, s3_url, duration, title, description)
      VALUES (?, ?, ?, ?, ?)
    `
	res, err := r.db.ExecContext(ctx, query, v.VideoID, v.StorageKey, v.Duration, v.Title, v.Description)
	if err != nil {
		return err
	}

	if id, err := res.LastInsertId(); err == nil {
		v.ID = id
	}
	return nil
}

func (r *VideoRepository) GetByVideoID(ctx context.Context, videoID string) (*model.Video, error) {
	logger.Infof(ctx, "fetching video %q from the database...", videoID)

	query := `SELECT ` + videoColumns + ` FROM videos WHERE video_id = ?`
	v, err := scanVideo(r.db.QueryRowContext(ctx, query, videoID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, video.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VideoRepository) List(ctx context.Context) ([]*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos ORDER BY id DESC`
	return r.list(ctx, query)
}

func (r *VideoRepository) ListWithExplicitFrames(ctx context.Context) ([]*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE explicit_content IS NOT NULL ORDER BY id`
	return r.list(ctx, query)
}

func (r *VideoRepository) list(ctx context.Context, query string, args ...any) ([]*model.Video, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var videos []*model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *VideoRepository) ListUnanalysed(ctx context.Context) ([]string, error) {
	const query = `
      SELECT video_id
      FROM videos
      WHERE explicit_content_detected IS NULL
      ORDER BY id
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *VideoRepository) SetModerationFlag(ctx context.Context, videoID string, flagged bool) error {
	const query = `UPDATE videos SET explicit_content_detected = ? WHERE video_id = ?`
	_, err := r.db.ExecContext(ctx, query, flagged, videoID)
	return err
}

// CommitAnalysis replaces every analysis field of the video in one transaction.
func (r *VideoRepository) CommitAnalysis(ctx context.Context, videoID string, a model.Analysis) error {
	logger.Infof(ctx, "committing analysis of video %q...", videoID)

	const query = `
      UPDATE videos
      SET
        tags                     = ?,
        explicit_content         = ?,
        transcription            = ?,
        ai_generated_title       = ?,
        ai_generated_description = ?
      WHERE video_id = ?
    `
	return r.updateExisting(ctx, videoID, query,
		a.Tags, a.ExplicitFrames, a.Transcription,
		a.AIGeneratedTitle, a.AIGeneratedDescription,
		videoID, // WHERE clause
	)
}

func (r *VideoRepository) SetStreamingURL(ctx context.Context, videoID, streamingURL string) error {
	const query = `UPDATE videos SET streaming_url = ? WHERE video_id = ?`
	return r.updateExisting(ctx, videoID, query, streamingURL, videoID)
}

// updateExisting locks the row before updating it, since MySQL reports zero
// affected rows for an update that changes nothing.
func (r *VideoRepository) updateExisting(ctx context.Context, videoID, query string, args ...any) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Warnf(ctx, "rollback failed for video %q: %v", videoID, rbErr)
			}
		}
	}()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM videos WHERE video_id = ? FOR UPDATE`, videoID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return video.ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("could not lock video %q: %w", videoID, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}
