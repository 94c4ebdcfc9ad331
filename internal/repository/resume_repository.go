package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resume-review-service/internal/domain"
)

// ResumeRepository defines persistence access for resume metadata.
type ResumeRepository interface {
	Create(ctx context.Context, resume *domain.Resume) error
	GetByID(ctx context.Context, id int64) (*domain.Resume, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Resume, error)
	ListAllWithOwner(ctx context.Context) ([]domain.ResumeWithOwner, error)
	Delete(ctx context.Context, id, userID int64) (*domain.Resume, error)
	Count(ctx context.Context) (int64, error)
}

type resumeRepository struct {
	pool *pgxpool.Pool
}

// NewResumeRepository returns a Postgres-backed implementation.
func NewResumeRepository(pool *pgxpool.Pool) ResumeRepository {
	return &resumeRepository{pool: pool}
}

const resumeColumns = `id, user_id, stored_path, file_name, file_size, mime_type, created_at, updated_at`

func (r *resumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	const query = `
        INSERT INTO resumes (user_id, stored_path, file_name, file_size, mime_type)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		resume.UserID,
		resume.StoredPath,
		resume.FileName,
		resume.FileSize,
		resume.MimeType,
	).Scan(&resume.ID, &resume.CreatedAt, &resume.UpdatedAt)
}

func (r *resumeRepository) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes WHERE id=$1`

	var resume domain.Resume
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.StoredPath,
		&resume.FileName,
		&resume.FileSize,
		&resume.MimeType,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		var resume domain.Resume
		if err := rows.Scan(
			&resume.ID,
			&resume.UserID,
			&resume.StoredPath,
			&resume.FileName,
			&resume.FileSize,
			&resume.MimeType,
			&resume.CreatedAt,
			&resume.UpdatedAt,
		); err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}

func (r *resumeRepository) ListAllWithOwner(ctx context.Context) ([]domain.ResumeWithOwner, error) {
	const query = `
        SELECT r.id, r.user_id, r.stored_path, r.file_name, r.file_size, r.mime_type,
               r.created_at, r.updated_at, u.username, u.email, u.github
        FROM resumes r
        JOIN users u ON u.id = r.user_id
        ORDER BY r.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []domain.ResumeWithOwner
	for rows.Next() {
		var resume domain.ResumeWithOwner
		if err := rows.Scan(
			&resume.ID,
			&resume.UserID,
			&resume.StoredPath,
			&resume.FileName,
			&resume.FileSize,
			&resume.MimeType,
			&resume.CreatedAt,
			&resume.UpdatedAt,
			&resume.Username,
			&resume.Email,
			&resume.GitHub,
		); err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}

func (r *resumeRepository) Delete(ctx context.Context, id, userID int64) (*domain.Resume, error) {
	const query = `
        DELETE FROM resumes WHERE id=$1 AND user_id=$2
        RETURNING ` + resumeColumns

	var resume domain.Resume
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.StoredPath,
		&resume.FileName,
		&resume.FileSize,
		&resume.MimeType,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes`).Scan(&count)
	return count, err
}
