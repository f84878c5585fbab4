package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mockmatch/internal/common"
	"mockmatch/internal/domain/model"
)

type InterviewRepository interface {
	Create(ctx context.Context, iv *model.Interview) error
	FindByID(ctx context.Context, id int64) (*model.Interview, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Interview, error)
	UpdateStatus(ctx context.Context, id int64, status model.InterviewStatus) error
}

type pgInterviewRepository struct {
	db *sql.DB
}

func NewPgInterviewRepository(db *sql.DB) InterviewRepository {
	return &pgInterviewRepository{db: db}
}

const interviewColumns = `id, interviewer_id, interviewee_id, type, scheduled_time, status, created_at, updated_at`

func (r *pgInterviewRepository) Create(ctx context.Context, iv *model.Interview) error {
	query := `INSERT INTO interviews (interviewer_id, interviewee_id, type, scheduled_time, status)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, iv.InterviewerID, iv.IntervieweeID, iv.Type, iv.ScheduledTime, iv.Status).
		Scan(&iv.ID, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgInterviewRepository.Create: %w", err)
	}
	return nil
}

func (r *pgInterviewRepository) FindByID(ctx context.Context, id int64) (*model.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	iv := &model.Interview{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&iv.ID, &iv.InterviewerID, &iv.IntervieweeID, &iv.Type, &iv.ScheduledTime,
		&iv.Status, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgInterviewRepository.FindByID: %w", err)
	}
	return iv, nil
}

func (r *pgInterviewRepository) ListForUser(ctx context.Context, userID int64) ([]model.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
	          WHERE interviewer_id = $1 OR interviewee_id = $1
	          ORDER BY scheduled_time DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgInterviewRepository.ListForUser: %w", err)
	}
	defer rows.Close()

	var interviews []model.Interview
	for rows.Next() {
		iv := model.Interview{}
		err := rows.Scan(
			&iv.ID, &iv.InterviewerID, &iv.IntervieweeID, &iv.Type, &iv.ScheduledTime,
			&iv.Status, &iv.CreatedAt, &iv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("pgInterviewRepository.ListForUser: %w", err)
		}
		interviews = append(interviews, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgInterviewRepository.ListForUser: %w", err)
	}
	return interviews, nil
}

func (r *pgInterviewRepository) UpdateStatus(ctx context.Context, id int64, status model.InterviewStatus) error {
	query := `UPDATE interviews SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("pgInterviewRepository.UpdateStatus: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgInterviewRepository.UpdateStatus: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
