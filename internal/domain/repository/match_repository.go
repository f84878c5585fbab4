package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mockmatch/internal/common"
	"mockmatch/internal/domain/model"
)

type MatchRepository interface {
	Create(ctx context.Context, req *model.MatchRequest) error
	FindByID(ctx context.Context, id int64) (*model.MatchRequest, error)
	// FindBetween looks the pair up in either direction.
	FindBetween(ctx context.Context, userA, userB int64) (*model.MatchRequest, error)
	ListForUser(ctx context.Context, userID int64) ([]model.MatchRequest, error)
	UpdateStatus(ctx context.Context, id int64, status model.MatchStatus) error
}

type pgMatchRepository struct {
	db *sql.DB
}

func NewPgMatchRepository(db *sql.DB) MatchRepository {
	return &pgMatchRepository{db: db}
}

const matchColumns = `id, user_id_1, user_id_2, match_score, status, created_at, updated_at`

func (r *pgMatchRepository) Create(ctx context.Context, req *model.MatchRequest) error {
	query := `INSERT INTO matches (user_id_1, user_id_2, match_score, status)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, req.UserID1, req.UserID2, req.MatchScore, req.Status).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgMatchRepository.Create: %w", err)
	}
	return nil
}

func (r *pgMatchRepository) FindByID(ctx context.Context, id int64) (*model.MatchRequest, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	req, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgMatchRepository.FindByID: %w", err)
	}
	return req, nil
}

func (r *pgMatchRepository) FindBetween(ctx context.Context, userA, userB int64) (*model.MatchRequest, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
	          WHERE (user_id_1 = $1 AND user_id_2 = $2)
	             OR (user_id_1 = $2 AND user_id_2 = $1)`
	req, err := scanMatch(r.db.QueryRowContext(ctx, query, userA, userB))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgMatchRepository.FindBetween: %w", err)
	}
	return req, nil
}

func (r *pgMatchRepository) ListForUser(ctx context.Context, userID int64) ([]model.MatchRequest, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
	          WHERE user_id_1 = $1 OR user_id_2 = $1
	          ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgMatchRepository.ListForUser: %w", err)
	}
	defer rows.Close()

	var reqs []model.MatchRequest
	for rows.Next() {
		req, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("pgMatchRepository.ListForUser: %w", err)
		}
		reqs = append(reqs, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgMatchRepository.ListForUser: %w", err)
	}
	return reqs, nil
}

func (r *pgMatchRepository) UpdateStatus(ctx context.Context, id int64, status model.MatchStatus) error {
	query := `UPDATE matches SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("pgMatchRepository.UpdateStatus: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgMatchRepository.UpdateStatus: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanMatch(row rowScanner) (*model.MatchRequest, error) {
	req := &model.MatchRequest{}
	err := row.Scan(&req.ID, &req.UserID1, &req.UserID2, &req.MatchScore, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}
