package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mockmatch/internal/domain/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListForUser(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
}

type pgNotificationRepository struct {
	db *sql.DB
}

func NewPgNotificationRepository(db *sql.DB) NotificationRepository {
	return &pgNotificationRepository{db: db}
}

func (r *pgNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `INSERT INTO notifications (user_id, kind, actor_id, subject_id, message)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, n.UserID, n.Kind, n.ActorID, n.SubjectID, n.Message).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgNotificationRepository.Create: %w", err)
	}
	return nil
}

func (r *pgNotificationRepository) ListForUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	query := `SELECT id, user_id, kind, actor_id, subject_id, message, read, created_at
	          FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgNotificationRepository.ListForUser: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n := model.Notification{}
		err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.ActorID, &n.SubjectID, &n.Message, &n.Read, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("pgNotificationRepository.ListForUser: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgNotificationRepository.ListForUser: %w", err)
	}
	return notifications, nil
}

func (r *pgNotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("pgNotificationRepository.MarkAllRead: %w", err)
	}
	return nil
}
