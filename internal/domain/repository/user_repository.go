package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"mockmatch/internal/common"
	"mockmatch/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ProfileUpdate carries the owner-editable profile fields. A nil
// AvailableTimes clears the stored schedule.
type ProfileUpdate struct {
	Nickname       string
	ContactInfo    string
	TargetRole     string
	WorkExperience string
	PracticeAreas  []string
	TargetIndustry string
	TargetCompany  string
	AvailableTimes *model.AvailableTimes
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ListOthers(ctx context.Context, excludeID int64) ([]model.User, error)
	UpdateProfile(ctx context.Context, id int64, fields ProfileUpdate) (*model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, hashed_password, nickname, contact_info, target_role,
	work_experience, practice_areas, target_industry, target_company, available_times,
	created_at, updated_at`

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	areas, err := json.Marshal(emptyIfNil(user.PracticeAreas))
	if err != nil {
		return fmt.Errorf("pgUserRepository.Create: marshal practice areas: %w", err)
	}
	query := `INSERT INTO users (username, hashed_password, nickname, practice_areas)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query, user.Username, user.HashedPassword, user.Nickname, areas).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) ListOthers(ctx context.Context, excludeID int64) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id <> $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, excludeID)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListOthers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("pgUserRepository.ListOthers: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListOthers: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) UpdateProfile(ctx context.Context, id int64, fields ProfileUpdate) (*model.User, error) {
	areas, err := json.Marshal(emptyIfNil(fields.PracticeAreas))
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.UpdateProfile: marshal practice areas: %w", err)
	}
	var avail interface{}
	if fields.AvailableTimes != nil {
		avail, err = json.Marshal(fields.AvailableTimes)
		if err != nil {
			return nil, fmt.Errorf("pgUserRepository.UpdateProfile: marshal available times: %w", err)
		}
	}

	query := `UPDATE users SET
	            nickname = $1,
	            contact_info = $2,
	            target_role = $3,
	            work_experience = $4,
	            practice_areas = $5,
	            target_industry = $6,
	            target_company = $7,
	            available_times = $8,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $9
	          RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(ctx, query,
		fields.Nickname, fields.ContactInfo, fields.TargetRole, fields.WorkExperience,
		areas, fields.TargetIndustry, fields.TargetCompany, avail, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateProfile: %w", err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*model.User, error) {
	user := &model.User{}
	var areas, avail []byte
	err := row.Scan(
		&user.ID, &user.Username, &user.HashedPassword, &user.Nickname, &user.ContactInfo,
		&user.TargetRole, &user.WorkExperience, &areas, &user.TargetIndustry,
		&user.TargetCompany, &avail, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(areas) > 0 {
		if err := json.Unmarshal(areas, &user.PracticeAreas); err != nil {
			return nil, fmt.Errorf("unmarshal practice areas: %w", err)
		}
	}
	if len(avail) > 0 {
		user.AvailableTimes = &model.AvailableTimes{}
		if err := json.Unmarshal(avail, user.AvailableTimes); err != nil {
			return nil, fmt.Errorf("unmarshal available times: %w", err)
		}
	}
	return user, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
