package uploads

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"halo-backend/internal/analysis"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, upload *MenuUpload) error {
	result, err := json.Marshal(upload.AnalysisResult)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO menu_uploads (user_id, upload_name, analysis_result, image_key, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, created_at
	`, upload.UserID, upload.UploadName, result, upload.ImageKey).
		Scan(&upload.ID, &upload.CreatedAt)
}

func (r *PostgresRepository) List(ctx context.Context, userID, limit int) ([]MenuUpload, error) {
	query := `
		SELECT id, user_id, upload_name, created_at, analysis_result, image_key
		FROM menu_uploads
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MenuUpload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int) (*MenuUpload, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, upload_name, created_at, analysis_result, image_key
		FROM menu_uploads
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	u, err := scanUpload(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *PostgresRepository) Rename(ctx context.Context, userID, id int, name string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_uploads
		SET upload_name = $1
		WHERE id = $2 AND user_id = $3
	`, name, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM menu_uploads
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUpload(row pgx.Row) (*MenuUpload, error) {
	var (
		u   MenuUpload
		raw []byte
	)
	if err := row.Scan(&u.ID, &u.UserID, &u.UploadName, &u.CreatedAt, &raw, &u.ImageKey); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &u.AnalysisResult); err != nil {
		return nil, err
	}
	if u.AnalysisResult == nil {
		u.AnalysisResult = []analysis.MenuItem{}
	}
	return &u, nil
}
