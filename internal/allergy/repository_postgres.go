package allergy

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]UserAllergy, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ua.id, ua.user_id, ua.allergen_id, ua.severity, a.name
		FROM user_allergies ua
		JOIN allergens a ON a.id = ua.allergen_id
		WHERE ua.user_id = $1
		ORDER BY ua.severity DESC, ua.id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []UserAllergy
	for rows.Next() {
		var ua UserAllergy
		if err := rows.Scan(&ua.ID, &ua.UserID, &ua.AllergenID, &ua.Severity, &ua.AllergenName); err != nil {
			return nil, err
		}
		result = append(result, ua)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) FindAllergenByName(ctx context.Context, name string) (*Allergen, error) {
	a := &Allergen{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name FROM allergens WHERE name = $1
	`, name).Scan(&a.ID, &a.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAllergenNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) FindUserAllergy(ctx context.Context, userID, allergenID int) (*UserAllergy, error) {
	return r.findOne(ctx, `
		SELECT ua.id, ua.user_id, ua.allergen_id, ua.severity, a.name
		FROM user_allergies ua
		JOIN allergens a ON a.id = ua.allergen_id
		WHERE ua.user_id = $1 AND ua.allergen_id = $2
	`, userID, allergenID)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int) (*UserAllergy, error) {
	return r.findOne(ctx, `
		SELECT ua.id, ua.user_id, ua.allergen_id, ua.severity, a.name
		FROM user_allergies ua
		JOIN allergens a ON a.id = ua.allergen_id
		WHERE ua.id = $1
	`, id)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, args ...any) (*UserAllergy, error) {
	ua := &UserAllergy{}
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&ua.ID, &ua.UserID, &ua.AllergenID, &ua.Severity, &ua.AllergenName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ua, nil
}

func (r *PostgresRepository) Create(ctx context.Context, ua *UserAllergy) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO user_allergies (user_id, allergen_id, severity)
		VALUES ($1, $2, $3)
		RETURNING id
	`, ua.UserID, ua.AllergenID, ua.Severity).Scan(&ua.ID)
}

func (r *PostgresRepository) UpdateSeverity(ctx context.Context, id, severity int) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE user_allergies SET severity = $1 WHERE id = $2
	`, severity, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM user_allergies WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
