package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muyik/smartschool/internal/domain/entity"
	"github.com/muyik/smartschool/internal/domain/listing"
	"github.com/muyik/smartschool/internal/domain/repository"
	"github.com/muyik/smartschool/pkg/apperrors"
)

var userSortKeys = listing.NewSortKeys("username", map[string]string{
	"username":     "user_name",
	"email":        "email",
	"firstname":    "first_name",
	"creationtime": "created_at",
})

const userColumns = `
	id, user_name, email, password_hash, role,
	COALESCE(first_name, ''), COALESCE(middle_name, ''), date_of_birth,
	COALESCE(user_photo, ''), has_left_school, COALESCE(address, ''),
	gender_id, school_class_id, created_at, updated_at, version`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(
		&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &u.Role,
		&u.FirstName, &u.MiddleName, &u.DateOfBirth,
		&u.UserPhoto, &u.HasLeftSchool, &u.Address,
		&u.GenderID, &u.SchoolClassID, &u.CreatedAt, &u.UpdatedAt, &u.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE user_name = $1 AND deleted_at IS NULL
	`, userName)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context, p repository.UserListParams) ([]*entity.User, int, error) {
	where := "deleted_at IS NULL"
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f := p.NormalizedFilter(); f != "" {
		n := arg(f)
		where += fmt.Sprintf(
			" AND (strpos(user_name, %[1]s) > 0 OR strpos(email, %[1]s) > 0"+
				" OR strpos(COALESCE(first_name, ''), %[1]s) > 0 OR strpos(COALESCE(middle_name, ''), %[1]s) > 0)", n)
	}
	if p.GenderID != nil {
		where += " AND gender_id = " + arg(*p.GenderID)
	}
	if p.SchoolClassID != nil {
		where += " AND school_class_id = " + arg(*p.SchoolClassID)
	}
	if p.HasLeftSchool != nil {
		where += " AND has_left_school = " + arg(*p.HasLeftSchool)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM users WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := userSortKeys.Resolve(p.Sort)
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY %s ASC, id ASC
		OFFSET %s LIMIT %s
	`, userColumns, where, orderBy, arg(maxInt(p.Skip, 0)), arg(maxInt(p.Take, 0)))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (
			id, user_name, email, password_hash, role,
			first_name, middle_name, date_of_birth, user_photo,
			has_left_school, address, gender_id, school_class_id, version
		)
		VALUES (
			$1, $2, $3, $4, $5,
			NULLIF($6, ''), NULLIF($7, ''), $8, NULLIF($9, ''),
			$10, NULLIF($11, ''), $12, $13, 1
		)
		RETURNING created_at, updated_at, version
	`, u.ID, u.UserName, u.Email, u.PasswordHash, u.Role,
		u.FirstName, u.MiddleName, u.DateOfBirth, u.UserPhoto,
		u.HasLeftSchool, u.Address, u.GenderID, u.SchoolClassID)
	return row.Scan(&u.CreatedAt, &u.UpdatedAt, &u.Version)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET user_name = $1, email = $2, password_hash = $3, role = $4,
			first_name = NULLIF($5, ''), middle_name = NULLIF($6, ''),
			date_of_birth = $7, user_photo = NULLIF($8, ''),
			has_left_school = $9, address = NULLIF($10, ''),
			gender_id = $11, school_class_id = $12,
			updated_at = now(), version = version + 1
		WHERE id = $13 AND deleted_at IS NULL AND version = $14
		RETURNING updated_at, version
	`, u.UserName, u.Email, u.PasswordHash, u.Role,
		u.FirstName, u.MiddleName, u.DateOfBirth, u.UserPhoto,
		u.HasLeftSchool, u.Address, u.GenderID, u.SchoolClassID,
		u.ID, u.Version)
	if err := row.Scan(&u.UpdatedAt, &u.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.updateFailure(ctx, u.ID)
		}
		return err
	}
	return nil
}

func (r *UserRepository) updateFailure(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND deleted_at IS NULL)
	`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrVersionConflict
	}
	return apperrors.ErrNotFound
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET deleted_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
