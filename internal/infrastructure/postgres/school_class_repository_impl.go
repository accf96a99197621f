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

var schoolClassSortKeys = listing.NewSortKeys("classname", map[string]string{
	"classname":    "class_name",
	"description":  "description",
	"creationtime": "created_at",
})

type SchoolClassRepository struct {
	pool *pgxpool.Pool
}

func NewSchoolClassRepository(pool *pgxpool.Pool) *SchoolClassRepository {
	return &SchoolClassRepository{pool: pool}
}

func (r *SchoolClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SchoolClass, error) {
	c := &entity.SchoolClass{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, class_name, COALESCE(description, ''), created_at, updated_at, version
		FROM school_classes
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err := row.Scan(&c.ID, &c.ClassName, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *SchoolClassRepository) GetNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, class_name
		FROM school_classes
		WHERE id = ANY($1) AND deleted_at IS NULL
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

func (r *SchoolClassRepository) List(ctx context.Context, p listing.Params) ([]*entity.SchoolClass, int, error) {
	where := "deleted_at IS NULL"
	args := []any{}
	if f := p.NormalizedFilter(); f != "" {
		args = append(args, f)
		where += " AND (strpos(class_name, $1) > 0 OR strpos(COALESCE(description, ''), $1) > 0)"
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM school_classes WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := schoolClassSortKeys.Resolve(p.Sort)
	query := fmt.Sprintf(`
		SELECT id, class_name, COALESCE(description, ''), created_at, updated_at, version
		FROM school_classes
		WHERE %s
		ORDER BY %s ASC, id ASC
		OFFSET $%d LIMIT $%d
	`, where, orderBy, len(args)+1, len(args)+2)
	args = append(args, maxInt(p.Skip, 0), maxInt(p.Take, 0))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*entity.SchoolClass
	for rows.Next() {
		c := &entity.SchoolClass{}
		if err := rows.Scan(&c.ID, &c.ClassName, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.Version); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *SchoolClassRepository) Insert(ctx context.Context, c *entity.SchoolClass) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO school_classes (id, class_name, description, version)
		VALUES ($1, $2, NULLIF($3, ''), 1)
		RETURNING created_at, updated_at, version
	`, c.ID, c.ClassName, c.Description)
	return row.Scan(&c.CreatedAt, &c.UpdatedAt, &c.Version)
}

func (r *SchoolClassRepository) Update(ctx context.Context, c *entity.SchoolClass) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE school_classes
		SET class_name = $1, description = NULLIF($2, ''), updated_at = now(), version = version + 1
		WHERE id = $3 AND deleted_at IS NULL AND version = $4
		RETURNING updated_at, version
	`, c.ClassName, c.Description, c.ID, c.Version)
	if err := row.Scan(&c.UpdatedAt, &c.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.updateFailure(ctx, c.ID)
		}
		return err
	}
	return nil
}

func (r *SchoolClassRepository) updateFailure(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM school_classes WHERE id = $1 AND deleted_at IS NULL)
	`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrVersionConflict
	}
	return apperrors.ErrNotFound
}

func (r *SchoolClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE school_classes
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

var _ repository.SchoolClassRepository = (*SchoolClassRepository)(nil)
