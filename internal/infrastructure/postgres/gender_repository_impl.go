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

// Substring filtering uses strpos, which is case-sensitive under the default
// collation. That sensitivity is a documented, caller-visible behavior of the
// list endpoints, not something normalized away here.
var genderSortKeys = listing.NewSortKeys("gendername", map[string]string{
	"gendername":   "gender_name",
	"description":  "description",
	"creationtime": "created_at",
})

type GenderRepository struct {
	pool *pgxpool.Pool
}

func NewGenderRepository(pool *pgxpool.Pool) *GenderRepository {
	return &GenderRepository{pool: pool}
}

func (r *GenderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Gender, error) {
	g := &entity.Gender{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, gender_name, COALESCE(description, ''), created_at, updated_at, version
		FROM genders
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err := row.Scan(&g.ID, &g.GenderName, &g.Description, &g.CreatedAt, &g.UpdatedAt, &g.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *GenderRepository) GetNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, gender_name
		FROM genders
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

func (r *GenderRepository) List(ctx context.Context, p listing.Params) ([]*entity.Gender, int, error) {
	where := "deleted_at IS NULL"
	args := []any{}
	if f := p.NormalizedFilter(); f != "" {
		args = append(args, f)
		where += " AND (strpos(gender_name, $1) > 0 OR strpos(COALESCE(description, ''), $1) > 0)"
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM genders WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := genderSortKeys.Resolve(p.Sort)
	query := fmt.Sprintf(`
		SELECT id, gender_name, COALESCE(description, ''), created_at, updated_at, version
		FROM genders
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

	var out []*entity.Gender
	for rows.Next() {
		g := &entity.Gender{}
		if err := rows.Scan(&g.ID, &g.GenderName, &g.Description, &g.CreatedAt, &g.UpdatedAt, &g.Version); err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, total, rows.Err()
}

func (r *GenderRepository) Insert(ctx context.Context, g *entity.Gender) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO genders (id, gender_name, description, version)
		VALUES ($1, $2, NULLIF($3, ''), 1)
		RETURNING created_at, updated_at, version
	`, g.ID, g.GenderName, g.Description)
	return row.Scan(&g.CreatedAt, &g.UpdatedAt, &g.Version)
}

func (r *GenderRepository) Update(ctx context.Context, g *entity.Gender) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE genders
		SET gender_name = $1, description = NULLIF($2, ''), updated_at = now(), version = version + 1
		WHERE id = $3 AND deleted_at IS NULL AND version = $4
		RETURNING updated_at, version
	`, g.GenderName, g.Description, g.ID, g.Version)
	if err := row.Scan(&g.UpdatedAt, &g.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.updateFailure(ctx, g.ID)
		}
		return err
	}
	return nil
}

// updateFailure distinguishes a missing record from a lost concurrency race.
func (r *GenderRepository) updateFailure(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM genders WHERE id = $1 AND deleted_at IS NULL)
	`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrVersionConflict
	}
	return apperrors.ErrNotFound
}

func (r *GenderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE genders
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

func maxInt(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

var _ repository.GenderRepository = (*GenderRepository)(nil)
