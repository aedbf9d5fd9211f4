// AngelaMos | 2026
// repository.go

package exercise

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/liftingtracker/backend/internal/core"
)

const exerciseColumns = `id, name, instructions, category, muscle_group,
	       default_sets, default_reps, default_weight, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, exercise *Exercise) error
	GetByID(ctx context.Context, id string) (*Exercise, error)
	Update(ctx context.Context, exercise *Exercise) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListExercisesParams) ([]Exercise, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, exercise *Exercise) error {
	query := `
		INSERT INTO exercises (
			id, name, instructions, category, muscle_group,
			default_sets, default_reps, default_weight
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, exercise, query,
		exercise.ID,
		exercise.Name,
		exercise.Instructions,
		exercise.Category,
		exercise.MuscleGroup,
		exercise.DefaultSets,
		exercise.DefaultReps,
		exercise.DefaultWeight,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create exercise: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create exercise: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Exercise, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM exercises
		WHERE id = $1`, exerciseColumns)

	var exercise Exercise
	err := r.db.GetContext(ctx, &exercise, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get exercise: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}

	return &exercise, nil
}

func (r *repository) Update(ctx context.Context, exercise *Exercise) error {
	query := `
		UPDATE exercises
		SET name = $2,
		    instructions = $3,
		    category = $4,
		    muscle_group = $5,
		    default_sets = $6,
		    default_reps = $7,
		    default_weight = $8,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		exercise.ID,
		exercise.Name,
		exercise.Instructions,
		exercise.Category,
		exercise.MuscleGroup,
		exercise.DefaultSets,
		exercise.DefaultReps,
		exercise.DefaultWeight,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update exercise: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update exercise: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update exercise: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete exercise: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListExercisesParams,
) ([]Exercise, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	addArg := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if params.Category != "" {
		addArg("category = $%d", params.Category)
	}
	if params.MuscleGroup != "" {
		addArg("muscle_group = $%d", params.MuscleGroup)
	}
	if params.Search != "" {
		addArg("name ILIKE $%d", "%"+escapeLike(params.Search)+"%")
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM exercises WHERE %s`, whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count exercises: %w", err)
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT %s
		FROM exercises
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`,
		exerciseColumns, whereClause, len(args)-1, len(args))

	exercises := []Exercise{}
	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list exercises: %w", err)
	}

	return exercises, total, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
