package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

// SQLCategoryRepo implements CategoryRepo over database/sql.
type SQLCategoryRepo struct {
	db db.DBTX
}

// NewSQLCategoryRepo creates a new SQLCategoryRepo.
func NewSQLCategoryRepo(db db.DBTX) *SQLCategoryRepo {
	return &SQLCategoryRepo{db: db}
}

func (r *SQLCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (name, created_at) VALUES (?, ?) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.Name, formatTimestamp(c.CreatedAt)).Scan(&c.ID); err != nil {
		return writeErr("inserting category", err)
	}
	return nil
}

func (r *SQLCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err != nil {
		return nil, notFound(err, "category", id)
	}
	return c, nil
}

func (r *SQLCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM categories WHERE name = ?`, name)
	c, err := scanCategory(row)
	if err != nil {
		return nil, notFoundByName(err, "category", name)
	}
	return c, nil
}

func (r *SQLCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

func (r *SQLCategoryRepo) ListWithRequirementCounts(ctx context.Context) ([]domain.Counted[*domain.Category], error) {
	query := `SELECT c.id, c.name, c.created_at, COUNT(req.id)
		FROM categories c
		LEFT JOIN requirements req ON req.category_id = c.id
		GROUP BY c.id, c.name, c.created_at
		ORDER BY c.name, c.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories with counts: %w", err)
	}
	defer rows.Close()

	out := []domain.Counted[*domain.Category]{}
	for rows.Next() {
		var n int
		c, err := scanCategory(rows, &n)
		if err != nil {
			return nil, fmt.Errorf("scanning category count row: %w", err)
		}
		out = append(out, domain.Counted[*domain.Category]{Item: c, RequirementCount: n})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}
	return out, nil
}

func (r *SQLCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, c.Name, c.ID)
	if err != nil {
		return writeErr("updating category", err)
	}
	return execAffectingOne(res, "category", c.ID)
}

func (r *SQLCategoryRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting category", err)
	}
	return execAffectingOne(res, "category", id)
}

func (r *SQLCategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "categories", id)
}

func (r *SQLCategoryRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "categories")
}

func scanCategory(row rowScanner, extra ...any) (*domain.Category, error) {
	var c domain.Category
	var createdAtStr string
	if err := row.Scan(append([]any{&c.ID, &c.Name, &createdAtStr}, extra...)...); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	return &c, nil
}
