package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

const clientColumns = `id, agency_name, contact_person, email, phone, address, website, created_at`

const clientColumnsAliased = `c.id, c.agency_name, c.contact_person, c.email, c.phone, c.address, c.website, c.created_at`

// SQLClientRepo implements ClientRepo over database/sql.
type SQLClientRepo struct {
	db db.DBTX
}

// NewSQLClientRepo creates a new SQLClientRepo.
func NewSQLClientRepo(db db.DBTX) *SQLClientRepo {
	return &SQLClientRepo{db: db}
}

func (r *SQLClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (agency_name, contact_person, email, phone, address, website, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		c.AgencyName,
		c.ContactPerson,
		c.Email,
		c.Phone,
		c.Address,
		c.Website,
		formatTimestamp(c.CreatedAt),
	).Scan(&c.ID)
	if err != nil {
		return writeErr("inserting client", err)
	}
	return nil
}

func (r *SQLClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "client", id)
	}
	return c, nil
}

func (r *SQLClientRepo) GetByAgencyName(ctx context.Context, name string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE agency_name = ? ORDER BY id LIMIT 1`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, notFoundByName(err, "client", name)
	}
	return c, nil
}

func (r *SQLClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY agency_name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	clients := []*domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return clients, nil
}

func (r *SQLClientRepo) ListWithRequirementCounts(ctx context.Context) ([]domain.Counted[*domain.Client], error) {
	query := `SELECT ` + clientColumnsAliased + `, COUNT(req.id)
		FROM clients c
		LEFT JOIN requirements req ON req.client_id = c.id
		GROUP BY ` + clientColumnsAliased + `
		ORDER BY c.agency_name, c.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients with counts: %w", err)
	}
	defer rows.Close()

	out := []domain.Counted[*domain.Client]{}
	for rows.Next() {
		var n int
		c, err := scanClient(rows, &n)
		if err != nil {
			return nil, fmt.Errorf("scanning client count row: %w", err)
		}
		out = append(out, domain.Counted[*domain.Client]{Item: c, RequirementCount: n})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client counts: %w", err)
	}
	return out, nil
}

func (r *SQLClientRepo) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET agency_name = ?, contact_person = ?, email = ?, phone = ?, address = ?, website = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.AgencyName,
		c.ContactPerson,
		c.Email,
		c.Phone,
		c.Address,
		c.Website,
		c.ID,
	)
	if err != nil {
		return writeErr("updating client", err)
	}
	return execAffectingOne(res, "client", c.ID)
}

func (r *SQLClientRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting client", err)
	}
	return execAffectingOne(res, "client", id)
}

func (r *SQLClientRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "clients", id)
}

func (r *SQLClientRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "clients")
}

// scanClient scans the client columns, followed by any extra destinations.
func scanClient(row rowScanner, extra ...any) (*domain.Client, error) {
	var c domain.Client
	var createdAtStr string

	dest := []any{
		&c.ID, &c.AgencyName, &c.ContactPerson, &c.Email,
		&c.Phone, &c.Address, &c.Website, &createdAtStr,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	var err error
	if c.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	return &c, nil
}

// exists and count are shared by the lookup tables. table is always a
// package constant, never caller input.
func exists(ctx context.Context, q db.DBTX, table string, id int64) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking %s existence: %w", table, err)
	}
	return n > 0, nil
}

func count(ctx context.Context, q db.DBTX, table string) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}
