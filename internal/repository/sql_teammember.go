package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

// SQLTeamMemberRepo implements TeamMemberRepo over database/sql.
type SQLTeamMemberRepo struct {
	db db.DBTX
}

// NewSQLTeamMemberRepo creates a new SQLTeamMemberRepo.
func NewSQLTeamMemberRepo(db db.DBTX) *SQLTeamMemberRepo {
	return &SQLTeamMemberRepo{db: db}
}

func (r *SQLTeamMemberRepo) Create(ctx context.Context, m *domain.TeamMember) error {
	query := `INSERT INTO team_members (name, created_at) VALUES (?, ?) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, m.Name, formatTimestamp(m.CreatedAt)).Scan(&m.ID); err != nil {
		return writeErr("inserting team member", err)
	}
	return nil
}

func (r *SQLTeamMemberRepo) GetByID(ctx context.Context, id int64) (*domain.TeamMember, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM team_members WHERE id = ?`, id)
	m, err := scanTeamMember(row)
	if err != nil {
		return nil, notFound(err, "team member", id)
	}
	return m, nil
}

// GetByName returns the oldest member with the given name; names are not unique.
func (r *SQLTeamMemberRepo) GetByName(ctx context.Context, name string) (*domain.TeamMember, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM team_members WHERE name = ? ORDER BY id LIMIT 1`, name)
	m, err := scanTeamMember(row)
	if err != nil {
		return nil, notFoundByName(err, "team member", name)
	}
	return m, nil
}

func (r *SQLTeamMemberRepo) List(ctx context.Context) ([]*domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM team_members ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	members := []*domain.TeamMember{}
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning team member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team members: %w", err)
	}
	return members, nil
}

func (r *SQLTeamMemberRepo) ListWithRequirementCounts(ctx context.Context) ([]domain.Counted[*domain.TeamMember], error) {
	query := `SELECT m.id, m.name, m.created_at, COUNT(req.id)
		FROM team_members m
		LEFT JOIN requirements req ON req.team_member_id = m.id
		GROUP BY m.id, m.name, m.created_at
		ORDER BY m.name, m.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing team members with counts: %w", err)
	}
	defer rows.Close()

	out := []domain.Counted[*domain.TeamMember]{}
	for rows.Next() {
		var n int
		m, err := scanTeamMember(rows, &n)
		if err != nil {
			return nil, fmt.Errorf("scanning team member count row: %w", err)
		}
		out = append(out, domain.Counted[*domain.TeamMember]{Item: m, RequirementCount: n})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team member counts: %w", err)
	}
	return out, nil
}

func (r *SQLTeamMemberRepo) Update(ctx context.Context, m *domain.TeamMember) error {
	res, err := r.db.ExecContext(ctx, `UPDATE team_members SET name = ? WHERE id = ?`, m.Name, m.ID)
	if err != nil {
		return writeErr("updating team member", err)
	}
	return execAffectingOne(res, "team member", m.ID)
}

func (r *SQLTeamMemberRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting team member", err)
	}
	return execAffectingOne(res, "team member", id)
}

func (r *SQLTeamMemberRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "team_members", id)
}

func (r *SQLTeamMemberRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "team_members")
}

func scanTeamMember(row rowScanner, extra ...any) (*domain.TeamMember, error) {
	var m domain.TeamMember
	var createdAtStr string
	if err := row.Scan(append([]any{&m.ID, &m.Name, &createdAtStr}, extra...)...); err != nil {
		return nil, err
	}
	var err error
	if m.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	return &m, nil
}
