package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

// requirementColumnsAliased is the canonical SELECT column list for requirements.
const requirementColumnsAliased = `r.id, r.title, r.description, r.priority, r.status, r.due_date,
		r.client_id, r.category_id, r.team_member_id, r.created_at, r.updated_at`

// relationColumns are appended when the read includes related names.
const relationColumns = `, COALESCE(c.agency_name, ''), COALESCE(cat.name, ''), COALESCE(tm.name, '')`

const relationJoins = `
		LEFT JOIN clients c ON c.id = r.client_id
		LEFT JOIN categories cat ON cat.id = r.category_id
		LEFT JOIN team_members tm ON tm.id = r.team_member_id`

// referenceColumns whitelists the columns CountReferencing may filter on.
var referenceColumns = map[string]string{
	domain.FieldClientID:     "client_id",
	domain.FieldCategoryID:   "category_id",
	domain.FieldTeamMemberID: "team_member_id",
}

// SQLRequirementRepo implements RequirementRepo over database/sql.
type SQLRequirementRepo struct {
	db db.DBTX
}

// NewSQLRequirementRepo creates a new SQLRequirementRepo.
func NewSQLRequirementRepo(db db.DBTX) *SQLRequirementRepo {
	return &SQLRequirementRepo{db: db}
}

func (r *SQLRequirementRepo) Create(ctx context.Context, req *domain.Requirement) error {
	query := `INSERT INTO requirements (title, description, priority, status, due_date,
		client_id, category_id, team_member_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		req.Title,
		req.Description,
		string(req.Priority),
		string(req.Status),
		nullableDateToString(req.DueDate),
		req.ClientID,
		req.CategoryID,
		nullableIDToValue(req.TeamMemberID),
		formatTimestamp(req.CreatedAt),
		formatTimestamp(req.UpdatedAt),
	).Scan(&req.ID)
	if err != nil {
		return writeErr("inserting requirement", err)
	}
	return nil
}

func (r *SQLRequirementRepo) GetByID(ctx context.Context, id int64, include domain.Include) (*domain.RequirementView, error) {
	query := selectRequirements(include) + ` WHERE r.id = ?`
	v, err := scanRequirement(r.db.QueryRowContext(ctx, query, id), include)
	if err != nil {
		return nil, notFound(err, "requirement", id)
	}
	return v, nil
}

// List returns requirements newest first, ties broken by id.
func (r *SQLRequirementRepo) List(ctx context.Context, filter RequirementFilter, include domain.Include) ([]*domain.RequirementView, error) {
	var where []string
	var args []any
	if filter.ClientID != nil {
		where = append(where, "r.client_id = ?")
		args = append(args, *filter.ClientID)
	}
	if filter.CategoryID != nil {
		where = append(where, "r.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.TeamMemberID != nil {
		where = append(where, "r.team_member_id = ?")
		args = append(args, *filter.TeamMemberID)
	}

	query := selectRequirements(include)
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY r.created_at DESC, r.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requirements: %w", err)
	}
	defer rows.Close()

	out := []*domain.RequirementView{}
	for rows.Next() {
		v, err := scanRequirement(rows, include)
		if err != nil {
			return nil, fmt.Errorf("scanning requirement row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating requirements: %w", err)
	}
	return out, nil
}

func (r *SQLRequirementRepo) Update(ctx context.Context, req *domain.Requirement) error {
	query := `UPDATE requirements SET title = ?, description = ?, priority = ?, status = ?, due_date = ?,
		client_id = ?, category_id = ?, team_member_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		req.Title,
		req.Description,
		string(req.Priority),
		string(req.Status),
		nullableDateToString(req.DueDate),
		req.ClientID,
		req.CategoryID,
		nullableIDToValue(req.TeamMemberID),
		formatTimestamp(req.UpdatedAt),
		req.ID,
	)
	if err != nil {
		return writeErr("updating requirement", err)
	}
	return execAffectingOne(res, "requirement", req.ID)
}

func (r *SQLRequirementRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM requirements WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting requirement", err)
	}
	return execAffectingOne(res, "requirement", id)
}

func (r *SQLRequirementRepo) CountReferencing(ctx context.Context, field string, id int64) (int, error) {
	col, ok := referenceColumns[field]
	if !ok {
		return 0, fmt.Errorf("unknown reference field %q", field)
	}
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM requirements WHERE `+col+` = ?`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting requirements by %s: %w", col, err)
	}
	return n, nil
}

func selectRequirements(include domain.Include) string {
	if include == domain.IncludeRelations {
		return `SELECT ` + requirementColumnsAliased + relationColumns + ` FROM requirements r` + relationJoins
	}
	return `SELECT ` + requirementColumnsAliased + ` FROM requirements r`
}

// scanRequirement scans one row produced by selectRequirements(include).
func scanRequirement(row rowScanner, include domain.Include) (*domain.RequirementView, error) {
	var v domain.RequirementView
	var priorityStr, statusStr, createdAtStr, updatedAtStr string
	var dueDateStr sql.NullString
	var teamMemberID sql.NullInt64

	dest := []any{
		&v.ID, &v.Title, &v.Description, &priorityStr, &statusStr, &dueDateStr,
		&v.ClientID, &v.CategoryID, &teamMemberID, &createdAtStr, &updatedAtStr,
	}
	if include == domain.IncludeRelations {
		dest = append(dest, &v.ClientName, &v.CategoryName, &v.TeamMemberName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	v.Priority = domain.Priority(priorityStr)
	v.Status = domain.Status(statusStr)
	v.TeamMemberID = nullInt64ToPtr(teamMemberID)

	var err error
	if v.DueDate, err = parseNullableDate(dueDateStr); err != nil {
		return nil, err
	}
	if v.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if v.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &v, nil
}
