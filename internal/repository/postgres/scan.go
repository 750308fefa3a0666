package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"holidayplanner/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const userColumns = `u.id, u.first_name, u.last_name, u.email, u.is_organiser, u.created_at, u.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// loadAttendees fetches the attendees of the given parents from a join table with
// columns (id, <parentColumn>, user_id), keyed by parent id in join order.
func loadAttendees(ctx context.Context, db *sql.DB, table, parentColumn string, parentIDs []int64) (map[int64]domain.Attendees, error) {
	out := make(map[int64]domain.Attendees, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT a.` + parentColumn + `, ` + userColumns + `
		FROM ` + table + ` a
		INNER JOIN users u ON u.id = a.user_id
		WHERE a.` + parentColumn + ` = ANY($1)
		ORDER BY a.` + parentColumn + `, a.id
	`
	rows, err := db.QueryContext(ctx, query, pq.Array(parentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var parentID int64
		var u domain.User
		if err := rows.Scan(&parentID, &u.ID, &u.FirstName, &u.LastName, &u.Email, &u.IsOrganiser, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		list := out[parentID]
		list.Add(u)
		out[parentID] = list
	}
	return out, rows.Err()
}
