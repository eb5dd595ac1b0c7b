package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/5w1tchy/library-admin/internal/models"
)

type Audit struct {
	db *sql.DB
}

// AppendAudit writes entries in one multi-row INSERT.
func (a *Audit) AppendAudit(ctx context.Context, entries []models.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}
	// VALUES ($1,$2,$3,$4),($5,...)...
	args := make([]any, 0, len(entries)*4)
	vals := make([]string, 0, len(entries))
	for i, e := range entries {
		p := 4 * i
		vals = append(vals, fmt.Sprintf("($%d,$%d,$%d,$%d)", p+1, p+2, p+3, p+4))
		at := e.CreatedAt
		if at.IsZero() {
			at = time.Now().UTC()
		}
		args = append(args, e.Action, e.User, e.Details, at)
	}
	q := "INSERT INTO audit_logs (action, actor, details, created_at) VALUES " + strings.Join(vals, ",")
	_, err := a.db.ExecContext(ctx, q, args...)
	return err
}

func (a *Audit) ListAudit(ctx context.Context, f models.AuditFilter) ([]models.AuditEntry, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 || f.Size > 200 {
		f.Size = 25
	}

	where := ""
	var args []any
	if f.Action != "" {
		args = append(args, f.Action)
		where = "WHERE action = $1"
	}

	var total int
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_logs "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset, ok := f.Offset()
	if !ok {
		return []models.AuditEntry{}, total, nil
	}
	argsWithPage := append(append([]any{}, args...), f.Size, offset)

	listSQL := `
SELECT id, action, actor, details, created_at
FROM audit_logs
` + where + `
ORDER BY created_at DESC, id DESC
LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	rows, err := a.db.QueryContext(ctx, listSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]models.AuditEntry, 0, f.Size)
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.User, &e.Details, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (a *Audit) PruneAudit(ctx context.Context, before time.Time) (int64, error) {
	res, err := a.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
