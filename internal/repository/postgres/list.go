package pgrepo

import (
	"context"
	"fmt"
	"strings"

	"gamestore-admin/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// listQuery builds the filtered, ordered and paged SELECT for a table.
// Arguments already in args (a parent scope, say) keep their positions.
type listQuery struct {
	table   string
	columns string
	search  string // column matched by ILIKE
	where   []string
	args    []any
}

func (l listQuery) filter(q domain.ListQuery) (string, []any) {
	where := append([]string(nil), l.where...)
	args := append([]any(nil), l.args...)
	if term := strings.TrimSpace(q.Search); term != "" {
		args = append(args, "%"+escapeLike(term)+"%")
		where = append(where, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, pq.QuoteIdentifier(l.search), len(args)))
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// listPage executes the count and page queries. q must be normalized so q.Order is
// a whitelisted column.
func listPage[T any](ctx context.Context, db dbtx, l listQuery, q domain.ListQuery, scan pgx.RowToFunc[T]) ([]T, int64, error) {
	where, args := l.filter(q)

	var total int64
	if err := db.QueryRow(ctx, "SELECT count(*) FROM "+l.table+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", l.table, err)
	}

	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	args = append(args, q.Length, q.Offset())
	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		l.columns, l.table, where, pq.QuoteIdentifier(q.Order), dir, len(args)-1, len(args))

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", l.table, err)
	}
	out, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, 0, fmt.Errorf("scan %s: %w", l.table, err)
	}
	return out, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// taken reports whether another row holds value in column, ignoring case.
func taken(ctx context.Context, db dbtx, table, column, value string, excludeID int64) (bool, error) {
	var exists bool
	sql := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE lower(%s) = lower($1) AND id <> $2)",
		table, pq.QuoteIdentifier(column))
	if err := db.QueryRow(ctx, sql, strings.TrimSpace(value), excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s.%s: %w", table, column, err)
	}
	return exists, nil
}
