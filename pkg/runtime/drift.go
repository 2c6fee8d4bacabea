package runtime

import (
	"context"
	"fmt"

	"github.com/TechXTT/cimgen/internal/typeconv"
)

// Column is a column the generated schema expects.
type Column struct {
	Table string
	Name  string
	Type  string
}

// ColumnDrift is an expected column that is missing or has another type.
// Actual is empty when the column does not exist.
type ColumnDrift struct {
	Column
	Actual string
}

const selectColumns = `SELECT c.relname, a.attname, format_type(a.atttypid, a.atttypmod)
FROM pg_attribute a
JOIN pg_class c ON c.oid = a.attrelid
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname = current_schema() AND c.relkind = 'r' AND a.attnum > 0 AND NOT a.attisdropped`

// Drift compares want with the tables in the current schema. Types are
// compared after typeconv.CanonicalType, so int4 matches INTEGER.
func (p *Pusher) Drift(ctx context.Context, want []Column) ([]ColumnDrift, error) {
	rows, err := p.db.QueryContext(ctx, selectColumns)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	actual := map[string]map[string]string{}
	for rows.Next() {
		var table, name, typ string
		if err := rows.Scan(&table, &name, &typ); err != nil {
			return nil, err
		}
		if actual[table] == nil {
			actual[table] = map[string]string{}
		}
		actual[table][name] = typ
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []ColumnDrift
	for _, c := range want {
		got, ok := actual[c.Table][c.Name]
		if ok && typeconv.CanonicalType(got) == typeconv.CanonicalType(c.Type) {
			continue
		}
		out = append(out, ColumnDrift{Column: c, Actual: got})
		p.logger.Debug("column drift", "table", c.Table, "column", c.Name, "want", c.Type, "got", got)
	}
	return out, nil
}
