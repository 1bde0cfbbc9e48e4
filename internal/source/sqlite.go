package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const queryTimeout = 5 * time.Second

// readSQLite reads the activities table. Only the columns it knows are
// used; the rest are ignored.
func readSQLite(ctx context.Context, path string) ([]rawRecord, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.QueryContext(ctx, `SELECT * FROM activities ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	columnMap := make(map[string]int, len(names))
	for i, name := range names {
		columnMap[strings.ToLower(name)] = i
	}
	if _, ok := columnMap["date"]; !ok {
		return nil, fmt.Errorf("activities table has no date column")
	}

	var raws []rawRecord
	values := make([]sql.NullString, len(names))
	dest := make([]interface{}, len(names))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		for i := range values {
			values[i] = sql.NullString{}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		raws = append(raws, fromColumns(columnMap, func(i int) string {
			return values[i].String
		}))
	}
	return raws, rows.Err()
}
