// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"time"
)

// timestampLayout is fixed width so that text comparison in SQLite orders the
// same way as TIMESTAMP comparison in PostgreSQL.
const timestampLayout = "2006-01-02 15:04:05.000000"

// formatTimestamp renders t as the UTC text stored in TIMESTAMP columns.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// timestamp scans a TIMESTAMP column from either driver into a UTC time.Time.
// lib/pq returns time.Time; modernc.org/sqlite may return time.Time or text.
type timestamp struct {
	t *time.Time
}

var parseLayouts = []string{
	timestampLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range parseLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*ts.t = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
