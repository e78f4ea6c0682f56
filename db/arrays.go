package db

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgtype"
)

// StringArray returns a scanner that decodes a PostgreSQL text or uuid array into dst.
// A NULL array scans as an empty slice.
func StringArray(dst *[]string) sql.Scanner {
	return &stringArrayScanner{dst: dst}
}

type stringArrayScanner struct {
	dst *[]string
}

func (s *stringArrayScanner) Scan(src any) error {
	if src == nil {
		*s.dst = []string{}
		return nil
	}
	var out []string
	if err := pgtype.NewMap().SQLScanner(&out).Scan(src); err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*s.dst = out
	return nil
}
