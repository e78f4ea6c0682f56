package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArray(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want []string
	}{
		{"null", nil, []string{}},
		{"empty", "{}", []string{}},
		{"text", "{a,b}", []string{"a", "b"}},
		{"bytes", []byte("{6f1c2b1e-0d5a-4f7e-9a51-1a2b3c4d5e01}"), []string{"6f1c2b1e-0d5a-4f7e-9a51-1a2b3c4d5e01"}},
		{"quoted", `{"30 x 40","50x70"}`, []string{"30 x 40", "50x70"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			require.NoError(t, StringArray(&got).Scan(tt.src))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsCheckViolation(check))
	assert.False(t, IsCheckViolation(errors.New("23514")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestInitDB_EmptyConnectionString(t *testing.T) {
	assert.Error(t, InitDB(""))
}
