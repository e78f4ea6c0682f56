package repository

import (
	"database/sql/driver"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"frame-storefront/db"
)

// arrayConverter lets []string arguments reach the mock unchanged, the way the pgx driver accepts them
type arrayConverter struct{}

func (arrayConverter) ConvertValue(v any) (driver.Value, error) {
	if s, ok := v.([]string); ok {
		return s, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

// stringsArg matches a []string argument by value
type stringsArg []string

func (a stringsArg) Match(v driver.Value) bool {
	got, ok := v.([]string)
	return ok && reflect.DeepEqual([]string(a), got)
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.ValueConverterOption(arrayConverter{}))
	require.NoError(t, err)

	previous := db.DB
	db.DB = mockDB

	cleanup := func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.DB = previous
		mockDB.Close()
	}
	return mock, cleanup
}

// decimalArg matches a numeric argument by value regardless of scale
type decimalArg string

func (a decimalArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	got, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return got.Equal(decimal.RequireFromString(string(a)))
}
