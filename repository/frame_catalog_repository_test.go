package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frame-storefront/models"
)

const (
	frameTypeA = "6f1c2b1e-0d5a-4f7e-9a51-1a2b3c4d5e01"
	frameTypeB = "6f1c2b1e-0d5a-4f7e-9a51-1a2b3c4d5e02"
	sizeS1     = "0b7e8a44-2f6c-4d3b-8e21-aa00bb11cc01"
	sizeS2     = "0b7e8a44-2f6c-4d3b-8e21-aa00bb11cc02"
	sizeS3     = "0b7e8a44-2f6c-4d3b-8e21-aa00bb11cc03"
	subFrameX  = "9d3e1f20-7a6b-4c5d-8e9f-102030405001"
)

var uniqueViolation = &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}

func TestCatalogRepository_LoadFrameTypesWithSizes_GroupsSizes(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "price", "id", "name", "price"}).
		AddRow(frameTypeA, "Oak", "200.00", sizeS1, "30x40", "500.00").
		AddRow(frameTypeA, "Oak", "200.00", sizeS2, "50x70", "900.00").
		AddRow(frameTypeB, "Steel", "150.00", nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN frame_sizes fs ON fs.id = ANY(ft.frame_size_ids)")).
		WithArgs(stringsArg{frameTypeA, frameTypeB}).
		WillReturnRows(rows)

	repo := NewCatalogRepository()
	idx, err := repo.LoadFrameTypesWithSizes(context.Background(), []string{frameTypeA, frameTypeB})
	require.NoError(t, err)
	require.Len(t, idx, 2)

	a := idx[frameTypeA]
	assert.True(t, decimal.NewFromInt(200).Equal(a.Price))
	require.Len(t, a.Sizes, 2)
	assert.Equal(t, sizeS1, a.Sizes[0].ID)
	assert.Equal(t, "50x70", a.Sizes[1].Name)
	assert.True(t, decimal.NewFromInt(900).Equal(a.Sizes[1].Price))

	b := idx[frameTypeB]
	assert.Equal(t, "Steel", b.Name)
	assert.Empty(t, b.Sizes)
	assert.NotNil(t, b.Sizes)
}

func TestCatalogRepository_LoadFrameTypesWithSizes_EmptyInputSkipsQuery(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	idx, err := NewCatalogRepository().LoadFrameTypesWithSizes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, idx)
}

func TestCatalogRepository_LoadFrameTypesWithSizes_QueryError(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("FROM frame_types").WillReturnError(errors.New("connection reset"))

	_, err := NewCatalogRepository().LoadFrameTypesWithSizes(context.Background(), []string{frameTypeA})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestFrameSizeRepository_Create_PushesBackReference(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM frame_types WHERE id = $1 FOR UPDATE")).
		WithArgs(frameTypeA).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(frameTypeA))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO frame_sizes")).
		WithArgs("30x40", sqlmock.AnyArg(), frameTypeA).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "frame_type_id", "created_at", "updated_at"}).
			AddRow(sizeS1, "30x40", "500.00", frameTypeA, now, now))
	mock.ExpectExec(regexp.QuoteMeta("SET frame_size_ids = array_append(frame_size_ids, $1::uuid)")).
		WithArgs(sizeS1, frameTypeA).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewFrameSizeRepository()
	fs, err := repo.Create(context.Background(), &models.CreateFrameSizeRequest{
		Name:        " 30x40 ",
		Price:       decimal.NewFromInt(500),
		FrameTypeID: frameTypeA,
	})
	require.NoError(t, err)
	assert.Equal(t, sizeS1, fs.ID)
	assert.Equal(t, frameTypeA, fs.FrameTypeID)
	assert.True(t, decimal.NewFromInt(500).Equal(fs.Price))
}

func TestFrameSizeRepository_Create_DuplicateNameRollsBack(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM frame_types").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(frameTypeA))
	mock.ExpectQuery("INSERT INTO frame_sizes").WillReturnError(uniqueViolation)
	mock.ExpectRollback()

	_, err := NewFrameSizeRepository().Create(context.Background(), &models.CreateFrameSizeRequest{
		Name:        "30x40",
		Price:       decimal.NewFromInt(500),
		FrameTypeID: frameTypeA,
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestFrameSizeRepository_Create_MissingFrameType(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM frame_types").
		WithArgs(frameTypeB).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := NewFrameSizeRepository().Create(context.Background(), &models.CreateFrameSizeRequest{
		Name:        "30x40",
		FrameTypeID: frameTypeB,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFrameSizeRepository_Create_NegativePrice(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	_, err := NewFrameSizeRepository().Create(context.Background(), &models.CreateFrameSizeRequest{
		Name:        "30x40",
		Price:       decimal.NewFromInt(-1),
		FrameTypeID: frameTypeA,
	})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewSubFrameTypeRepository().Create(context.Background(), &models.CreateSubFrameTypeRequest{
		Name:        "Gold leaf",
		Price:       decimal.NewFromInt(-1),
		FrameTypeID: frameTypeA,
	})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestFrameSizeRepository_Delete_PullsBackReference(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM frame_sizes WHERE id = $1 RETURNING frame_type_id")).
		WithArgs(sizeS1).
		WillReturnRows(sqlmock.NewRows([]string{"frame_type_id"}).AddRow(frameTypeA))
	mock.ExpectExec(regexp.QuoteMeta("SET frame_size_ids = array_remove(frame_size_ids, $1::uuid)")).
		WithArgs(sizeS1, frameTypeA).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewFrameSizeRepository().Delete(context.Background(), sizeS1))
}

func TestFrameSizeRepository_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM frame_sizes").
		WithArgs(sizeS3).
		WillReturnRows(sqlmock.NewRows([]string{"frame_type_id"}))
	mock.ExpectRollback()

	err := NewFrameSizeRepository().Delete(context.Background(), sizeS3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFrameSizeRepository_Delete_BackReferenceFailureRollsBack(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM frame_sizes").
		WillReturnRows(sqlmock.NewRows([]string{"frame_type_id"}).AddRow(frameTypeA))
	mock.ExpectExec("array_remove").WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := NewFrameSizeRepository().Delete(context.Background(), sizeS1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSubFrameTypeRepository_Create_RequiresFrameType(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM frame_types").
		WithArgs(frameTypeB).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := NewSubFrameTypeRepository().Create(context.Background(), &models.CreateSubFrameTypeRequest{
		Name:        "Gloss",
		FrameTypeID: frameTypeB,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubFrameTypeRepository_Create_AppendsBackReference(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM frame_types").
		WithArgs(frameTypeA).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(frameTypeA))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sub_frame_types")).
		WithArgs("Gloss", sqlmock.AnyArg(), frameTypeA, stringsArg{}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "frame_type_id", "images", "created_at", "updated_at"}).
			AddRow(subFrameX, "Gloss", "0.00", frameTypeA, "{}", now, now))
	mock.ExpectExec(regexp.QuoteMeta("SET sub_frame_type_ids = array_append(sub_frame_type_ids, $1::uuid)")).
		WithArgs(subFrameX, frameTypeA).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sft, err := NewSubFrameTypeRepository().Create(context.Background(), &models.CreateSubFrameTypeRequest{
		Name:        "Gloss",
		FrameTypeID: frameTypeA,
	})
	require.NoError(t, err)
	assert.Equal(t, subFrameX, sft.ID)
	assert.Equal(t, []string{}, sft.Images)
}

func TestSubFrameTypeRepository_Delete_PullsBackReference(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM sub_frame_types").
		WithArgs(subFrameX).
		WillReturnRows(sqlmock.NewRows([]string{"frame_type_id"}).AddRow(frameTypeA))
	mock.ExpectExec(regexp.QuoteMeta("array_remove(sub_frame_type_ids, $1::uuid)")).
		WithArgs(subFrameX, frameTypeA).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewSubFrameTypeRepository().Delete(context.Background(), subFrameX))
}

func TestFrameTypeRepository_GetByID_ScansBackReferences(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("FROM frame_types WHERE id = ").
		WithArgs(frameTypeA).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "sub_frame_type_ids", "frame_size_ids", "created_at", "updated_at"}).
			AddRow(frameTypeA, "Oak", "Solid oak", "200.00", "{"+subFrameX+"}", "{"+sizeS1+","+sizeS2+"}", now, now))

	ft, err := NewFrameTypeRepository().GetByID(context.Background(), frameTypeA)
	require.NoError(t, err)
	assert.Equal(t, []string{subFrameX}, ft.SubFrameTypeIDs)
	assert.Equal(t, []string{sizeS1, sizeS2}, ft.FrameSizeIDs)
}

func TestFrameTypeRepository_Create_Duplicate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO frame_types").
		WithArgs("Oak", "", sqlmock.AnyArg()).
		WillReturnError(uniqueViolation)

	_, err := NewFrameTypeRepository().Create(context.Background(), &models.CreateFrameTypeRequest{Name: "Oak"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestFrameTypeRepository_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM frame_types").
		WithArgs(frameTypeB).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewFrameTypeRepository().Delete(context.Background(), frameTypeB)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFrameTypeRepository_IDsByName_CaseInsensitive(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(name) = ANY($1::text[])")).
		WithArgs(stringsArg{"oak", "steel"}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(frameTypeA, "oak"))

	ids, err := NewFrameTypeRepository().IDsByName(context.Background(), []string{" Oak", "STEEL"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"oak": frameTypeA}, ids)
}

func TestSubFrameTypeRepository_IDsByName_AmbiguousName(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM sub_frame_types WHERE LOWER(name) = ANY($1::text[])")).
		WithArgs(stringsArg{"gloss"}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(subFrameX, "gloss").
			AddRow("9d3e1f20-7a6b-4c5d-8e9f-102030405002", "gloss"))

	_, err := NewSubFrameTypeRepository().IDsByName(context.Background(), []string{"Gloss"})
	assert.ErrorIs(t, err, ErrDuplicate)
}
