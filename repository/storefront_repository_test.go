package repository

import (
	"context"
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

var foreignKeyViolation = &pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"}

var productRowColumns = []string{
	"id", "name", "description", "price", "category", "image_url",
	"frame_type_ids", "sub_frame_type_ids", "size_ids", "is_active", "created_at", "updated_at",
}

func TestProductRepository_List_Filters(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND LOWER(category) = LOWER($1) AND is_active = TRUE ORDER BY created_at DESC")).
		WithArgs("Landscape").
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(productP1, "Sunset", "", "1000.00", "landscape", "", "{"+frameTypeA+"}", "{}", "{"+sizeS1+","+sizeS2+"}", true, now, now))

	category := " Landscape "
	products, err := NewProductRepository().List(context.Background(), models.ProductFilterParams{Category: &category, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, []string{frameTypeA}, products[0].FrameTypeIDs)
	assert.Equal(t, []string{}, products[0].SubFrameTypeIDs)
	assert.Equal(t, []string{sizeS1, sizeS2}, products[0].SizeIDs)
	assert.True(t, decimal.NewFromInt(1000).Equal(products[0].Price))
}

func TestProductRepository_Create_PassesDerivedSizes(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("Sunset", "", decimalArg("1000"), "", "",
			stringsArg{frameTypeA}, stringsArg{}, stringsArg{sizeS1, sizeS2}, true).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(productP1, "Sunset", "", "1000.00", "", "", "{"+frameTypeA+"}", "{}", "{"+sizeS1+","+sizeS2+"}", true, now, now))

	p, err := NewProductRepository().Create(context.Background(), &models.Product{
		Name:         " Sunset ",
		Price:        decimal.NewFromInt(1000),
		FrameTypeIDs: []string{frameTypeA},
		SizeIDs:      []string{sizeS1, sizeS2},
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, productP1, p.ID)
}

func TestWishlistRepository(t *testing.T) {
	t.Run("add unknown product", func(t *testing.T) {
		mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wishlist_items")).
			WithArgs(userID, productP1).
			WillReturnError(foreignKeyViolation)

		err := NewWishlistRepository().Add(context.Background(), userID, productP1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("add twice is a no-op", func(t *testing.T) {
		mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, product_id) DO NOTHING")).
			WithArgs(userID, productP1).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, NewWishlistRepository().Add(context.Background(), userID, productP1))
	})

	t.Run("remove missing", func(t *testing.T) {
		mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM wishlist_items")).
			WithArgs(userID, productP1).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewWishlistRepository().Remove(context.Background(), userID, productP1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list joins products", func(t *testing.T) {
		mock, cleanup := setupMockDB(t)
		defer cleanup()

		now := time.Now()
		columns := append([]string{"added_at"}, productRowColumns...)
		mock.ExpectQuery(regexp.QuoteMeta("FROM wishlist_items w")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(now, productP1, "Sunset", "", "1000.00", "", "", "{}", "{}", nil, true, now, now))

		items, err := NewWishlistRepository().List(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, productP1, items[0].ProductID)
		require.NotNil(t, items[0].Product)
		assert.Equal(t, []string{}, items[0].Product.SizeIDs)
	})
}

func TestCouponRepository_Create(t *testing.T) {
	t.Run("normalizes code", func(t *testing.T) {
		mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO coupons")).
			WithArgs("SAVE10", models.CouponTypePercent, decimalArg("10"), nil, nil, nil).
			WillReturnRows(sqlmock.NewRows(couponRowColumns).
				AddRow(couponID, "SAVE10", "percent", "10.00", nil, nil, nil, 0, true, time.Now()))

		c, err := NewCouponRepository().Create(context.Background(), &models.CreateCouponRequest{
			Code:         " save10 ",
			DiscountType: models.CouponTypePercent,
			Amount:       decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code)
		assert.False(t, c.MinCartTotal.Valid)
		assert.Nil(t, c.UsageLimit)
	})

	t.Run("duplicate", func(t *testing.T) {
		mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO coupons")).
			WillReturnError(uniqueViolation)

		_, err := NewCouponRepository().Create(context.Background(), &models.CreateCouponRequest{
			Code:         "SAVE10",
			DiscountType: models.CouponTypeFlat,
			Amount:       decimal.NewFromInt(5),
		})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestCouponRepository_Deactivate_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE coupons SET is_active = FALSE")).
		WithArgs(couponID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewCouponRepository().Deactivate(context.Background(), couponID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Create(t *testing.T) {
	userColumnsList := []string{"id", "name", "email", "password_hash", "role", "created_at"}

	t.Run("lower-cases email and defaults role", func(t *testing.T) {
		mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs("Ana", "ana@example.com", "hash", models.RoleUser).
			WillReturnRows(sqlmock.NewRows(userColumnsList).
				AddRow(userID, "Ana", "ana@example.com", "hash", "user", time.Now()))

		u, err := NewUserRepository().Create(context.Background(), &models.User{Name: "Ana", Email: " Ana@Example.com", PasswordHash: "hash"})
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", u.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(uniqueViolation)

		_, err := NewUserRepository().Create(context.Background(), &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}
