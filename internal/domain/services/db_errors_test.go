package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
)

// newMockDB 基于 sqlmock 的 MySQL 连接，用于模拟数据库故障
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestListProductsDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `products`").WillReturnError(errors.New("connection reset"))

	_, err := NewProductService(db, newTestConfig(t)).ListProducts(context.Background(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NotErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `products`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewProductService(db, newTestConfig(t)).GetProduct(context.Background(), 5, true)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders`").WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	_, err := NewOrderService(db, newTestConfig(t)).CreateOrder(context.Background(), CreateOrderInput{
		CustomerName:        "Karim",
		Phone:               "0171",
		City:                "Dhaka",
		Address:             "Road 1",
		ProductID:           1,
		ProductNameSnapshot: "Product A",
		PriceSnapshot:       decimal.RequireFromString("29.99"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdersDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `orders`").WillReturnError(errors.New("too many connections"))

	_, err := NewOrderService(db, newTestConfig(t)).ListOrders(context.Background(), models.OrderFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list orders")
	assert.NoError(t, mock.ExpectationsWereMet())
}
