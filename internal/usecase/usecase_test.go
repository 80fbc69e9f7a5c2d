package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/kiddocorner/internal/adapters/repo/postgres"
	"github.com/phenrril/kiddocorner/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(postgres.Models()...))
	return db
}

type memStorage struct {
	mu    sync.Mutex
	saved []string
	fail  error
}

func (m *memStorage) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, filename)
	return "/uploads/" + filename, nil
}

type fixture struct {
	db       *gorm.DB
	products *ProductUC
	attrs    *AttributesUC
	orders   *OrderUC
	storage  *memStorage
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	prodRepo := postgres.NewProductRepo(db)
	attrRepo := postgres.NewAttributeRepo(db)
	st := &memStorage{}
	return &fixture{
		db:      db,
		storage: st,
		products: &ProductUC{
			Products: prodRepo,
			Featured: postgres.NewFeaturedProductRepo(db),
			Attrs:    attrRepo,
		},
		attrs: &AttributesUC{Attrs: attrRepo, Products: prodRepo, Storage: st, Concurrency: 3},
		orders: &OrderUC{
			Orders:   postgres.NewOrderRepo(db),
			Products: prodRepo,
			Attrs:    attrRepo,
			Shipping: postgres.NewShippingRepo(db),
			Payments: postgres.NewPaymentMethodRepo(db),
		},
	}
}

func (f *fixture) product(t *testing.T, name string, price float64) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, Price: price, Category: "clothing", Active: true}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}
