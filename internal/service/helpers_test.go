package service

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/session"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/database"
	"go-pos-backend/pkg/jwt"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

type recorder struct {
	mu     sync.Mutex
	events []ws.Event
}

func (r *recorder) Publish(ev ws.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type testEnv struct {
	store       *database.Store
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	journalRepo repository.StockJournalRepository
	userRepo    repository.UserRepository
	configRepo  repository.ConfigRepository

	hub       *recorder
	sessions  *session.Manager
	config    ConfigService
	converter *CurrencyConverter
	catalog   CatalogService
	stock     *stockService
	sales     *salesService
	users     UserService
	auth      AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := database.NewStore(database.Config{
		Path:     filepath.Join(t.TempDir(), "store.db"),
		LogLevel: logger.Silent,
	}, repository.Migrate)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	e := &testEnv{
		store:       store,
		productRepo: repository.NewProductRepo(store),
		saleRepo:    repository.NewSaleRepo(store),
		journalRepo: repository.NewStockJournalRepo(store),
		userRepo:    repository.NewUserRepo(store),
		configRepo:  repository.NewConfigRepo(store),
		hub:         &recorder{},
		sessions:    session.NewManager(),
	}
	e.config = NewConfigService(e.configRepo, e.hub)
	e.converter = NewCurrencyConverter(e.config)
	e.catalog = NewCatalogService(e.productRepo, e.hub)
	e.stock = NewStockService(store, e.productRepo, e.journalRepo, e.hub).(*stockService)
	e.sales = NewSalesService(store, e.productRepo, e.saleRepo, e.converter, e.hub).(*salesService)
	e.users = NewUserService(e.userRepo, e.sessions)
	e.auth = NewAuthService(e.userRepo, e.sessions, jwt.NewManager("test-secret", time.Hour))
	return e
}

func (e *testEnv) addProduct(t *testing.T, name string, price float64, quantity int) *model.Product {
	t.Helper()
	p, err := e.catalog.Add(&ProductRequest{Name: name, Price: price, Quantity: quantity}, "tester")
	require.NoError(t, err)
	return p
}

func (e *testEnv) quantity(t *testing.T, id uint) int {
	t.Helper()
	p, err := e.productRepo.FindByID(id)
	require.NoError(t, err)
	return p.Quantity
}

func (e *testEnv) countSales(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.store.DB().Model(&model.SaleRecord{}).Count(&n).Error)
	return n
}

// clock returns a settable time source.
func clock(start time.Time) (func() time.Time, func(time.Time)) {
	var mu sync.Mutex
	now := start
	get := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	set := func(t time.Time) {
		mu.Lock()
		defer mu.Unlock()
		now = t
	}
	return get, set
}

func at(s string) time.Time {
	t, err := time.ParseInLocation(model.TimestampLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}
