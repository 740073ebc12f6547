package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"
	"go-pos-backend/internal/session"
	"go-pos-backend/pkg/database"
	"go-pos-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	store, err := database.NewStore(database.Config{
		Path:     filepath.Join(dir, "store.db"),
		LogLevel: logger.Silent,
	}, repository.Migrate)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sessions := session.NewManager()
	productRepo := repository.NewProductRepo(store)
	saleRepo := repository.NewSaleRepo(store)
	journalRepo := repository.NewStockJournalRepo(store)
	userRepo := repository.NewUserRepo(store)

	configService := service.NewConfigService(repository.NewConfigRepo(store), nil)
	converter := service.NewCurrencyConverter(configService)
	stockService := service.NewStockService(store, productRepo, journalRepo, nil)
	salesService := service.NewSalesService(store, productRepo, saleRepo, converter, nil)
	authService := service.NewAuthService(userRepo, sessions, jwt.NewManager("test-secret", time.Hour))
	userService := service.NewUserService(userRepo, sessions)
	validate := func(path string) error { return database.ValidateBackup(path, "products") }

	require.NoError(t, userService.SeedDefaults("admin123", "sale456"))
	require.NoError(t, configService.SeedDefaults())

	app := fiber.New()
	RegisterRoutes(app, authService, Handlers{
		Auth:      NewAuthHandler(authService),
		Product:   NewProductHandler(service.NewCatalogService(productRepo, nil)),
		Stock:     NewStockHandler(stockService),
		Sales:     NewSalesHandler(salesService),
		Config:    NewConfigHandler(configService),
		Report:    NewReportHandler(service.NewReportService(salesService, stockService, converter)),
		Dashboard: NewDashboardHandler(service.NewDashboardService(saleRepo)),
		User:      NewUserHandler(userService),
		Backup:    NewBackupHandler(service.NewSnapshotService(store, filepath.Join(dir, "backups"), validate, sessions, nil)),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"username": username, "password": password})
	require.Equal(t, http.StatusOK, status, body)
	return body["token"].(string)
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"username": "manager", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"username": "manager"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/products", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSellerPrivileges(t *testing.T) {
	app := newTestApp(t)
	seller := login(t, app, "seller", "sale456")

	status, _ := do(t, app, http.MethodGet, "/api/v1/products", seller, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/stock/receive", seller, fiber.Map{"product_id": 1, "quantity": 1})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/users", seller, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestSaleFlow(t *testing.T) {
	app := newTestApp(t)
	manager := login(t, app, "manager", "admin123")
	seller := login(t, app, "seller", "sale456")

	status, body := do(t, app, http.MethodPost, "/api/v1/products", manager, fiber.Map{"name": "Soda", "price": 500, "quantity": 2})
	require.Equal(t, http.StatusCreated, status, body)
	id := body["data"].(map[string]interface{})["id"].(float64)

	status, body = do(t, app, http.MethodPost, "/api/v1/stock/receive", manager, fiber.Map{"product_id": id, "quantity": 3})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, service.ReceiptRecordedMessage, body["message"])

	status, _ = do(t, app, http.MethodPost, "/api/v1/stock/receive", manager, fiber.Map{"product_id": id, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/cart/items", seller, fiber.Map{"product_id": id, "quantity": 9})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/cart/items", seller, fiber.Map{"product_id": id, "quantity": 4})
	require.Equal(t, http.StatusCreated, status)

	status, body = do(t, app, http.MethodGet, "/api/v1/cart", seller, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2000.0, body["total"])

	status, body = do(t, app, http.MethodPost, "/api/v1/cart/checkout", seller, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 1.0, body["successes"])
	assert.Equal(t, 0.0, body["failures"])

	status, _ = do(t, app, http.MethodPost, "/api/v1/cart/checkout", seller, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, "/api/v1/products/"+jsonID(id), manager, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["quantity"])

	status, body = do(t, app, http.MethodGet, "/api/v1/sales/history", manager, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2000.0, body["total"])

	status, _ = do(t, app, http.MethodGet, "/api/v1/sales/history?from=yesterday", manager, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, "/api/v1/dashboard/stock-movement?days=3", manager, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3.0, body["total_inbound"])
	assert.Equal(t, 4.0, body["total_outbound"])

	status, _ = do(t, app, http.MethodGet, "/api/v1/dashboard/stock-movement?days=-1", manager, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, "/api/v1/dashboard/stats", manager, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["low_stock_count"])
	assert.Equal(t, 500.0, body["total_valuation"])
}

func TestConfigRate(t *testing.T) {
	app := newTestApp(t)
	manager := login(t, app, "manager", "admin123")

	status, body := do(t, app, http.MethodGet, "/api/v1/config/rate", manager, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2750.0, body["rate"])

	status, _ = do(t, app, http.MethodPut, "/api/v1/config/rate", manager, fiber.Map{"rate": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPut, "/api/v1/config/rate", manager, fiber.Map{"rate": 2900})
	assert.Equal(t, http.StatusOK, status)
}

func TestUserManagement(t *testing.T) {
	app := newTestApp(t)
	manager := login(t, app, "manager", "admin123")

	status, _ := do(t, app, http.MethodDelete, "/api/v1/users/1", manager, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/users", manager, fiber.Map{"username": "seller", "password": "abcd", "role": "seller"})
	assert.Equal(t, http.StatusConflict, status)

	status, body := do(t, app, http.MethodPost, "/api/v1/users", manager, fiber.Map{"username": "bob", "password": "abcd", "role": "seller"})
	require.Equal(t, http.StatusCreated, status, body)
	id := body["data"].(map[string]interface{})["id"].(float64)

	status, _ = do(t, app, http.MethodDelete, "/api/v1/users/"+jsonID(id), manager, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestBackups(t *testing.T) {
	app := newTestApp(t)
	manager := login(t, app, "manager", "admin123")

	status, body := do(t, app, http.MethodPost, "/api/v1/backups", manager, nil)
	require.Equal(t, http.StatusCreated, status, body)
	name := body["name"].(string)

	status, _ = do(t, app, http.MethodPost, "/api/v1/backups/restore", manager, fiber.Map{"name": "../store.db"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/backups/restore", manager, fiber.Map{"name": "backup_missing.db"})
	assert.Equal(t, http.StatusInternalServerError, status)

	status, body = do(t, app, http.MethodPost, "/api/v1/backups/restore", manager, fiber.Map{"name": name})
	assert.Equal(t, http.StatusOK, status, body)
}

func jsonID(id float64) string {
	raw, _ := json.Marshal(int(id))
	return string(raw)
}
