package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/labakery/backend/internal/application/catalog"
	financeapp "github.com/labakery/backend/internal/application/finance"
	"github.com/labakery/backend/internal/application/identity"
	orderapp "github.com/labakery/backend/internal/application/order"
	reportapp "github.com/labakery/backend/internal/application/report"
	settingsapp "github.com/labakery/backend/internal/application/settings"
	"github.com/labakery/backend/internal/infrastructure/auth"
	"github.com/labakery/backend/internal/infrastructure/config"
	"github.com/labakery/backend/internal/infrastructure/persistence"
	"github.com/labakery/backend/internal/infrastructure/persistence/models"
	"github.com/labakery/backend/internal/infrastructure/storage"
	"github.com/labakery/backend/internal/interfaces/http/handler"
	"github.com/labakery/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testAdminUser     = "owner"
	testAdminPassword = "croissant-42"
)

// newTestAPI wires the full API over an in-memory database
func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	middleware.SetupValidator()
	decimal.MarshalJSONWithoutQuotes = true
	t.Cleanup(func() { decimal.MarshalJSONWithoutQuotes = false })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	log := zaptest.NewLogger(t)
	orderRepo := persistence.NewGormOrderRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	expenseRepo := persistence.NewGormExpenseRepository(db)
	settingsRepo := persistence.NewGormStoreConfigRepository(db)

	hash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "labakery-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	const maxUpload = 1 << 20
	handlers := Handlers{
		Order:    handler.NewOrderHandler(orderapp.NewOrderService(orderRepo, settingsRepo, log)),
		Product:  handler.NewProductHandler(catalogapp.NewProductService(productRepo, log)),
		Upload:   handler.NewUploadHandler(catalogapp.NewUploadService(storage.NewMemoryImageStorage("http://cdn.test"), maxUpload, log), maxUpload),
		Expense:  handler.NewExpenseHandler(financeapp.NewExpenseService(expenseRepo, log)),
		Settings: handler.NewSettingsHandler(settingsapp.NewSettingsService(settingsRepo, log)),
		Report:   handler.NewReportHandler(reportapp.NewReportService(orderRepo, expenseRepo, productRepo, time.UTC, log)),
		Auth: handler.NewAuthHandler(identity.NewAuthService(
			jwtService, blacklist, identity.DefaultAuthServiceConfig(testAdminUser, hash), log,
		)),
		System: handler.NewSystemHandler("labakery"),
	}

	adminCfg := middleware.DefaultJWTConfig(jwtService)
	adminCfg.TokenBlacklist = blacklist
	guards := Guards{
		Admin:        middleware.JWTAuthMiddlewareWithConfig(adminCfg),
		OptionalAuth: middleware.OptionalJWTAuthMiddleware(jwtService, blacklist),
		JSONBody:     middleware.BodyLimit(64 << 10),
		UploadBody:   middleware.BodyLimit(2 * maxUpload),
	}

	engine := gin.New()
	Mount(NewRouter(engine), handlers, guards)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/api/admin/login", "", map[string]string{
		"username": testAdminUser,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func checkoutBody() map[string]any {
	return map[string]any{
		"customerName":  "Ana",
		"phoneNumber":   "+34 600 000 000",
		"paymentMethod": "bizum",
		"shippingDate":  "2026-12-24",
		"items": []map[string]any{
			{"productId": "7f0c5f8e-55a8-4c1e-9f3f-0d6c7f2b1a01", "productName": "Croissant", "quantity": 1, "price": "100"},
			{"productId": "7f0c5f8e-55a8-4c1e-9f3f-0d6c7f2b1a02", "productName": "Baguette", "quantity": 2, "price": "50"},
		},
	}
}

func TestAPI_CheckoutThenAdminFetch(t *testing.T) {
	engine := newTestAPI(t)
	token := login(t, engine)

	w := doJSON(t, engine, http.MethodPatch, "/api/admin/configs", token, map[string]any{"shippingFee": "120"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodPost, "/api/orders", "", checkoutBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		OrderNumber string  `json:"orderNumber"`
		Total       float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 320.0, created.Total)
	assert.True(t, strings.HasPrefix(created.OrderNumber, "LB-"), created.OrderNumber)

	w = doJSON(t, engine, http.MethodGet, "/api/admin/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list struct {
		Data []struct {
			ID          string `json:"id"`
			OrderNumber string `json:"orderNumber"`
		} `json:"data"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, created.OrderNumber, list.Data[0].OrderNumber)

	w = doJSON(t, engine, http.MethodGet, "/api/admin/orders/"+list.Data[0].ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var detail struct {
		Status string  `json:"status"`
		Origin string  `json:"origin"`
		Total  float64 `json:"total"`
		Items  []struct {
			ProductName string `json:"productName"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "pending", detail.Status)
	assert.Equal(t, 320.0, detail.Total)
	assert.Len(t, detail.Items, 2)
}

func TestAPI_AdminRoutesRequireToken(t *testing.T) {
	engine := newTestAPI(t)

	w := doJSON(t, engine, http.MethodGet, "/api/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
}

func TestAPI_LoginRejectsWrongPassword(t *testing.T) {
	engine := newTestAPI(t)

	w := doJSON(t, engine, http.MethodPost, "/api/admin/login", "", map[string]string{
		"username": testAdminUser,
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid username or password"}`, w.Body.String())
}

func TestAPI_LogoutRevokesToken(t *testing.T) {
	engine := newTestAPI(t)
	token := login(t, engine)

	require.Equal(t, http.StatusOK, doJSON(t, engine, http.MethodGet, "/api/admin/me", token, nil).Code)
	require.Equal(t, http.StatusOK, doJSON(t, engine, http.MethodPost, "/api/admin/logout", token, nil).Code)

	w := doJSON(t, engine, http.MethodGet, "/api/admin/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Token has been revoked"}`, w.Body.String())
}

func TestAPI_CheckoutValidation(t *testing.T) {
	engine := newTestAPI(t)

	body := checkoutBody()
	body["items"] = []map[string]any{}
	w := doJSON(t, engine, http.MethodPost, "/api/orders", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "items")
}

func TestAPI_PublicConfigs(t *testing.T) {
	engine := newTestAPI(t)

	w := doJSON(t, engine, http.MethodGet, "/api/configs", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cfg struct {
		ClosedDates []string `json:"closedDates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.NotNil(t, cfg.ClosedDates)
}

func TestAPI_CheckoutTotalIsJSONNumber(t *testing.T) {
	engine := newTestAPI(t)

	w := doJSON(t, engine, http.MethodPost, "/api/orders", "", checkoutBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.IsType(t, float64(0), body["total"])
	assert.Equal(t, 200.0, body["total"])
}

func TestAPI_CheckoutMalformedJSON(t *testing.T) {
	engine := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"customerName":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to create order"}`, w.Body.String())
}

func TestAPI_POSOrderRejectsConflictingPrices(t *testing.T) {
	engine := newTestAPI(t)
	token := login(t, engine)

	productID := "7f0c5f8e-55a8-4c1e-9f3f-0d6c7f2b1a01"
	w := doJSON(t, engine, http.MethodPost, "/api/admin/pos-orders", token, map[string]any{
		"items": []map[string]any{
			{"productId": productID, "productName": "Croissant", "quantity": 1, "price": "100"},
			{"productId": productID, "productName": "Croissant", "quantity": 1, "price": "120"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Product Croissant is listed with different prices"}`, w.Body.String())

	w = doJSON(t, engine, http.MethodGet, "/api/admin/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Zero(t, list.Total)
}

func TestAPI_POSOrderMergesSamePriceLines(t *testing.T) {
	engine := newTestAPI(t)
	token := login(t, engine)

	productID := "7f0c5f8e-55a8-4c1e-9f3f-0d6c7f2b1a01"
	w := doJSON(t, engine, http.MethodPost, "/api/admin/pos-orders", token, map[string]any{
		"items": []map[string]any{
			{"productId": productID, "productName": "Croissant", "quantity": 1, "price": "100"},
			{"productId": productID, "productName": "Croissant", "quantity": 2, "price": "100"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 300.0, created.Total)
}
