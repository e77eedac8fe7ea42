package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/config"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/handler"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/routes"
	"github.com/sangkips/quotedesk-api/internal/testutil"
	"github.com/sangkips/quotedesk-api/pkg/metrics"
	"github.com/sangkips/quotedesk-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxUpload = 1 << 20

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type server struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	ping   error
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	httpMetrics := metrics.NewHTTPMetrics("quotedesk-test")
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	tenantRepo := repository.NewTenantRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	presetRepo := repository.NewPresetRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	imageRepo := repository.NewBrandImageRepository(db)
	sequence := repository.NewSequenceRepository(db)

	quotations := service.NewQuotationService(quotationRepo, invoiceRepo, presetRepo, customerRepo, productRepo, sequence, httpMetrics, 30)
	invoices := service.NewInvoiceService(invoiceRepo, customerRepo, productRepo, sequence, httpMetrics)
	proposals := service.NewProposalService(proposalRepo, sequence, httpMetrics, service.ProposalConfig{})
	renderer := service.NewDocumentRenderService(quotations, invoices, proposals, tenantRepo, imageRepo)

	handlers := &routes.Handlers{
		Auth:            handler.NewAuthHandler(service.NewAuthService(tenantRepo, repository.NewUserRepository(db), jwtManager)),
		BusinessProfile: handler.NewBusinessProfileHandler(service.NewBusinessProfileService(tenantRepo, 300), maxUpload),
		Customer:        handler.NewCustomerHandler(service.NewCustomerService(customerRepo)),
		Product:         handler.NewProductHandler(service.NewProductService(productRepo), maxUpload),
		Preset:          handler.NewPresetHandler(service.NewPresetService(presetRepo, productRepo)),
		Quotation:       handler.NewQuotationHandler(quotations, renderer),
		Invoice:         handler.NewInvoiceHandler(invoices, renderer),
		Proposal:        handler.NewProposalHandler(proposals, renderer),
		BrandImage:      handler.NewBrandImageHandler(service.NewBrandImageService(imageRepo, maxUpload, 500), maxUpload),
		Dashboard:       handler.NewDashboardHandler(service.NewDashboardService(repository.NewAnalyticsRepository(db))),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := &server{t: t, db: db}
	s.router = routes.Setup(ctx, handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg: &config.Config{
			App:       config.AppConfig{Name: "quotedesk-test"},
			RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		},
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		Metrics:         httpMetrics,
		Logger:          zap.NewNop(),
		Ping:            func(context.Context) error { return s.ping },
	})
	return s
}

func (s *server) do(method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &out), w.Body.String())
	return out
}

type session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	User         struct {
		Email    string `json:"email"`
		TenantID string `json:"tenant_id"`
	} `json:"user"`
}

// register signs up a business and returns its access token
func (s *server) register(business, email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"business_name": business,
		"name":          business + " Owner",
		"email":         email,
		"password":      testutil.Password,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[session](s.t, w).AccessToken
}

type quotationBody struct {
	ID     string  `json:"id"`
	Number string  `json:"number"`
	Total  float64 `json:"total"`
	Status string  `json:"status"`
}

func quotationRequest() map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]interface{}{"name": "Ravi & Co", "address": map[string]string{"city": "Pune"}},
		"items": []map[string]interface{}{
			{"product_name": "Panel", "quantity": 2, "unit": "nos", "price": 100, "tax_rate": 18},
		},
	}
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	s.ping = errors.New("connection refused")
	w = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestAuthFlow(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"business_name": "Acme Solar",
		"name":          "Asha",
		"email":         "  Asha@Acme.example ",
		"password":      testutil.Password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decodeData[session](t, w)
	assert.Equal(t, "asha@acme.example", registered.User.Email)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.NotEmpty(t, registered.AccessToken)

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "asha@acme.example",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "asha@acme.example",
		"password": testutil.Password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	loggedIn := decodeData[session](t, w)

	w = s.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": loggedIn.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/profile", loggedIn.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "asha@acme.example")
}

func TestRegisterValidationErrors(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	env := decode(t, w)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
	assert.NotEmpty(t, env.Errors)
	assert.NotEmpty(t, env.Meta.RequestID)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, decode(t, w).Success)
		})
	}
}

func TestCustomerCRUD(t *testing.T) {
	s := newServer(t)
	token := s.register("Acme Solar", "owner@acme.example")

	w := s.do(http.MethodPost, "/api/v1/customers", token, map[string]interface{}{
		"name":    "Ravi",
		"phone":   "98200 00000",
		"address": map[string]string{"city": "Pune"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeData[struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}](t, w)
	assert.Equal(t, "Ravi", created.Name)

	w = s.do(http.MethodPut, "/api/v1/customers/"+created.ID, token, map[string]interface{}{"name": "Ravi Kumar"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Ravi Kumar")

	w = s.do(http.MethodGet, "/api/v1/customers?search=kumar", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decodeData[struct {
		Items      []json.RawMessage `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}](t, w)
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Pagination.Total)

	w = s.do(http.MethodGet, "/api/v1/customers/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/api/v1/customers/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/v1/customers/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTenantsCannotSeeEachOther(t *testing.T) {
	s := newServer(t)
	acme := s.register("Acme Solar", "owner@acme.example")
	globex := s.register("Globex Energy", "owner@globex.example")

	w := s.do(http.MethodPost, "/api/v1/quotations", acme, quotationRequest())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := decodeData[quotationBody](t, w)

	for _, path := range []string{
		"/api/v1/quotations/" + q.ID,
		"/api/v1/quotations/" + q.ID + "/pdf",
		"/api/v1/quotations/" + q.ID + "/html",
	} {
		w = s.do(http.MethodGet, path, globex, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	w = s.do(http.MethodDelete, "/api/v1/quotations/"+q.ID, globex, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/quotations", globex, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestQuotationLifecycle(t *testing.T) {
	s := newServer(t)
	token := s.register("Acme Solar", "owner@acme.example")

	w := s.do(http.MethodPost, "/api/v1/quotations", token, quotationRequest())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := decodeData[quotationBody](t, w)
	assert.Equal(t, "QUO-0001", q.Number)
	assert.Equal(t, 236.0, q.Total)

	w = s.do(http.MethodGet, "/api/v1/quotations/"+q.ID+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="QUO-0001.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = s.do(http.MethodGet, "/api/v1/quotations/"+q.ID+"/html", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "inline"))
	assert.Contains(t, w.Body.String(), "Ravi &amp; Co")

	w = s.do(http.MethodPost, "/api/v1/quotations/"+q.ID+"/duplicate", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "QUO-0002", decodeData[quotationBody](t, w).Number)

	w = s.do(http.MethodPost, "/api/v1/quotations/"+q.ID+"/convert", token, map[string]string{"due_date": "2030-01-31"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	inv := decodeData[struct {
		Number string  `json:"number"`
		Total  float64 `json:"total"`
	}](t, w)
	assert.Equal(t, "INV-0001", inv.Number)
	assert.Equal(t, 236.0, inv.Total)

	w = s.do(http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestQuotationValidationErrorShape(t *testing.T) {
	s := newServer(t)
	token := s.register("Acme Solar", "owner@acme.example")

	w := s.do(http.MethodPost, "/api/v1/quotations", token, map[string]interface{}{"items": []interface{}{}})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	env := decode(t, w)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
	assert.NotEmpty(t, env.Errors)
	assert.Empty(t, env.Data)

	w = s.do(http.MethodGet, "/api/v1/quotations/"+"00000000-0000-0000-0000-000000000000/pdf", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestIdempotentCreateReplays(t *testing.T) {
	s := newServer(t)
	token := s.register("Acme Solar", "owner@acme.example")

	first := s.do(http.MethodPost, "/api/v1/quotations", token, quotationRequest(), middleware.IdempotencyKeyHeader, "retry-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))

	second := s.do(http.MethodPost, "/api/v1/quotations", token, quotationRequest(), middleware.IdempotencyKeyHeader, "retry-1")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	third := s.do(http.MethodPost, "/api/v1/quotations", token, quotationRequest(), middleware.IdempotencyKeyHeader, "retry-2")
	require.Equal(t, http.StatusCreated, third.Code)
	assert.Equal(t, "QUO-0002", decodeData[quotationBody](t, third).Number)
}

func TestIdempotencyKeyIsBoundToItsPath(t *testing.T) {
	s := newServer(t)
	token := s.register("Acme Solar", "owner@acme.example")

	w := s.do(http.MethodPost, "/api/v1/quotations", token, quotationRequest(), middleware.IdempotencyKeyHeader, "k1")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := decodeData[quotationBody](t, w)

	invoice := quotationRequest()
	invoice["due_date"] = "2030-01-31"
	w = s.do(http.MethodPost, "/api/v1/invoices", token, invoice, middleware.IdempotencyKeyHeader, "k1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.False(t, decode(t, w).Success)

	w = s.do(http.MethodPost, "/api/v1/quotations/"+q.ID+"/duplicate", token, nil, middleware.IdempotencyKeyHeader, "dup")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	dup := decodeData[quotationBody](t, w)
	assert.Equal(t, "QUO-0002", dup.Number)

	// same key on a different quotation is a different request
	w = s.do(http.MethodPost, "/api/v1/quotations/"+dup.ID+"/duplicate", token, nil, middleware.IdempotencyKeyHeader, "dup")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/quotations/"+q.ID+"/duplicate", token, nil, middleware.IdempotencyKeyHeader, "dup")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, "QUO-0002", decodeData[quotationBody](t, w).Number)
}

func TestExpiredIdempotencyKeyIsReplaced(t *testing.T) {
	s := newServer(t)
	token := s.register("Acme Solar", "owner@acme.example")

	w := s.do(http.MethodPost, "/api/v1/quotations", token, quotationRequest(), middleware.IdempotencyKeyHeader, "k1")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, s.db.Model(&entity.IdempotencyKey{}).
		Where("key = ?", "k1").
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	w = s.do(http.MethodPost, "/api/v1/quotations", token, quotationRequest(), middleware.IdempotencyKeyHeader, "k1")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, "QUO-0002", decodeData[quotationBody](t, w).Number)

	w = s.do(http.MethodPost, "/api/v1/quotations", token, quotationRequest(), middleware.IdempotencyKeyHeader, "k1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, "QUO-0002", decodeData[quotationBody](t, w).Number)
}

func TestBrandImageUpload(t *testing.T) {
	s := newServer(t)
	token := s.register("Acme Solar", "owner@acme.example")

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 120, 80))))

	upload := func(field string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile(field, "roof.png")
		require.NoError(t, err)
		_, err = part.Write(img.Bytes())
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/brand-images", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w := upload("image")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeData[struct {
		ID string `json:"id"`
	}](t, w)

	w = upload("photo")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/brand-images", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.ID)

	w = s.do(http.MethodDelete, "/api/v1/brand-images/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t)
	s.do(http.MethodGet, "/health", "", nil)

	w := s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
