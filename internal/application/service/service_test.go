package service_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/internal/testutil"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// countingObserver records issued document types
type countingObserver struct {
	mu     sync.Mutex
	issued map[string]int
}

func (o *countingObserver) DocumentIssued(docType string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.issued[docType]++
}

type suite struct {
	db       *gorm.DB
	acme     *testutil.Tenant
	globex   *testutil.Tenant
	observer *countingObserver

	auth       *service.AuthService
	profiles   *service.BusinessProfileService
	customers  *service.CustomerService
	products   *service.ProductService
	presets    *service.PresetService
	quotations *service.QuotationService
	invoices   *service.InvoiceService
	proposals  *service.ProposalService
	images     *service.BrandImageService
	dashboard  *service.DashboardService
	renderer   *service.DocumentRenderService
}

func newSuite(t *testing.T) *suite {
	t.Helper()

	db := testutil.NewDB(t)
	observer := &countingObserver{issued: map[string]int{}}

	tenantRepo := repository.NewTenantRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	presetRepo := repository.NewPresetRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	imageRepo := repository.NewBrandImageRepository(db)
	sequence := repository.NewSequenceRepository(db)

	s := &suite{
		db:       db,
		acme:     testutil.SeedTenant(t, db, "Acme Solar"),
		globex:   testutil.SeedTenant(t, db, "Globex Energy"),
		observer: observer,
	}

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	s.auth = service.NewAuthService(tenantRepo, repository.NewUserRepository(db), jwtManager)
	s.profiles = service.NewBusinessProfileService(tenantRepo, 300)
	s.customers = service.NewCustomerService(customerRepo)
	s.products = service.NewProductService(productRepo)
	s.presets = service.NewPresetService(presetRepo, productRepo)
	s.quotations = service.NewQuotationService(quotationRepo, invoiceRepo, presetRepo, customerRepo, productRepo, sequence, observer, 30)
	s.invoices = service.NewInvoiceService(invoiceRepo, customerRepo, productRepo, sequence, observer)
	s.proposals = service.NewProposalService(proposalRepo, sequence, observer, service.ProposalConfig{})
	s.images = service.NewBrandImageService(imageRepo, 1<<20, 500)
	s.dashboard = service.NewDashboardService(repository.NewAnalyticsRepository(db))
	s.renderer = service.NewDocumentRenderService(s.quotations, s.invoices, s.proposals, tenantRepo, imageRepo)
	return s
}

func ptr[T any](v T) *T {
	return &v
}

func walkInCustomer(name string) *entity.CustomerSnapshot {
	return &entity.CustomerSnapshot{Name: name, Address: entity.Address{City: "Pune"}}
}

func requireStatus(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, code, appErr.Code, appErr.Error())
	return appErr
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	requireStatus(t, err, http.StatusNotFound)
}
