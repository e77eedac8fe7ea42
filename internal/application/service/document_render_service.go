package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/pricing"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/logger"
	"github.com/sangkips/quotedesk-api/pkg/render"
	"go.uber.org/zap"
)

// OutputFormat selects the renderer
type OutputFormat string

const (
	OutputPDF  OutputFormat = "pdf"
	OutputHTML OutputFormat = "html"
)

// RenderedDocument is a finished export ready to be written to the client
type RenderedDocument struct {
	Filename    string
	ContentType string
	Format      OutputFormat
	Body        []byte
}

// DocumentRenderService turns stored documents into printable views. All
// amounts are formatted here, the renderer only lays them out.
type DocumentRenderService struct {
	quotations *QuotationService
	invoices   *InvoiceService
	proposals  *ProposalService
	tenantRepo repository.TenantRepository
	imageRepo  repository.BrandImageRepository
}

// NewDocumentRenderService creates a new document render service
func NewDocumentRenderService(
	quotations *QuotationService,
	invoices *InvoiceService,
	proposals *ProposalService,
	tenantRepo repository.TenantRepository,
	imageRepo repository.BrandImageRepository,
) *DocumentRenderService {
	return &DocumentRenderService{
		quotations: quotations,
		invoices:   invoices,
		proposals:  proposals,
		tenantRepo: tenantRepo,
		imageRepo:  imageRepo,
	}
}

// RenderQuotation exports a quotation with the tenant's gallery appended
func (s *DocumentRenderService) RenderQuotation(ctx context.Context, id uuid.UUID, format OutputFormat) (*RenderedDocument, error) {
	quotation, err := s.quotations.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	business, err := s.business(ctx)
	if err != nil {
		return nil, err
	}
	gallery, err := s.gallery(ctx)
	if err != nil {
		return nil, err
	}

	doc := QuotationView(quotation, business)
	doc.Gallery = gallery
	return renderDocument(ctx, doc, quotation.Number, format)
}

// RenderInvoice exports an invoice
func (s *DocumentRenderService) RenderInvoice(ctx context.Context, id uuid.UUID, format OutputFormat) (*RenderedDocument, error) {
	invoice, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	business, err := s.business(ctx)
	if err != nil {
		return nil, err
	}
	return renderDocument(ctx, InvoiceView(invoice, business), invoice.Number, format)
}

// RenderProposal exports a proposal
func (s *DocumentRenderService) RenderProposal(ctx context.Context, id uuid.UUID, format OutputFormat) (*RenderedDocument, error) {
	proposal, err := s.proposals.GetProposal(ctx, id)
	if err != nil {
		return nil, err
	}
	business, err := s.business(ctx)
	if err != nil {
		return nil, err
	}

	view := ProposalView(proposal, business)
	var body []byte
	switch format {
	case OutputPDF:
		body, err = render.ProposalPDF(view)
	case OutputHTML:
		body, err = render.ProposalHTML(view)
	default:
		return nil, unsupportedFormat(format)
	}
	if err != nil {
		logger.FromContext(ctx).Error("proposal render failed", zap.String("number", proposal.Number), zap.Error(err))
		return nil, apperror.NewInternalError(fmt.Errorf("render proposal %s: %w", proposal.Number, err))
	}
	return output(proposal.Number, format, body), nil
}

func renderDocument(ctx context.Context, doc *render.Document, number string, format OutputFormat) (*RenderedDocument, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case OutputPDF:
		body, err = render.DocumentPDF(doc)
	case OutputHTML:
		body, err = render.DocumentHTML(doc)
	default:
		return nil, unsupportedFormat(format)
	}
	if err != nil {
		logger.FromContext(ctx).Error("document render failed", zap.String("number", number), zap.Error(err))
		return nil, apperror.NewInternalError(fmt.Errorf("render %s: %w", number, err))
	}
	return output(number, format, body), nil
}

func output(number string, format OutputFormat, body []byte) *RenderedDocument {
	contentType := render.ContentTypePDF
	if format == OutputHTML {
		contentType = render.ContentTypeHTML
	}
	return &RenderedDocument{
		Filename:    number + "." + string(format),
		ContentType: contentType,
		Format:      format,
		Body:        body,
	}
}

func unsupportedFormat(format OutputFormat) error {
	return apperror.NewBadRequestErrorf("unsupported format %q, use pdf or html", format)
}

func (s *DocumentRenderService) business(ctx context.Context) (render.Business, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return render.Business{}, err
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return render.Business{}, err
	}
	if tenant == nil {
		return render.Business{}, nil
	}
	return BusinessView(&tenant.Profile), nil
}

// gallery keeps the images the PDF writer can embed. HTML shows the same set
// so both exports match.
func (s *DocumentRenderService) gallery(ctx context.Context) ([]render.Picture, error) {
	images, err := s.imageRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	pictures := make([]render.Picture, 0, len(images))
	for _, img := range images {
		if img.MimeType != "image/png" && img.MimeType != "image/jpeg" {
			continue
		}
		pictures = append(pictures, render.Picture{Name: img.Name, MimeType: img.MimeType, Data: img.Data})
	}
	return pictures, nil
}

// BusinessView maps the stored profile onto the letterhead
func BusinessView(p *entity.BusinessProfile) render.Business {
	return render.Business{
		Name:         p.BusinessName,
		Tagline:      p.Tagline,
		GSTNumber:    p.GSTNumber,
		AddressLines: p.Address.Lines(),
		Phone:        p.Phone,
		Email:        p.Email,
		Website:      p.Website,
		Logo:         render.PictureFromDataURI("logo", p.Logo),
		Signature:    render.PictureFromDataURI("signature", p.Signature),
		Bank: render.Bank{
			AccountName:   p.Bank.AccountName,
			AccountNumber: p.Bank.AccountNumber,
			BankName:      p.Bank.BankName,
			IFSC:          p.Bank.IFSC,
			Branch:        p.Bank.Branch,
			UPIID:         p.Bank.UPIID,
		},
	}
}

func partyView(c entity.CustomerSnapshot) render.Party {
	return render.Party{
		Name:         c.Name,
		AddressLines: c.Address.Lines(),
		Email:        c.Email,
		Phone:        c.Phone,
		GSTNumber:    c.GSTNumber,
	}
}

func linesView(items entity.LineItems) []render.Line {
	lines := make([]render.Line, 0, len(items))
	for i, item := range items {
		lines = append(lines, render.Line{
			No:          i + 1,
			Name:        item.ProductName,
			Description: item.Description,
			HSNCode:     item.HSNCode,
			Quantity:    render.Number(item.Quantity),
			Unit:        item.Unit,
			Price:       render.Money(item.Price),
			TaxRate:     render.Percent(item.TaxRate),
			Amount:      render.Money(item.LineTotal),
		})
	}
	return lines
}

// QuotationView formats a quotation for the renderer
func QuotationView(q *entity.Quotation, business render.Business) *render.Document {
	return &render.Document{
		Title:     "QUOTATION",
		Number:    q.Number,
		Date:      render.Date(q.CreatedAt),
		DateLabel: "Valid Until",
		DateValue: render.Date(q.ValidUntil),
		Status:    string(q.Status),
		Business:  business,
		Customer:  partyView(q.Customer),
		Lines:     linesView(q.Items),
		ShowTax:   q.IncludeGST,
		Subtotal:  render.Money(q.Subtotal),
		Tax:       render.Money(q.TaxAmount),
		Total:     render.Money(q.Total),
		Notes:     deref(q.Notes),
		Terms:     deref(q.Terms),
	}
}

// InvoiceView formats an invoice for the renderer
func InvoiceView(inv *entity.Invoice, business render.Business) *render.Document {
	var paidOn string
	if inv.PaidDate != nil {
		paidOn = render.Date(*inv.PaidDate)
	}
	return &render.Document{
		Title:     "INVOICE",
		Number:    inv.Number,
		Date:      render.Date(inv.CreatedAt),
		DateLabel: "Due Date",
		DateValue: render.Date(inv.DueDate),
		Status:    string(inv.Status),
		PaidOn:    paidOn,
		Business:  business,
		Customer:  partyView(inv.Customer),
		Lines:     linesView(inv.Items),
		ShowTax:   true,
		Subtotal:  render.Money(inv.Subtotal),
		Tax:       render.Money(inv.TaxAmount),
		Total:     render.Money(inv.Total),
		Notes:     deref(inv.Notes),
		Terms:     deref(inv.Terms),
	}
}

// ProposalView formats a proposal for the renderer. The payment split is
// the only derived figure and comes from the pricing package.
func ProposalView(p *entity.Proposal, business render.Business) *render.Proposal {
	bom := make([]render.BOMRow, 0, len(p.BillOfMaterials))
	for i, row := range p.BillOfMaterials {
		bom = append(bom, render.BOMRow{
			No:            i + 1,
			Description:   row.Description,
			Specification: row.Specification,
			Warranty:      row.Warranty,
		})
	}

	return &render.Proposal{
		Number:          p.Number,
		Date:            render.Date(createdOrNow(p.CreatedAt)),
		ValidUntil:      render.Date(p.ValidUntil),
		Status:          string(p.Status),
		Business:        business,
		ClientName:      p.ClientName,
		ClientLocation:  p.ClientLocation,
		Capacity:        render.Number(p.PlantCapacity) + " kW",
		ProjectType:     p.ProjectType.Label(),
		RoofType:        p.RoofType.Label(),
		PricePerKW:      render.Money(p.PricePerKW),
		Amount:          render.Money(p.Amount),
		GSTRate:         render.Percent(p.GSTRate),
		GSTAmount:       render.Money(p.GSTAmount),
		Total:           render.Money(p.TotalAmount),
		Advance:         splitLabel(p.TotalAmount, p.AdvancePercentage),
		Balance:         splitLabel(p.TotalAmount, p.BalancePercentage),
		BillOfMaterials: bom,
		ROI:             roiMetrics(p.ROI),
		Payback:         fmt.Sprintf("%s - %s years", render.Number(p.ROI.PaybackPeriodMin), render.Number(p.ROI.PaybackPeriodMax)),
		Terms:           p.Terms,
	}
}

func splitLabel(total, percentage float64) string {
	return fmt.Sprintf("%s (%s)", render.Percent(percentage), render.Money(pricing.PaymentShare(total, percentage)))
}

func roiMetrics(roi entity.ROIProjection) []render.Metric {
	return []render.Metric{
		{Label: "Energy Generation per Year", Value: render.Grouped(roi.EnergyGenerationPerYear) + " kWh"},
		{Label: "CO2 Savings per Year", Value: render.Number(roi.CO2SavingsPerYear) + " tonnes"},
		{Label: "Total Savings over 25 Years", Value: render.Money(roi.TotalSavings25Years)},
		{Label: "Equivalent Trees Planted", Value: render.Grouped(roi.TreesEquivalent)},
		{Label: "CO2 Eliminated over Plant Life", Value: render.Number(roi.CO2EliminatedTotal) + " tonnes"},
	}
}

func createdOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
