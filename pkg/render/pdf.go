package render

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ContentTypePDF is sent with every PDF response
const ContentTypePDF = "application/pdf"

var (
	accent    = &props.Color{Red: 22, Green: 101, Blue: 52}
	muted     = &props.Color{Red: 110, Green: 110, Blue: 110}
	headerBg  = &props.Color{Red: 232, Green: 243, Blue: 236}
	galleryPS = props.Rect{Center: true, Percent: 90}
)

func newMaroto() core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithPageNumber().
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// pictureExtension maps a picture to a format the PDF engine embeds.
// Anything but PNG and JPEG is skipped.
func pictureExtension(p *Picture) (extension.Type, bool) {
	switch strings.ToLower(p.MimeType) {
	case "image/png":
		return extension.Png, true
	case "image/jpeg", "image/jpg":
		return extension.Jpg, true
	}
	return "", false
}

func pictureCol(size int, p *Picture, ps props.Rect) core.Col {
	if p == nil {
		return col.New(size)
	}
	ext, ok := pictureExtension(p)
	if !ok {
		return col.New(size)
	}
	return image.NewFromBytesCol(size, p.Data, ext, ps)
}

// DocumentPDF lays out a quotation or invoice on a single itemised page,
// followed by the gallery page when pictures are attached.
func DocumentPDF(doc *Document) ([]byte, error) {
	d := *doc
	d.Business = d.Business.withDefaults()

	m := newMaroto()
	addLetterhead(m, d.Business, d.Title, d.Number)
	addDocumentMeta(m, &d)
	addItemsTable(m, &d)
	addDocumentTotals(m, &d)
	addNotes(m, &d)
	addBankAndSignature(m, d.Business)

	if gallery := galleryRows(d.Gallery); len(gallery) > 0 {
		m.AddPages(page.New().Add(gallery...))
	}

	return generate(m)
}

func addLetterhead(m core.Maroto, b Business, title, number string) {
	details := []core.Component{
		text.New(b.Name, props.Text{Size: 15, Style: fontstyle.Bold, Color: accent}),
	}
	top := 7.0
	if b.Tagline != "" {
		details = append(details, text.New(b.Tagline, props.Text{Size: 8, Top: top, Style: fontstyle.Italic, Color: muted}))
		top += 4
	}
	for _, l := range b.AddressLines {
		details = append(details, text.New(l, props.Text{Size: 8, Top: top}))
		top += 4
	}
	if contact := b.Contact(); contact != "" {
		details = append(details, text.New(contact, props.Text{Size: 8, Top: top}))
		top += 4
	}
	if b.GSTNumber != "" {
		details = append(details, text.New("GSTIN: "+b.GSTNumber, props.Text{Size: 8, Top: top, Style: fontstyle.Bold}))
	}

	m.AddRow(34,
		pictureCol(2, b.Logo, props.Rect{Center: true, Percent: 85}),
		col.New(6).Add(details...),
		col.New(4).Add(
			text.New(title, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right, Color: accent}),
			text.New("# "+number, props.Text{Size: 10, Top: 9, Align: align.Right}),
		),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: accent}))
}

func addDocumentMeta(m core.Maroto, d *Document) {
	billTo := []core.Component{
		text.New("BILL TO", props.Text{Size: 8, Style: fontstyle.Bold, Color: muted}),
		text.New(d.Customer.Name, props.Text{Size: 10, Top: 4, Style: fontstyle.Bold}),
	}
	top := 9.0
	for _, l := range d.Customer.AddressLines {
		billTo = append(billTo, text.New(l, props.Text{Size: 8, Top: top}))
		top += 4
	}
	for _, v := range []string{d.Customer.Phone, d.Customer.Email} {
		if v != "" {
			billTo = append(billTo, text.New(v, props.Text{Size: 8, Top: top}))
			top += 4
		}
	}
	if d.Customer.GSTNumber != "" {
		billTo = append(billTo, text.New("GSTIN: "+d.Customer.GSTNumber, props.Text{Size: 8, Top: top}))
	}

	meta := []core.Component{
		text.New("Date: "+d.Date, props.Text{Size: 9, Align: align.Right}),
	}
	top = 5
	if d.DateValue != "" {
		meta = append(meta, text.New(d.DateLabel+": "+d.DateValue, props.Text{Size: 9, Top: top, Align: align.Right}))
		top += 5
	}
	if d.Status != "" {
		meta = append(meta, text.New("Status: "+d.Status, props.Text{Size: 9, Top: top, Align: align.Right}))
		top += 5
	}
	if d.PaidOn != "" {
		meta = append(meta, text.New("Paid On: "+d.PaidOn, props.Text{Size: 9, Top: top, Align: align.Right}))
	}

	m.AddRow(32, col.New(7).Add(billTo...), col.New(5).Add(meta...))
}

func addItemsTable(m core.Maroto, d *Document) {
	head := props.Text{Size: 8, Style: fontstyle.Bold, Top: 1.5}
	headRight := head
	headRight.Align = align.Right

	headers := []core.Col{
		text.NewCol(1, "#", head),
		text.NewCol(4, "Item", head),
		text.NewCol(1, "HSN", head),
		text.NewCol(1, "Qty", headRight),
		text.NewCol(1, "Unit", head),
		text.NewCol(2, "Price", headRight),
	}
	if d.ShowTax {
		headers[1] = text.NewCol(3, "Item", head)
		headers = append(headers, text.NewCol(1, "Tax", headRight))
	}
	headers = append(headers, text.NewCol(2, "Amount", headRight))
	m.AddRow(7, headers...).WithStyle(&props.Cell{BackgroundColor: headerBg})

	cell := props.Text{Size: 8, Top: 1.5}
	right := cell
	right.Align = align.Right
	small := props.Text{Size: 7, Top: 5.5, Color: muted}

	for _, l := range d.Lines {
		nameWidth := 4
		if d.ShowTax {
			nameWidth = 3
		}
		name := col.New(nameWidth).Add(text.New(l.Name, cell))
		height := 7.0
		if l.Description != "" {
			name = col.New(nameWidth).Add(text.New(l.Name, cell), text.New(l.Description, small))
			height = 11
		}

		cols := []core.Col{
			text.NewCol(1, fmt.Sprint(l.No), cell),
			name,
			text.NewCol(1, l.HSNCode, cell),
			text.NewCol(1, l.Quantity, right),
			text.NewCol(1, l.Unit, cell),
			text.NewCol(2, l.Price, right),
		}
		if d.ShowTax {
			cols = append(cols, text.NewCol(1, l.TaxRate, right))
		}
		cols = append(cols, text.NewCol(2, l.Amount, right))
		m.AddRow(height, cols...)
	}
	m.AddRow(3, line.NewCol(12, props.Line{Color: muted}))
}

func addDocumentTotals(m core.Maroto, d *Document) {
	label := props.Text{Size: 9, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}

	m.AddRow(6, col.New(7), text.NewCol(3, "Subtotal", label), text.NewCol(2, d.Subtotal, value))
	if d.ShowTax {
		m.AddRow(6, col.New(7), text.NewCol(3, "GST", label), text.NewCol(2, d.Tax, value))
	}
	m.AddRow(2, col.New(7), line.NewCol(5))

	bold := props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right, Color: accent}
	m.AddRow(8, col.New(7), text.NewCol(3, "Total", bold), text.NewCol(2, "Rs. "+d.Total, bold))
}

func addNotes(m core.Maroto, d *Document) {
	if d.Notes != "" {
		m.AddRow(5)
		m.AddRow(16, col.New(12).Add(
			text.New("Notes", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(d.Notes, props.Text{Size: 8, Top: 5}),
		))
	}
	if d.Terms != "" {
		m.AddRow(20, col.New(12).Add(
			text.New("Terms & Conditions", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(d.Terms, props.Text{Size: 8, Top: 5}),
		))
	}
}

func bankComponents(b Bank) []core.Component {
	out := []core.Component{
		text.New("Bank Details", props.Text{Size: 9, Style: fontstyle.Bold}),
	}
	rows := []string{
		"Account Name: " + b.AccountName,
		"Account No: " + b.AccountNumber,
		"Bank: " + b.BankName,
		"IFSC: " + b.IFSC,
		"Branch: " + b.Branch,
	}
	if b.UPIID != "" {
		rows = append(rows, "UPI: "+b.UPIID)
	}
	for i, r := range rows {
		out = append(out, text.New(r, props.Text{Size: 8, Top: 5 + float64(i)*4}))
	}
	return out
}

func addBankAndSignature(m core.Maroto, b Business) {
	m.AddRow(6)
	m.AddRow(32,
		col.New(7).Add(bankComponents(b.Bank)...),
		col.New(5).Add(
			text.New("For "+b.Name, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
	m.AddRow(18, col.New(8), pictureCol(4, b.Signature, props.Rect{Center: true, Percent: 80}))
	m.AddRow(6, col.New(8), text.NewCol(4, "Authorised Signatory", props.Text{Size: 8, Align: align.Center}))
}

// galleryRows lays the pictures two per row
func galleryRows(pictures []Picture) []core.Row {
	var usable []Picture
	for i := range pictures {
		if _, ok := pictureExtension(&pictures[i]); ok {
			usable = append(usable, pictures[i])
		}
	}
	if len(usable) == 0 {
		return nil
	}

	rows := []core.Row{
		row.New(14).Add(text.NewCol(12, "Our Work", props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center, Color: accent})),
	}
	for i := 0; i < len(usable); i += 2 {
		left := usable[i]
		r := row.New(80).Add(pictureCol(6, &left, galleryPS))
		captions := row.New(6).Add(text.NewCol(6, left.Name, props.Text{Size: 8, Align: align.Center, Color: muted}))
		if i+1 < len(usable) {
			right := usable[i+1]
			r = row.New(80).Add(pictureCol(6, &left, galleryPS), pictureCol(6, &right, galleryPS))
			captions = row.New(6).Add(
				text.NewCol(6, left.Name, props.Text{Size: 8, Align: align.Center, Color: muted}),
				text.NewCol(6, right.Name, props.Text{Size: 8, Align: align.Center, Color: muted}),
			)
		}
		rows = append(rows, r, captions)
	}
	return rows
}

// ProposalPDF lays out a proposal as cover, pricing, materials, ROI and
// terms pages.
func ProposalPDF(p *Proposal) ([]byte, error) {
	v := *p
	v.Business = v.Business.withDefaults()

	m := newMaroto()
	m.AddRows(proposalCover(&v)...)
	m.AddPages(page.New().Add(proposalPricing(&v)...))
	m.AddPages(page.New().Add(proposalMaterials(&v)...))
	m.AddPages(page.New().Add(proposalROI(&v)...))
	m.AddPages(page.New().Add(proposalTerms(&v)...))

	return generate(m)
}

func sectionTitle(title string) core.Row {
	return row.New(14).Add(text.NewCol(12, title, props.Text{Size: 15, Style: fontstyle.Bold, Color: accent}))
}

func pairRow(label, value string) core.Row {
	return row.New(7).Add(
		text.NewCol(5, label, props.Text{Size: 9, Color: muted}),
		text.NewCol(7, value, props.Text{Size: 9, Style: fontstyle.Bold}),
	)
}

func proposalCover(p *Proposal) []core.Row {
	b := p.Business
	rows := []core.Row{
		row.New(40).Add(col.New(4), pictureCol(4, b.Logo, props.Rect{Center: true, Percent: 90}), col.New(4)),
		text.NewRow(12, b.Name, props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Center, Color: accent}),
	}
	if b.Tagline != "" {
		rows = append(rows, text.NewRow(8, b.Tagline, props.Text{Size: 10, Style: fontstyle.Italic, Align: align.Center, Color: muted}))
	}
	rows = append(rows,
		row.New(20),
		text.NewRow(14, "SOLAR POWER PLANT PROPOSAL", props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Center}),
		text.NewRow(10, p.Capacity+" "+p.ProjectType+" Installation", props.Text{Size: 12, Align: align.Center}),
		row.New(16),
		text.NewRow(8, "Prepared for", props.Text{Size: 9, Align: align.Center, Color: muted}),
		text.NewRow(10, p.ClientName, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Center}),
	)
	if p.ClientLocation != "" {
		rows = append(rows, text.NewRow(8, p.ClientLocation, props.Text{Size: 10, Align: align.Center}))
	}
	rows = append(rows,
		row.New(16),
		text.NewRow(7, "Proposal No: "+p.Number, props.Text{Size: 9, Align: align.Center}),
		text.NewRow(7, "Date: "+p.Date+"   Valid Until: "+p.ValidUntil, props.Text{Size: 9, Align: align.Center}),
	)

	contact := append([]string{}, b.AddressLines...)
	if c := b.Contact(); c != "" {
		contact = append(contact, c)
	}
	if len(contact) > 0 {
		rows = append(rows, row.New(20), text.NewRow(6, strings.Join(contact, ", "), props.Text{Size: 8, Align: align.Center, Color: muted}))
	}
	return rows
}

func proposalPricing(p *Proposal) []core.Row {
	return []core.Row{
		sectionTitle("Project Overview"),
		pairRow("Client", p.ClientName),
		pairRow("Location", p.ClientLocation),
		pairRow("Plant Capacity", p.Capacity),
		pairRow("Project Type", p.ProjectType),
		pairRow("Roof Type", p.RoofType),
		row.New(8),
		sectionTitle("Commercial Offer"),
		pairRow("Price per kW", "Rs. "+p.PricePerKW),
		pairRow("Plant Cost", "Rs. "+p.Amount),
		pairRow("GST ("+p.GSTRate+")", "Rs. "+p.GSTAmount),
		row.New(2).Add(line.NewCol(12, props.Line{Color: accent})),
		row.New(9).Add(
			text.NewCol(5, "Total Project Cost", props.Text{Size: 11, Style: fontstyle.Bold}),
			text.NewCol(7, "Rs. "+p.Total, props.Text{Size: 11, Style: fontstyle.Bold, Color: accent}),
		),
		row.New(8),
		sectionTitle("Payment Terms"),
		pairRow("Advance with order", p.Advance),
		pairRow("Balance before commissioning", p.Balance),
		row.New(8),
		row.New(34).Add(col.New(12).Add(bankComponents(p.Business.Bank)...)),
	}
}

func proposalMaterials(p *Proposal) []core.Row {
	head := props.Text{Size: 9, Style: fontstyle.Bold, Top: 1.5}
	rows := []core.Row{
		sectionTitle("Bill of Materials"),
		row.New(8).Add(
			text.NewCol(1, "#", head),
			text.NewCol(4, "Description", head),
			text.NewCol(5, "Specification", head),
			text.NewCol(2, "Warranty", head),
		).WithStyle(&props.Cell{BackgroundColor: headerBg}),
	}
	cell := props.Text{Size: 8, Top: 1.5}
	for _, item := range p.BillOfMaterials {
		rows = append(rows, row.New(9).Add(
			text.NewCol(1, fmt.Sprint(item.No), cell),
			text.NewCol(4, item.Description, cell),
			text.NewCol(5, item.Specification, cell),
			text.NewCol(2, item.Warranty, cell),
		))
	}
	if len(p.BillOfMaterials) == 0 {
		rows = append(rows, text.NewRow(8, "Materials will be confirmed after the site survey.", props.Text{Size: 9, Color: muted}))
	}
	return rows
}

func proposalROI(p *Proposal) []core.Row {
	rows := []core.Row{sectionTitle("Return on Investment")}
	for _, metric := range p.ROI {
		rows = append(rows, pairRow(metric.Label, metric.Value))
	}
	rows = append(rows,
		row.New(4),
		row.New(10).Add(
			text.NewCol(5, "Payback Period", props.Text{Size: 11, Style: fontstyle.Bold}),
			text.NewCol(7, p.Payback, props.Text{Size: 11, Style: fontstyle.Bold, Color: accent}),
		),
		text.NewRow(10, "Figures are estimates based on average generation and tariff and may vary with site conditions.",
			props.Text{Size: 7, Top: 3, Color: muted}),
	)
	return rows
}

func proposalTerms(p *Proposal) []core.Row {
	rows := []core.Row{sectionTitle("Terms & Conditions")}
	for _, term := range p.Terms {
		rows = append(rows, text.NewRow(8, "- "+term, props.Text{Size: 9}))
	}
	b := p.Business
	rows = append(rows,
		row.New(14),
		text.NewRow(8, "For "+b.Name, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		row.New(20).Add(col.New(8), pictureCol(4, b.Signature, props.Rect{Center: true, Percent: 80})),
		row.New(6).Add(col.New(8), text.NewCol(4, "Authorised Signatory", props.Text{Size: 8, Align: align.Center})),
	)
	return rows
}
