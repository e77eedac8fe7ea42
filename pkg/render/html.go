package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// ContentTypeHTML is sent with every HTML preview
const ContentTypeHTML = "text/html; charset=utf-8"

var (
	documentTemplate = template.Must(template.New("document").Parse(baseStyles + documentHTML))
	proposalTemplate = template.Must(template.New("proposal").Parse(baseStyles + proposalHTML))
)

// DocumentHTML renders the browser preview of a quotation or invoice
func DocumentHTML(doc *Document) ([]byte, error) {
	d := *doc
	d.Business = d.Business.withDefaults()
	return execute(documentTemplate, &d)
}

// ProposalHTML renders the browser preview of a proposal
func ProposalHTML(p *Proposal) ([]byte, error) {
	v := *p
	v.Business = v.Business.withDefaults()
	return execute(proposalTemplate, &v)
}

func execute(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}

const baseStyles = `{{define "styles"}}<style>
body{font-family:Helvetica,Arial,sans-serif;color:#222;margin:0;background:#f4f4f4}
.page{background:#fff;max-width:820px;margin:24px auto;padding:36px;box-shadow:0 1px 4px rgba(0,0,0,.15);page-break-after:always}
.head{display:flex;justify-content:space-between;border-bottom:2px solid #166534;padding-bottom:12px}
.brand{display:flex;gap:12px}.brand img{max-height:72px}
.brand h1{margin:0;color:#166534;font-size:22px}.muted{color:#6e6e6e;font-size:12px}
.title{text-align:right}.title h2{margin:0;color:#166534}
table{width:100%;border-collapse:collapse;margin-top:16px;font-size:13px}
th{background:#e8f3ec;text-align:left;padding:6px}td{padding:6px;border-bottom:1px solid #eee;vertical-align:top}
.num{text-align:right}.totals{width:40%;margin-left:auto}.grand td{font-weight:bold;color:#166534;font-size:15px}
.cols{display:flex;justify-content:space-between;margin-top:16px;gap:24px}
.sign{text-align:right}.sign img{max-height:60px}
.gallery{display:grid;grid-template-columns:1fr 1fr;gap:16px}.gallery img{width:100%}
.cover{text-align:center;padding-top:80px}.cover img{max-height:120px}
</style>{{end}}{{define "bank"}}<div><strong>Bank Details</strong>
<div class="muted">Account Name: {{.AccountName}}</div>
<div class="muted">Account No: {{.AccountNumber}}</div>
<div class="muted">Bank: {{.BankName}}</div>
<div class="muted">IFSC: {{.IFSC}}</div>
<div class="muted">Branch: {{.Branch}}</div>
{{if .UPIID}}<div class="muted">UPI: {{.UPIID}}</div>{{end}}</div>{{end}}`

const documentHTML = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Title}} {{.Number}}</title>{{template "styles"}}</head>
<body>
<div class="page">
  <div class="head">
    <div class="brand">
      {{with .Business.Logo}}<img src="{{.DataURI}}" alt="logo">{{end}}
      <div>
        <h1>{{.Business.Name}}</h1>
        {{if .Business.Tagline}}<div class="muted"><em>{{.Business.Tagline}}</em></div>{{end}}
        {{range .Business.AddressLines}}<div class="muted">{{.}}</div>{{end}}
        {{with .Business.Contact}}<div class="muted">{{.}}</div>{{end}}
        {{if .Business.GSTNumber}}<div class="muted"><strong>GSTIN: {{.Business.GSTNumber}}</strong></div>{{end}}
      </div>
    </div>
    <div class="title">
      <h2>{{.Title}}</h2>
      <div># {{.Number}}</div>
      <div class="muted">Date: {{.Date}}</div>
      {{if .DateValue}}<div class="muted">{{.DateLabel}}: {{.DateValue}}</div>{{end}}
      {{if .Status}}<div class="muted">Status: {{.Status}}</div>{{end}}
      {{if .PaidOn}}<div class="muted">Paid On: {{.PaidOn}}</div>{{end}}
    </div>
  </div>

  <div class="cols">
    <div>
      <div class="muted"><strong>BILL TO</strong></div>
      <div><strong>{{.Customer.Name}}</strong></div>
      {{range .Customer.AddressLines}}<div class="muted">{{.}}</div>{{end}}
      {{if .Customer.Phone}}<div class="muted">{{.Customer.Phone}}</div>{{end}}
      {{if .Customer.Email}}<div class="muted">{{.Customer.Email}}</div>{{end}}
      {{if .Customer.GSTNumber}}<div class="muted">GSTIN: {{.Customer.GSTNumber}}</div>{{end}}
    </div>
  </div>

  <table>
    <thead><tr>
      <th>#</th><th>Item</th><th>HSN</th><th class="num">Qty</th><th>Unit</th><th class="num">Price</th>
      {{if .ShowTax}}<th class="num">Tax</th>{{end}}<th class="num">Amount</th>
    </tr></thead>
    <tbody>
    {{range .Lines}}<tr>
      <td>{{.No}}</td>
      <td>{{.Name}}{{if .Description}}<div class="muted">{{.Description}}</div>{{end}}</td>
      <td>{{.HSNCode}}</td><td class="num">{{.Quantity}}</td><td>{{.Unit}}</td><td class="num">{{.Price}}</td>
      {{if $.ShowTax}}<td class="num">{{.TaxRate}}</td>{{end}}<td class="num">{{.Amount}}</td>
    </tr>{{end}}
    </tbody>
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{.Subtotal}}</td></tr>
    {{if .ShowTax}}<tr><td>GST</td><td class="num">{{.Tax}}</td></tr>{{end}}
    <tr class="grand"><td>Total</td><td class="num">&#8377; {{.Total}}</td></tr>
  </table>

  {{if .Notes}}<p><strong>Notes</strong><br><span class="muted">{{.Notes}}</span></p>{{end}}
  {{if .Terms}}<p><strong>Terms &amp; Conditions</strong><br><span class="muted">{{.Terms}}</span></p>{{end}}

  <div class="cols">
    {{template "bank" .Business.Bank}}
    <div class="sign">
      <strong>For {{.Business.Name}}</strong><br>
      {{with .Business.Signature}}<img src="{{.DataURI}}" alt="signature"><br>{{end}}
      <span class="muted">Authorised Signatory</span>
    </div>
  </div>
</div>
{{if .Gallery}}<div class="page">
  <h2 style="text-align:center;color:#166534">Our Work</h2>
  <div class="gallery">
  {{range .Gallery}}<figure><img src="{{.DataURI}}" alt="{{.Name}}"><figcaption class="muted">{{.Name}}</figcaption></figure>{{end}}
  </div>
</div>{{end}}
</body></html>`

const proposalHTML = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Proposal {{.Number}}</title>{{template "styles"}}</head>
<body>
<div class="page cover">
  {{with .Business.Logo}}<img src="{{.DataURI}}" alt="logo">{{end}}
  <h1 style="color:#166534">{{.Business.Name}}</h1>
  {{if .Business.Tagline}}<div class="muted"><em>{{.Business.Tagline}}</em></div>{{end}}
  <h2>SOLAR POWER PLANT PROPOSAL</h2>
  <div>{{.Capacity}} {{.ProjectType}} Installation</div>
  <p class="muted">Prepared for</p>
  <h3>{{.ClientName}}</h3>
  {{if .ClientLocation}}<div>{{.ClientLocation}}</div>{{end}}
  <p class="muted">Proposal No: {{.Number}}<br>Date: {{.Date}} &middot; Valid Until: {{.ValidUntil}}</p>
</div>

<div class="page">
  <h2>Project Overview</h2>
  <table>
    <tr><td>Client</td><td>{{.ClientName}}</td></tr>
    <tr><td>Location</td><td>{{.ClientLocation}}</td></tr>
    <tr><td>Plant Capacity</td><td>{{.Capacity}}</td></tr>
    <tr><td>Project Type</td><td>{{.ProjectType}}</td></tr>
    <tr><td>Roof Type</td><td>{{.RoofType}}</td></tr>
  </table>
  <h2>Commercial Offer</h2>
  <table>
    <tr><td>Price per kW</td><td class="num">&#8377; {{.PricePerKW}}</td></tr>
    <tr><td>Plant Cost</td><td class="num">&#8377; {{.Amount}}</td></tr>
    <tr><td>GST ({{.GSTRate}})</td><td class="num">&#8377; {{.GSTAmount}}</td></tr>
    <tr class="grand"><td>Total Project Cost</td><td class="num">&#8377; {{.Total}}</td></tr>
  </table>
  <h2>Payment Terms</h2>
  <table>
    <tr><td>Advance with order</td><td>{{.Advance}}</td></tr>
    <tr><td>Balance before commissioning</td><td>{{.Balance}}</td></tr>
  </table>
  <div class="cols">{{template "bank" .Business.Bank}}</div>
</div>

<div class="page">
  <h2>Bill of Materials</h2>
  {{if .BillOfMaterials}}<table>
    <thead><tr><th>#</th><th>Description</th><th>Specification</th><th>Warranty</th></tr></thead>
    <tbody>{{range .BillOfMaterials}}<tr><td>{{.No}}</td><td>{{.Description}}</td><td>{{.Specification}}</td><td>{{.Warranty}}</td></tr>{{end}}</tbody>
  </table>{{else}}<p class="muted">Materials will be confirmed after the site survey.</p>{{end}}
</div>

<div class="page">
  <h2>Return on Investment</h2>
  <table>
    {{range .ROI}}<tr><td>{{.Label}}</td><td class="num">{{.Value}}</td></tr>{{end}}
    <tr class="grand"><td>Payback Period</td><td class="num">{{.Payback}}</td></tr>
  </table>
  <p class="muted">Figures are estimates based on average generation and tariff and may vary with site conditions.</p>
</div>

<div class="page">
  <h2>Terms &amp; Conditions</h2>
  <ol>{{range .Terms}}<li>{{.}}</li>{{end}}</ol>
  <div class="sign">
    <strong>For {{.Business.Name}}</strong><br>
    {{with .Business.Signature}}<img src="{{.DataURI}}" alt="signature"><br>{{end}}
    <span class="muted">Authorised Signatory</span>
  </div>
</div>
</body></html>`
