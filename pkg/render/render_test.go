package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleDocument(t *testing.T) *Document {
	logo := &Picture{Name: "logo", MimeType: "image/png", Data: tinyPNG(t)}
	return &Document{
		Title:     "QUOTATION",
		Number:    "QUO-0007",
		Date:      "01 Mar 2026",
		DateLabel: "Valid Until",
		DateValue: "31 Mar 2026",
		Status:    "sent",
		Business: Business{
			Name:         "Sunrise Solar",
			AddressLines: []string{"12 MG Road", "Pune, Maharashtra - 411001"},
			Phone:        "+91 98765 43210",
			Logo:         logo,
		},
		Customer: Party{Name: "Acme <Industries>", AddressLines: []string{"Plot 4"}},
		Lines: []Line{
			{No: 1, Name: "Panel 540Wp", Quantity: "10", Unit: "nos", Price: "14,500.00", TaxRate: "12%", Amount: "1,62,400.00"},
			{No: 2, Name: "Install", Description: "On-site work", Quantity: "1", Unit: "job", Price: "8,000.00", TaxRate: "18%", Amount: "9,440.00"},
		},
		ShowTax:  true,
		Subtotal: "1,53,000.00",
		Tax:      "18,840.00",
		Total:    "1,71,840.00",
		Notes:    "Prices include transport.",
		Gallery:  []Picture{{Name: "Rooftop", MimeType: "image/png", Data: tinyPNG(t)}, {Name: "anim", MimeType: "image/gif", Data: []byte("GIF89a")}},
	}
}

func sampleProposal() *Proposal {
	return &Proposal{
		Number:          "PROP-0003",
		Date:            "01 Mar 2026",
		ValidUntil:      "08 Mar 2026",
		ClientName:      "Green Farms",
		ClientLocation:  "Nashik",
		Capacity:        "10 kW",
		ProjectType:     "Commercial",
		RoofType:        "RCC Roof",
		PricePerKW:      "50,000.00",
		Amount:          "5,00,000.00",
		GSTRate:         "8.9%",
		GSTAmount:       "44,500.00",
		Total:           "5,44,500.00",
		Advance:         "70%",
		Balance:         "30%",
		BillOfMaterials: []BOMRow{{No: 1, Description: "Modules", Specification: "540Wp Mono PERC", Warranty: "25 years"}},
		ROI:             []Metric{{Label: "Energy Generation per Year", Value: "16,000 kWh"}},
		Payback:         "2.5 - 3.5 years",
		Terms:           []string{"Subsidy is the customer's responsibility."},
	}
}

func TestDocumentPDF(t *testing.T) {
	out, err := DocumentPDF(sampleDocument(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDocumentPDFWithEmptyProfile(t *testing.T) {
	out, err := DocumentPDF(&Document{Title: "INVOICE", Number: "INV-0001"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestProposalPDF(t *testing.T) {
	out, err := ProposalPDF(sampleProposal())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDocumentHTML(t *testing.T) {
	out, err := DocumentHTML(sampleDocument(t))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "QUO-0007")
	assert.Contains(t, html, "1,71,840.00")
	assert.Contains(t, html, "Acme &lt;Industries&gt;")
	assert.Contains(t, html, "data:image/png;base64,")
	assert.Contains(t, html, "Our Work")
	// placeholders stand in for the missing bank details
	assert.Contains(t, html, DefaultAccountNumber)
	assert.Contains(t, html, DefaultIFSC)
}

func TestProposalHTML(t *testing.T) {
	out, err := ProposalHTML(sampleProposal())
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "PROP-0003")
	assert.Contains(t, html, "5,44,500.00")
	assert.Contains(t, html, "540Wp Mono PERC")
	assert.Contains(t, html, DefaultBusinessName)
}

func TestPictureFromDataURI(t *testing.T) {
	data := tinyPNG(t)
	p := PictureFromDataURI("logo", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(data))
	require.NotNil(t, p)
	assert.Equal(t, "image/png", p.MimeType)
	assert.Equal(t, data, p.Data)

	assert.Nil(t, PictureFromDataURI("logo", ""))
	assert.Nil(t, PictureFromDataURI("logo", "https://example.com/logo.png"))
	assert.Nil(t, PictureFromDataURI("logo", "data:image/png;base64,@@@"))
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{123456.789, "1,23,456.79"},
		{12345678, "1,23,45,678.00"},
		{-2816000, "-28,16,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in))
	}

	assert.Equal(t, "8.9%", Percent(8.9))
	assert.Equal(t, "18%", Percent(18))
	assert.Equal(t, "2.5", Number(2.5))
	assert.Equal(t, "28,16,000", Grouped(2816000))
	assert.Equal(t, "620", Grouped(620))
}
