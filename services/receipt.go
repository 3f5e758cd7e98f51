package services

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"tolvuleiga/models"
	"tolvuleiga/utils"
)

// DejaVu is embedded because the receipt is Icelandic; the built-in core
// fonts cannot be trusted with þ/ð/æ across viewers.
//
//go:embed fonts/DejaVuSans.ttf
var fontRegular []byte

//go:embed fonts/DejaVuSans-Bold.ttf
var fontBold []byte

// SpecLine is one label/value row in the product block of a receipt.
type SpecLine struct {
	Label string
	Value string
}

// OrderBundle is the ephemeral join of an order, its customer profile and its
// product spec. Built fresh for every render, never persisted.
type OrderBundle struct {
	Order       models.Order
	Customer    models.User
	ProductName string
	ProductKind string
	Specs       []SpecLine
}

// ReceiptFilename derives the download filename from the order number,
// falling back to the order id.
func ReceiptFilename(o *models.Order) string {
	if o.OrderNumber != "" {
		return o.OrderNumber + ".pdf"
	}
	return o.ID + ".pdf"
}

// RenderReceipt produces the PDF receipt for a bundle. Pure function of its
// input apart from the generation timestamp in the footer. Returns the bytes
// and the filename; any font or layout failure comes back as a RenderError.
func RenderReceipt(b OrderBundle) ([]byte, string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes("DejaVu", "", fontRegular)
	pdf.AddUTF8FontFromBytes("DejaVu", "B", fontBold)
	if pdf.Err() {
		return nil, "", &RenderError{Err: fmt.Errorf("embedded font: %v", pdf.Error())}
	}

	pdf.SetTitle("Kvittun "+b.Order.OrderNumber, true)
	pdf.AddPage()

	// Header
	pdf.SetFont("DejaVu", "B", 18)
	pdf.Cell(0, 10, "Tölvuleiga")
	pdf.Ln(8)
	pdf.SetFont("DejaVu", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Kvittun fyrir pöntun %s", b.Order.OrderNumber))
	pdf.Ln(12)

	// Customer block
	sectionTitle(pdf, "Viðskiptavinur")
	row(pdf, "Nafn", b.Customer.Name)
	row(pdf, "Kennitala", b.Customer.NationalID)
	row(pdf, "Sími", b.Customer.Phone)
	row(pdf, "Heimilisfang", b.Customer.Address)
	row(pdf, "Staður", fmt.Sprintf("%s %s", b.Customer.PostalCode, b.Customer.City))
	pdf.Ln(6)

	// Product block
	sectionTitle(pdf, "Vara")
	row(pdf, "Heiti", b.ProductName)
	for _, spec := range b.Specs {
		row(pdf, spec.Label, spec.Value)
	}
	pdf.Ln(6)

	// Rental period block
	sectionTitle(pdf, "Leigutímabil")
	row(pdf, "Upphaf", utils.FormatDateIS(b.Order.RentalStart))
	row(pdf, "Lok", utils.FormatDateIS(b.Order.RentalEnd))
	row(pdf, "Lengd", fmt.Sprintf("%d mánuðir", b.Order.DurationMonths))
	if b.Order.Insured {
		row(pdf, "Trygging", "Já")
	}
	pdf.Ln(6)

	// Price block
	sectionTitle(pdf, "Verð")
	pdf.SetFont("DejaVu", "B", 13)
	pdf.Cell(0, 9, fmt.Sprintf("%s á mánuði", utils.FormatISK(b.Order.MonthlyPrice)))
	pdf.Ln(14)

	// Footer
	pdf.SetFont("DejaVu", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(0, 6, fmt.Sprintf("Útgefið %s · tolvuleiga.is", utils.FormatDateIS(time.Now())))

	if pdf.Err() {
		return nil, "", &RenderError{Err: pdf.Error()}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", &RenderError{Err: err}
	}
	return buf.Bytes(), ReceiptFilename(&b.Order), nil
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("DejaVu", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("DejaVu", "", 10)
}

func row(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("DejaVu", "B", 10)
	pdf.Cell(45, 6, label)
	pdf.SetFont("DejaVu", "", 10)
	pdf.Cell(0, 6, value)
	pdf.Ln(6)
}
