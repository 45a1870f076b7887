// Package pdf lays out customer receipts as A4 documents.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/pkg/money"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
	fontFamily = "Helvetica"

	// space kept free below the table for the totals block and footer
	totalsHeight = 3*(lineHeight+1) + 5
	footerHeight = 4 + 2*(lineHeight+1)
)

// table columns: Service | Weight/Items | Unit Price | Discount | Total
var (
	columnTitles = []string{"Service", "Weight/Items", "Unit Price", "Discount", "Total"}
	columnWidths = []float64{58, 32, 32, 28, 30}
	columnAlign  = []string{"L", "L", "R", "R", "R"}
)

// ReceiptRenderer draws receipts with fpdf
type ReceiptRenderer struct{}

// NewReceiptRenderer creates a renderer
func NewReceiptRenderer() *ReceiptRenderer {
	return &ReceiptRenderer{}
}

// Render writes the receipt as a PDF to w. Long receipts continue on
// further pages with the table header repeated.
func (ReceiptRenderer) Render(w io.Writer, r *entity.Receipt) error {
	doc := layout(r)

	if err := doc.Error(); err != nil {
		return fmt.Errorf("laying out receipt %s: %w", r.Number, err)
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("writing receipt %s: %w", r.Number, err)
	}
	return nil
}

func layout(r *entity.Receipt) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, pageMargin)
	doc.SetTitle("Receipt "+r.Number, true)
	doc.SetCreationDate(r.IssuedAt)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")
	b := &builder{doc: doc, tr: tr}

	b.header(r.Header)
	b.receiptInfo(r)
	b.customer(r.Customer)
	b.lines(r.Lines)
	b.totals(r)
	b.footer()
	return doc
}

type builder struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

func (b *builder) font(style string, size float64) *builder {
	b.doc.SetFont(fontFamily, style, size)
	return b
}

func (b *builder) centered(text string) *builder {
	b.doc.CellFormat(0, lineHeight+1, b.tr(text), "", 1, "C", false, 0, "")
	return b
}

func (b *builder) keyValue(key, value string) *builder {
	b.doc.CellFormat(35, lineHeight, b.tr(key), "", 0, "L", false, 0, "")
	b.doc.CellFormat(0, lineHeight, b.tr(value), "", 1, "L", false, 0, "")
	return b
}

func (b *builder) rule() *builder {
	y := b.doc.GetY() + 2
	w, _ := b.doc.GetPageSize()
	b.doc.Line(pageMargin, y, w-pageMargin, y)
	b.doc.SetY(y + 3)
	return b
}

func (b *builder) heading(text string) *builder {
	return b.font("B", 12).left(text).font("", 10)
}

func (b *builder) left(text string) *builder {
	b.doc.CellFormat(0, lineHeight+1, b.tr(text), "", 1, "L", false, 0, "")
	return b
}

func (b *builder) header(h entity.ReceiptHeader) {
	b.font("B", 20).centered(h.StoreName)
	if h.Tagline != "" {
		b.font("", 11).centered(h.Tagline)
	}

	var contact []string
	if h.Phone != "" {
		contact = append(contact, "Phone: "+h.Phone)
	}
	if h.Email != "" {
		contact = append(contact, "Email: "+h.Email)
	}
	if len(contact) > 0 {
		b.font("", 9).centered(strings.Join(contact, " | "))
	}
	b.rule()
}

func (b *builder) receiptInfo(r *entity.Receipt) {
	b.heading("RECEIPT")
	b.keyValue("Receipt #:", r.Number).
		keyValue("Date:", r.IssuedAt.Format("02 Jan 2006")).
		keyValue("Time:", r.IssuedAt.Format("15:04")).
		keyValue("Order Date:", r.OrderDate.Format("02 Jan 2006"))
	b.doc.Ln(2)
}

func (b *builder) customer(c entity.ReceiptCustomer) {
	b.heading("CUSTOMER DETAILS")
	b.keyValue("Name:", c.Name)
	if c.Phone != "" {
		b.keyValue("Phone:", c.Phone)
	}
	if c.Email != "" {
		b.keyValue("Email:", c.Email)
	}
	b.rule()
}

// remaining is the vertical space left above the bottom margin
func (b *builder) remaining() float64 {
	_, h := b.doc.GetPageSize()
	return h - pageMargin - b.doc.GetY()
}

// ensure starts a new page unless height still fits on the current one
func (b *builder) ensure(height float64) bool {
	if b.remaining() >= height {
		return false
	}
	b.doc.AddPage()
	return true
}

func (b *builder) tableHeader() {
	b.font("B", 10)
	b.doc.SetFillColor(235, 235, 235)
	for i, title := range columnTitles {
		b.doc.CellFormat(columnWidths[i], lineHeight+1, title, "B", 0, columnAlign[i], true, 0, "")
	}
	b.doc.Ln(-1)
	b.font("", 10)
}

func lineHeightOf(l entity.ReceiptLine) float64 {
	h := lineHeight + 1
	if l.TransactionCode != "" {
		h += lineHeight - 1
	}
	if l.Notes != "" {
		h += lineHeight - 1
	}
	return h
}

func (b *builder) lines(lines []entity.ReceiptLine) {
	b.ensure(2 * (lineHeight + 1))
	b.tableHeader()

	for _, l := range lines {
		if b.ensure(lineHeightOf(l)) {
			b.tableHeader()
		}
		cells := []string{
			l.Service,
			WeightItems(l),
			money.Format(l.UnitPrice),
			money.Format(l.Discount),
			money.Format(l.Total),
		}
		for i, text := range cells {
			b.doc.CellFormat(columnWidths[i], lineHeight+1, b.tr(text), "", 0, columnAlign[i], false, 0, "")
		}
		b.doc.Ln(-1)

		b.font("I", 8)
		if l.TransactionCode != "" {
			b.doc.CellFormat(0, lineHeight-1, b.tr("Ref: "+l.TransactionCode), "", 1, "L", false, 0, "")
		}
		if l.Notes != "" {
			b.doc.CellFormat(0, lineHeight-1, b.tr("Note: "+l.Notes), "", 1, "L", false, 0, "")
		}
		b.font("", 10)
	}
	b.rule()
}

func (b *builder) totals(r *entity.Receipt) {
	labelW := 150.0
	row := func(label, value string) {
		b.doc.CellFormat(labelW, lineHeight+1, label, "", 0, "R", false, 0, "")
		b.doc.CellFormat(0, lineHeight+1, value, "", 1, "R", false, 0, "")
	}

	b.ensure(totalsHeight + footerHeight)
	b.font("", 10)
	row("Subtotal:", money.FormatKES(r.Subtotal))
	row("Total Discount:", money.FormatKES(r.Discount))
	b.font("B", 12)
	row("TOTAL:", money.FormatKES(r.GrandTotal))
	b.rule()
}

func (b *builder) footer() {
	b.doc.Ln(4)
	b.font("B", 11).centered("Thank you for choosing our services!")
	b.font("", 9).centered("For any queries, please contact us at the above details.")
}

// WeightItems describes the measured quantity of an order line, e.g. "3kg, 2 items"
func WeightItems(l entity.ReceiptLine) string {
	var parts []string
	if l.Weight.IsPositive() {
		parts = append(parts, l.Weight.String()+"kg")
	}
	if l.Items > 0 {
		unit := "items"
		if l.Items == 1 {
			unit = "item"
		}
		parts = append(parts, fmt.Sprintf("%d %s", l.Items, unit))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
