// Package invoice turns an order into a printable document and archives rendered invoices.
package invoice

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"orderdesk/internal/model"
)

// ShortIDLength is the number of trailing id characters shown on an invoice.
const ShortIDLength = 6

// DateLayout formats the order creation date.
const DateLayout = "02 Jan 2006"

// Header identifies the shop printing the invoice.
type Header struct {
	ShopName string
	Location string
}

// DefaultHeader is used when no header is configured.
var DefaultHeader = Header{ShopName: "F-Commerce Shop", Location: "Dhaka, Bangladesh"}

// Line is a labelled row on the invoice.
type Line struct {
	Label string
	Value string
}

// Document is a rendered-ready invoice.
type Document struct {
	Header   Header
	ShortID  string
	Date     string
	Lines    []Line
	Products string
}

// Title is the document title, e.g. "Invoice #a1c9e4".
func (d Document) Title() string {
	return "Invoice #" + d.ShortID
}

// Formatter renders invoices under a fixed shop header.
type Formatter struct {
	Header Header
}

// NewFormatter returns a Formatter, falling back to DefaultHeader when the shop name is empty.
func NewFormatter(header Header) Formatter {
	if header.ShopName == "" {
		header = DefaultHeader
	}
	return Formatter{Header: header}
}

// Format builds the invoice for order using DefaultHeader.
func Format(order model.Order) Document {
	return NewFormatter(DefaultHeader).Format(order)
}

// Format builds the invoice for order. It performs no I/O and never fails;
// absent optional fields are left out.
func (f Formatter) Format(order model.Order) Document {
	header := f.Header
	if header.ShopName == "" {
		header = DefaultHeader
	}

	doc := Document{
		Header:   header,
		ShortID:  ShortID(order.ID),
		Date:     order.CreatedAt.UTC().Format(DateLayout),
		Products: order.Products,
	}

	doc.Lines = append(doc.Lines,
		Line{"Date", doc.Date},
		Line{"Invoice ID", "#" + doc.ShortID},
		Line{"Customer", order.CustomerName},
		Line{"Phone", order.Phone},
		Line{"Address", order.Address},
	)
	if order.Courier != model.CourierNone {
		doc.Lines = append(doc.Lines, Line{"Courier", string(order.Courier)})
	}
	if order.TotalPrice != nil {
		doc.Lines = append(doc.Lines, Line{"Total", fmt.Sprintf("%.2f", *order.TotalPrice)})
	}

	return doc
}

// ShortID returns the trailing ShortIDLength characters of id, or id itself when shorter.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[len(id)-ShortIDLength:]
}

// Text renders the document as plain text.
func (d Document) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", d.Header.ShopName)
	if d.Header.Location != "" {
		fmt.Fprintf(&b, "%s\n", d.Header.Location)
	}
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, l := range d.Lines {
		fmt.Fprintf(&b, "%-12s %s\n", l.Label+":", l.Value)
	}
	b.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&b, "Products:\n%s\n", d.Products)

	return b.String()
}

var pageTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; padding: 40px; color: #333; }
.invoice-box { border: 1px solid #ddd; padding: 20px; max-width: 600px; margin: auto; }
.header { text-align: center; margin-bottom: 20px; }
.info-table { width: 100%; margin-bottom: 20px; border-collapse: collapse; }
.info-table td { padding: 5px; vertical-align: top; }
.label { font-weight: bold; width: 100px; }
.product-box { border: 2px dashed #ccc; padding: 15px; background: #f9f9f9; white-space: pre-line; }
@media print { .no-print { display: none; } .invoice-box { border: none; } }
</style>
</head>
<body>
<div class="invoice-box">
<div class="header"><h1>{{.Header.ShopName}}</h1>{{if .Header.Location}}<p>{{.Header.Location}}</p>{{end}}</div>
<table class="info-table">
{{- range .Lines}}
<tr><td class="label">{{.Label}}:</td><td>{{.Value}}</td></tr>
{{- end}}
</table>
<div class="product-box"><strong>Products:</strong>
{{.Products}}</div>
<p class="no-print" style="text-align:center"><button onclick="window.print()">Print Receipt</button></p>
</div>
</body>
</html>
`))

// HTML renders the document as a printable page. Field values are escaped.
func (d Document) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

// ArchiveKey is the object name an invoice is archived under.
func ArchiveKey(order model.Order) string {
	return fmt.Sprintf("%s/invoice-%s.html", order.CreatedAt.UTC().Format("2006/01"), order.ID)
}
