package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/grocoop/gasorders/models"
)

// labelSet holds the formatter's translatable fragments. Italian is the
// default; unknown languages fall back to it.
type labelSet struct {
	transport   string
	variable    string
	portionsOf  string
	minimum     string
	maximum     string
	available   string
	availableOf string
	multiple    string
}

var labelTable = map[string]labelSet{
	"it": {
		transport:   "trasporto",
		variable:    "prodotto a prezzo variabile",
		portionsOf:  "Pezzi da",
		minimum:     "Minimo",
		maximum:     "Massimo Consigliato",
		available:   "Disponibile",
		availableOf: "totale",
		multiple:    "Multiplo",
	},
	"en": {
		transport:   "transport",
		variable:    "variable price product",
		portionsOf:  "Portions of",
		minimum:     "Minimum",
		maximum:     "Suggested maximum",
		available:   "Available",
		availableOf: "total",
		multiple:    "Multiple",
	},
}

// Formatter renders locale-formatted strings for prices, measures and booking
// constraints. It consumes values produced by ContextualPrice and
// Availability; it never queries anything itself.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
	labels  labelSet
}

// NewFormatter builds a formatter for the given language. Labels fall back to
// Italian for languages without a translation; number formatting always
// follows the tag.
func NewFormatter(tag language.Tag) *Formatter {
	base, _ := tag.Base()
	labels, ok := labelTable[base.String()]
	if !ok {
		labels = labelTable["it"]
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    currency.EUR,
		labels:  labels,
	}
}

func (f *Formatter) money(d decimal.Decimal) string {
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(d.InexactFloat64())))
}

func (f *Formatter) number(d decimal.Decimal) string {
	return f.printer.Sprintf("%.2f", d.InexactFloat64())
}

// PrintablePrice renders the per-unit price of a product within an order,
// with the transport surcharge and the variable-price note when present.
// Portion normalization is covered by the measure rendering, so the
// contextual price is taken unrectified.
func (f *Formatter) PrintablePrice(p *models.Product, order *models.Order) string {
	price := ContextualPrice(p, order, false)

	var b strings.Builder
	b.WriteString(f.money(price))
	b.WriteString(" / ")
	b.WriteString(p.Measure.Name)

	if !p.Transport.IsZero() {
		b.WriteString(" + ")
		b.WriteString(f.money(p.Transport))
		b.WriteString(" ")
		b.WriteString(f.labels.transport)
	}

	if p.Variable {
		b.WriteString(" (")
		b.WriteString(f.labels.variable)
		b.WriteString(")")
	}

	return b.String()
}

// PrintableMeasure renders the measure of a product: the portion size with
// its unit for portioned products, the bare measure name otherwise. Products
// without a measure render as the empty string.
func (f *Formatter) PrintableMeasure(p *models.Product, verbose bool) string {
	if !p.PortionQuantity.IsZero() {
		if verbose {
			return f.labels.portionsOf + " " + f.number(p.PortionQuantity) + " " + p.Measure.Name
		}
		return f.number(p.PortionQuantity) + " " + p.Measure.Name
	}
	return p.Measure.Name
}

// PrintableDetails renders the booking constraints of a product as a comma
// separated line. Every fragment is omitted when its source value is zero,
// availability included: an untracked cap never shows up as "available 0".
func (f *Formatter) PrintableDetails(p *models.Product, stillAvailable decimal.Decimal) string {
	var details []string

	if !p.MinQuantity.IsZero() {
		details = append(details, f.labels.minimum+": "+f.number(p.MinQuantity))
	}
	if !p.MaxQuantity.IsZero() {
		details = append(details, f.labels.maximum+": "+f.number(p.MaxQuantity))
	}
	if !p.MaxAvailable.IsZero() {
		details = append(details, f.labels.available+": "+f.number(stillAvailable)+
			" ("+f.number(p.MaxAvailable)+" "+f.labels.availableOf+")")
	}
	if !p.Multiple.IsZero() {
		details = append(details, f.labels.multiple+": "+f.number(p.Multiple))
	}

	return strings.Join(details, ", ")
}
