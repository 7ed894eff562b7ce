package dashboard

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/immerse/sponsor-tracker/internal/domain"
)

// Sponsor is a sponsor as the dashboard reads it from the API. Amount accepts
// numbers and numeric strings; anything else reads as zero.
type Sponsor struct {
	ID           string      `json:"_id"`
	Name         string      `json:"name"`
	Amount       LooseAmount `json:"amount"`
	BusinessType string      `json:"businessType"`
	Location     string      `json:"location"`
	AssignedTeam string      `json:"assignedTeam"`
	Package      string      `json:"package"`
}

// LooseAmount decodes like domain.Amount, but booleans, objects and arrays
// read as zero instead of failing the whole list.
type LooseAmount float64

// UnmarshalJSON never fails on a well-formed JSON value.
func (a *LooseAmount) UnmarshalJSON(data []byte) error {
	var v domain.Amount
	if err := v.UnmarshalJSON(data); err != nil {
		*a = 0
		return nil
	}
	*a = LooseAmount(v)
	return nil
}

// TotalAmount sums the amounts of all sponsors.
func TotalAmount(sponsors []Sponsor) float64 {
	var total float64
	for _, s := range sponsors {
		v := float64(s.Amount)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total += v
	}
	return total
}

// Formatter renders amounts as localized currency strings.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a formatter for a BCP 47 locale such as "en-IN".
func NewFormatter(locale, symbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}, nil
}

// Format groups digits per locale and prefixes the currency symbol.
func (f *Formatter) Format(v float64) string {
	if v == math.Trunc(v) {
		return f.symbol + f.printer.Sprintf("%.0f", v)
	}
	return f.symbol + f.printer.Sprintf("%.2f", v)
}
