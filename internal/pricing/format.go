package pricing

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders whole-unit currency amounts as localized text: currency
// symbol, thousands separators, no decimal places.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a Formatter for the given BCP 47 locale tag.
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{printer: message.NewPrinter(tag)}, nil
}

// Format renders a non-negative amount, e.g. 10000 -> "$10,000".
func (f *Formatter) Format(amount int64) string {
	return "$" + f.printer.Sprint(number.Decimal(amount))
}
