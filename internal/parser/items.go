package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-parser/constants"
	"github.com/joseph-ayodele/receipt-parser/internal/entity"
)

// A line item is a description followed by a trailing price, anchored at
// both ends of the line.
var itemLinePattern = regexp.MustCompile(`^(.+?)\s+\$?(\d+\.?\d*)$`)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ExtractItems scans non-blank lines for purchased items. Lines carrying
// totals-block or footer keywords are skipped. With a single trailing
// number there is no way to tell a unit price from a line total, so the
// captured amount fills both and quantity defaults to 1.
func ExtractItems(lines []string) []entity.LineItem {
	items := make([]entity.LineItem, 0)
	for _, line := range lines {
		if containsAny(strings.ToLower(line), constants.ItemSkipKeywords) {
			continue
		}
		m := itemLinePattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) <= 2 || digitsOnly.MatchString(name) {
			continue
		}
		price, ok := NormalizeAmount(m[2])
		if !ok {
			continue
		}
		items = append(items, entity.LineItem{
			Name:       name,
			Quantity:   decimal.NewFromInt(1),
			UnitPrice:  &price,
			TotalPrice: &price,
		})
	}
	return items
}
