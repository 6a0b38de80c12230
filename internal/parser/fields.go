package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-parser/constants"
)

var digitPattern = regexp.MustCompile(`\d+`)

// ExtractMerchantName picks the merchant from the top of the receipt.
// Only the first 5 non-blank lines are considered; boilerplate lines are
// rejected, lines naming a business type are preferred, then substantial
// digit-free lines. Falls back to the first long-enough line of the first 3.
func ExtractMerchantName(lines []string) string {
	limit := min(len(lines), 5)
	for _, line := range lines[:limit] {
		lower := strings.ToLower(line)
		if len(line) <= 3 || containsAny(lower, constants.MerchantStoplist) {
			continue
		}
		if containsAny(lower, constants.BusinessKeywords) {
			return line
		}
		if !digitPattern.MatchString(line) && len(line) > 5 {
			return line
		}
	}

	limit = min(len(lines), 3)
	for _, line := range lines[:limit] {
		if len(line) > 5 {
			return line
		}
	}
	return ""
}

var paymentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(credit|debit|cash|card|visa|mastercard|amex|american express)`),
	regexp.MustCompile(`(?i)payment\s+method[:\s]+(\w+)`),
	regexp.MustCompile(`(?i)paid\s+by[:\s]+(\w+)`),
}

// ExtractPaymentMethod returns the uppercased payment method, or "" when
// no brand keyword or explicit label matches.
func ExtractPaymentMethod(text string) string {
	for _, re := range paymentPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return ""
}

var receiptNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)receipt\s+#?[:\s]*(\w+)`),
	regexp.MustCompile(`(?i)transaction\s+#?[:\s]*(\w+)`),
	regexp.MustCompile(`(?i)ref\s+#?[:\s]*(\w+)`),
	regexp.MustCompile(`#(\d+)`),
}

// ExtractReceiptNumber tries labeled receipt/transaction/ref patterns
// before falling back to a bare "#digits" token.
func ExtractReceiptNumber(text string) string {
	for _, re := range receiptNumberPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

var cashierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cashier[:\s]+(\w+(?:\s+\w+)?)`),
	regexp.MustCompile(`(?i)server[:\s]+(\w+(?:\s+\w+)?)`),
	regexp.MustCompile(`(?i)served\s+by[:\s]+(\w+(?:\s+\w+)?)`),
}

// ExtractCashier captures one or two words following a cashier/server label.
func ExtractCashier(text string) string {
	for _, re := range cashierPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// Amounts holds the labeled money fields found in receipt text; each is
// nil when no pattern produced a normalizable value.
type Amounts struct {
	Total    *decimal.Decimal
	Subtotal *decimal.Decimal
	Tax      *decimal.Decimal
	Tip      *decimal.Decimal
}

var (
	totalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total[:\s]+\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)amount[:\s]+\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)total\s+due[:\s]+\$?(\d+\.?\d*)`),
	}
	subtotalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)subtotal[:\s]+\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)sub\s+total[:\s]+\$?(\d+\.?\d*)`),
	}
	taxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)tax[:\s]+\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)sales\s+tax[:\s]+\$?(\d+\.?\d*)`),
	}
	tipPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)tip[:\s]+\$?(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)gratuity[:\s]+\$?(\d+\.?\d*)`),
	}
)

// ExtractAmounts scans the full text for labeled money fields. Each field
// tries its own patterns in order and keeps the first capture that
// normalizes; the fields are independent of each other.
func ExtractAmounts(text string) Amounts {
	first := func(patterns []*regexp.Regexp) *decimal.Decimal {
		for _, re := range patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if d, ok := NormalizeAmount(m[1]); ok {
				return &d
			}
		}
		return nil
	}
	return Amounts{
		Total:    first(totalPatterns),
		Subtotal: first(subtotalPatterns),
		Tax:      first(taxPatterns),
		Tip:      first(tipPatterns),
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
