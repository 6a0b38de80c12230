package llm

import "strings"

// BuildReceiptPrompt composes the fixed structured-output prompt sent to
// the text-generation service: exhaustive item extraction, numeric-only
// amounts, uppercase payment methods, and a strict JSON-only response
// contract matching the shape CoerceReceipt expects.
func BuildReceiptPrompt(ocrText string) string {
	var b strings.Builder
	b.WriteString(`You are an expert receipt parser. Analyze the following receipt text and extract structured information.
Return ONLY a valid JSON object with the following structure (no additional text or formatting):

{
    "merchant_name": "string - name of the store/restaurant",
    "purchased_at": "string - date and time in ISO format (YYYY-MM-DDTHH:MM:SS) or null if not found",
    "total_amount": "number - total amount as decimal or null if not found",
    "subtotal": "number - subtotal amount as decimal or null if not found",
    "tax_amount": "number - tax amount as decimal or null if not found",
    "tip_amount": "number - tip amount as decimal or null if not found",
    "payment_method": "string - payment method (CASH, CREDIT, DEBIT, etc.) or empty string",
    "receipt_number": "string - receipt/transaction number or empty string",
    "cashier": "string - cashier name or empty string",
    "items": [
        {
            "name": "string - item name",
            "quantity": "number - quantity as decimal (default 1)",
            "unit_price": "number - unit price as decimal or null",
            "total_price": "number - total price as decimal or null"
        }
    ]
}

Important guidelines:
- Extract ALL items purchased, not just a few examples
- For amounts, use only numbers (no currency symbols)
- For dates, convert to ISO format if possible
- If information is not available, use null for numbers or empty string for text
- Be very careful with decimal numbers - ensure they are valid
- Look for common receipt patterns like "QTY", "PRICE", "TOTAL", etc.
- Payment methods should be uppercase (CASH, CREDIT, DEBIT, VISA, MASTERCARD, etc.)

Receipt text to analyze:
`)
	b.WriteString(ocrText)
	return b.String()
}
