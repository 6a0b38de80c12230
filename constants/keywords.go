package constants

// MerchantStoplist holds boilerplate tokens that disqualify a line from
// being treated as the merchant name. Matched as lowercase substrings.
var MerchantStoplist = []string{"receipt", "customer", "copy", "thank", "you", "please", "come", "again"}

// BusinessKeywords mark a line as likely naming the business itself.
var BusinessKeywords = []string{"store", "shop", "market", "restaurant", "cafe"}

// ItemSkipKeywords disqualify a line from line-item extraction; these mark
// totals blocks and footer boilerplate rather than purchased items.
var ItemSkipKeywords = []string{"total", "subtotal", "tax", "receipt", "thank you"}
