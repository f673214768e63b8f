package extraction

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MerchantInfo contains normalized merchant information.
type MerchantInfo struct {
	Name         string
	CategoryName string
	Confidence   float64
}

// merchantMappings maps known merchant keywords to normalized names and
// category names (matched against the user's categories by name at import).
var merchantMappings = map[string]MerchantInfo{
	// Groceries and food
	"woolworths":  {Name: "Woolworths", CategoryName: "Groceries", Confidence: 0.95},
	"coles":       {Name: "Coles", CategoryName: "Groceries", Confidence: 0.95},
	"aldi":        {Name: "Aldi", CategoryName: "Groceries", Confidence: 0.95},
	"costco":      {Name: "Costco", CategoryName: "Groceries", Confidence: 0.95},
	"trader joe":  {Name: "Trader Joe's", CategoryName: "Groceries", Confidence: 0.95},
	"mcdonalds":   {Name: "McDonald's", CategoryName: "Dining", Confidence: 0.95},
	"mcdonald's":  {Name: "McDonald's", CategoryName: "Dining", Confidence: 0.95},
	"starbucks":   {Name: "Starbucks", CategoryName: "Dining", Confidence: 0.95},
	"subway":      {Name: "Subway", CategoryName: "Dining", Confidence: 0.95},
	"kfc":         {Name: "KFC", CategoryName: "Dining", Confidence: 0.95},
	"burger king": {Name: "Burger King", CategoryName: "Dining", Confidence: 0.95},
	"uber eats":   {Name: "Uber Eats", CategoryName: "Dining", Confidence: 0.95},
	"doordash":    {Name: "DoorDash", CategoryName: "Dining", Confidence: 0.95},
	"deliveroo":   {Name: "Deliveroo", CategoryName: "Dining", Confidence: 0.95},

	// Transport
	"uber":    {Name: "Uber", CategoryName: "Transport", Confidence: 0.95},
	"lyft":    {Name: "Lyft", CategoryName: "Transport", Confidence: 0.95},
	"shell":   {Name: "Shell", CategoryName: "Transport", Confidence: 0.95},
	"bp":      {Name: "BP", CategoryName: "Transport", Confidence: 0.95},
	"caltex":  {Name: "Caltex", CategoryName: "Transport", Confidence: 0.95},
	"chevron": {Name: "Chevron", CategoryName: "Transport", Confidence: 0.95},

	// Entertainment subscriptions
	"netflix":      {Name: "Netflix", CategoryName: "Entertainment", Confidence: 0.95},
	"spotify":      {Name: "Spotify", CategoryName: "Entertainment", Confidence: 0.95},
	"disney+":      {Name: "Disney+", CategoryName: "Entertainment", Confidence: 0.95},
	"hulu":         {Name: "Hulu", CategoryName: "Entertainment", Confidence: 0.95},
	"amazon prime": {Name: "Amazon Prime", CategoryName: "Entertainment", Confidence: 0.95},

	// Shopping
	"amazon":  {Name: "Amazon", CategoryName: "Shopping", Confidence: 0.95},
	"ebay":    {Name: "eBay", CategoryName: "Shopping", Confidence: 0.95},
	"target":  {Name: "Target", CategoryName: "Shopping", Confidence: 0.95},
	"walmart": {Name: "Walmart", CategoryName: "Shopping", Confidence: 0.95},
	"ikea":    {Name: "IKEA", CategoryName: "Shopping", Confidence: 0.95},

	// Utilities
	"telstra":  {Name: "Telstra", CategoryName: "Utilities", Confidence: 0.95},
	"optus":    {Name: "Optus", CategoryName: "Utilities", Confidence: 0.95},
	"vodafone": {Name: "Vodafone", CategoryName: "Utilities", Confidence: 0.95},
	"verizon":  {Name: "Verizon", CategoryName: "Utilities", Confidence: 0.95},
	"comcast":  {Name: "Comcast", CategoryName: "Utilities", Confidence: 0.95},

	// Travel
	"airbnb":      {Name: "Airbnb", CategoryName: "Travel", Confidence: 0.95},
	"booking.com": {Name: "Booking.com", CategoryName: "Travel", Confidence: 0.95},
	"expedia":     {Name: "Expedia", CategoryName: "Travel", Confidence: 0.95},
	"qantas":      {Name: "Qantas", CategoryName: "Travel", Confidence: 0.95},
}

// categoryKeywords maps generic keywords to category names for fallback.
var categoryKeywords = map[string]string{
	"restaurant": "Dining",
	"cafe":       "Dining",
	"coffee":     "Dining",
	"pizza":      "Dining",
	"grocer":     "Groceries",
	"market":     "Groceries",
	"bakery":     "Groceries",
	"fuel":       "Transport",
	"petrol":     "Transport",
	"parking":    "Transport",
	"toll":       "Transport",
	"taxi":       "Transport",
	"train":      "Transport",
	"pharmacy":   "Health",
	"medical":    "Health",
	"dental":     "Health",
	"electric":   "Utilities",
	"energy":     "Utilities",
	"water":      "Utilities",
	"internet":   "Utilities",
	"insurance":  "Insurance",
	"hotel":      "Travel",
	"airline":    "Travel",
	"rent":       "Housing",
	"mortgage":   "Housing",
}

// merchantNoise strips trailing reference numbers, store codes, and card
// suffixes that banks append to merchant descriptors.
var merchantNoise = regexp.MustCompile(`(?i)\s+(?:#?\d{3,}|x{2,}\d+|ref\s*\S+|card\s*\d+)\s*$`)

var titleCaser = cases.Title(language.English)

// NormalizeMerchant cleans a raw statement descriptor and looks up a known
// merchant name and category suggestion.
func NormalizeMerchant(raw string) MerchantInfo {
	cleaned := strings.TrimSpace(raw)
	for {
		stripped := merchantNoise.ReplaceAllString(cleaned, "")
		if stripped == cleaned {
			break
		}
		cleaned = stripped
	}

	lower := strings.ToLower(cleaned)

	// Exact keyword lookup first, longest keys win so "uber eats" beats "uber".
	var best MerchantInfo
	bestLen := 0
	for keyword, info := range merchantMappings {
		if strings.Contains(lower, keyword) && len(keyword) > bestLen {
			best = info
			bestLen = len(keyword)
		}
	}
	if bestLen > 0 {
		return best
	}

	// Generic keyword fallback.
	for keyword, category := range categoryKeywords {
		if strings.Contains(lower, keyword) {
			return MerchantInfo{
				Name:         titleCaser.String(strings.ToLower(cleaned)),
				CategoryName: category,
				Confidence:   0.6,
			}
		}
	}

	return MerchantInfo{
		Name:       titleCaser.String(strings.ToLower(cleaned)),
		Confidence: 0.3,
	}
}
