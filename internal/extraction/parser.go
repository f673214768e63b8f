package extraction

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const minParseRate = 0.50 // must parse at least 50% of candidate lines

// ParsedTransaction is one statement line turned into structured data.
type ParsedTransaction struct {
	Date              time.Time
	Description       string
	Merchant          string
	SuggestedCategory string
	AmountCents       int64
	IsDebit           bool
	Confidence        float64
}

// transactionLineRe matches a line with: date ... description ... amount.
// Groups: (1) date, (2) description, (3) amount.
var transactionLineRe = regexp.MustCompile(
	`(?i)` +
		// Date group, various formats
		`(\d{1,2}[/\-\.]\d{1,2}[/\-\.]\d{2,4}|\d{4}[/\-]\d{2}[/\-]\d{2}|` +
		`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2}(?:[,\s]+\d{2,4})?|` +
		`\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?(?:[,\s]+\d{2,4})?)` +
		// Separator + description (non-greedy)
		`\s+(.+?)\s+` +
		// Amount (possibly negative, with $ or a CR/DR suffix)
		`(-?\$?\d{1,3}(?:,\d{3})*\.\d{2})\s*(CR|DR)?$`,
)

// dateFormats to try when parsing extracted dates.
var dateFormats = []string{
	"02/01/2006", // DD/MM/YYYY
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2006/01/02",
	"Jan 02 2006",
	"Jan 2 2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 02, 2006",
	"Jan 2, 2006",
	"02/01/06",
	"2/1/06",
}

// ParseStatement runs rule-based extraction over pre-analyzed PDF text.
// It returns an error when the document is scanned or when too few candidate
// lines parse cleanly for the result to be trusted.
func ParseStatement(analysis *PDFAnalysis) ([]ParsedTransaction, error) {
	if analysis == nil || analysis.IsScanned {
		return nil, fmt.Errorf("cannot extract from scanned PDF")
	}

	var parsed []ParsedTransaction
	candidates := 0

	for _, line := range analysis.TextLines {
		matches := transactionLineRe.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		candidates++

		date, ok := parseFlexibleDate(strings.TrimSpace(matches[1]))
		if !ok {
			continue
		}

		description := strings.TrimSpace(matches[2])
		amountCents, isDebit := parseAmountCents(strings.TrimSpace(matches[3]), matches[4])
		if amountCents <= 0 {
			continue
		}

		info := NormalizeMerchant(description)
		parsed = append(parsed, ParsedTransaction{
			Date:              date,
			Description:       description,
			Merchant:          info.Name,
			SuggestedCategory: info.CategoryName,
			AmountCents:       amountCents,
			IsDebit:           isDebit,
			Confidence:        info.Confidence,
		})
	}

	if candidates == 0 {
		return nil, fmt.Errorf("no transaction lines found in statement")
	}
	if rate := float64(len(parsed)) / float64(candidates); rate < minParseRate {
		return nil, fmt.Errorf("only parsed %.0f%% of candidate lines, below threshold", rate*100)
	}

	return parsed, nil
}

// parseFlexibleDate tries the known statement date formats in order.
// Two-digit and missing years resolve into the current era sensibly: a
// year-less "Jan 15" gets the current year.
func parseFlexibleDate(s string) (time.Time, bool) {
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.Join(strings.Fields(s), " ")

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}

	// Month-name forms without a year.
	for _, format := range []string{"Jan 02", "Jan 2", "02 Jan", "2 Jan"} {
		if t, err := time.Parse(format, s); err == nil {
			now := time.Now()
			return time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// parseAmountCents parses a statement amount into positive cents and a
// debit/credit flag. A leading minus or a DR suffix marks a debit; a CR
// suffix marks a credit. Unmarked amounts default to debit, which is the
// common case on card statements.
func parseAmountCents(s, suffix string) (int64, bool) {
	isDebit := !strings.EqualFold(suffix, "CR")

	if strings.HasPrefix(s, "-") {
		isDebit = true
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value <= 0 {
		return 0, isDebit
	}
	return int64(math.Round(value * 100)), isDebit
}
