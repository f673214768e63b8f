package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer produces a natural-language spending summary from a prepared
// digest. Implemented by OpenAISummarizer; nil means the feature is off.
type Summarizer interface {
	Summarize(ctx context.Context, digest string) (string, error)
}

// OpenAISummarizer generates summaries through the OpenAI chat API.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISummarizer creates a summarizer. Returns nil when apiKey is empty
// so callers can wire the absence straight into the service.
func NewOpenAISummarizer(apiKey, model string) *OpenAISummarizer {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISummarizer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

const summarySystemPrompt = "You are a personal finance assistant. Given a digest of a user's " +
	"monthly income, expenses, and category spending, write a short, friendly summary " +
	"(3-5 sentences) highlighting the biggest spending categories and any notable balance " +
	"between income and expenses. Do not invent numbers not present in the digest."

// Summarize sends the digest through the chat completion API.
func (o *OpenAISummarizer) Summarize(ctx context.Context, digest string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: 300,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: digest},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ErrSummariesDisabled is returned when no summarizer is configured.
var ErrSummariesDisabled = fmt.Errorf("ai summaries are not configured")

// GenerateMonthlySummary builds a digest of the month containing asOf and
// asks the summarizer to narrate it.
func (s *FinanceService) GenerateMonthlySummary(ctx context.Context, ownerID string, asOf time.Time) (string, error) {
	if s.summarizer == nil {
		return "", ErrSummariesDisabled
	}
	if ownerID == "" {
		return "", fmt.Errorf("ownerId is required")
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	aggregates, err := s.GetDailyAggregates(ctx, ownerID, monthStart, monthEnd)
	if err != nil {
		return "", err
	}
	breakdown, err := s.GetCategoryBreakdown(ctx, ownerID, monthStart, monthEnd)
	if err != nil {
		return "", err
	}

	var income, expenses int64
	for _, agg := range aggregates {
		income += agg.IncomeCents
		expenses += agg.ExpenseCents
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Month: %s\n", monthStart.Format("January 2006"))
	fmt.Fprintf(&b, "Currency: %s\n", breakdown.BaseCurrencyCode)
	fmt.Fprintf(&b, "Total income: %.2f\n", float64(income)/100)
	fmt.Fprintf(&b, "Total expenses: %.2f\n", float64(expenses)/100)
	fmt.Fprintf(&b, "Net: %.2f\n", float64(income-expenses)/100)
	b.WriteString("Spending by category:\n")
	for i, entry := range breakdown.Entries {
		if i >= 8 {
			break
		}
		fmt.Fprintf(&b, "- %s: %.2f (%.0f%%)\n", entry.CategoryName, float64(entry.AmountCents)/100, entry.Percent)
	}

	return s.summarizer.Summarize(ctx, b.String())
}
