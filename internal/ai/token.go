package ai

import "pdfchat/internal/model"

// charsPerToken is the deliberate approximation the whole token accounting
// is built on: 1 token per 4 characters. It drifts for non-English and
// structured text; the formula itself is the contract, not real tokenizer
// output.
const charsPerToken = 4

func EstimateTokens(text string) int {
	return len(text) / charsPerToken
}

// Usage computes the monitoring-only token breakdown for one prospective
// chat call against the assumed context ceiling. Never used to block a
// request.
func Usage(message, directive string, turns []model.Turn, limit int) model.TokenUsage {
	messageTokens := EstimateTokens(message)
	directiveTokens := EstimateTokens(directive)
	basePromptTokens := EstimateTokens(SystemPrompt(""))

	historyTokens := 0
	for _, turn := range turns {
		historyTokens += EstimateTokens(turn.Role) + EstimateTokens(turn.Content)
	}

	total := messageTokens + directiveTokens + basePromptTokens + historyTokens

	usage := model.TokenUsage{
		MessageTokens:    messageTokens,
		DocumentTokens:   directiveTokens,
		BasePromptTokens: basePromptTokens,
		HistoryTokens:    historyTokens,
		TotalTokens:      total,
		Limit:            limit,
	}
	if limit > 0 {
		usage.PercentUsed = float64(total) / float64(limit) * 100
	}
	return usage
}
