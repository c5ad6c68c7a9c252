package model

import "time"

// TokenUsage is the monitoring-only estimate computed before a chat call.
// Nothing enforces the limit; PercentUsed exists for alerting.
type TokenUsage struct {
	MessageTokens    int     `json:"message_tokens"`
	DocumentTokens   int     `json:"document_tokens"`
	BasePromptTokens int     `json:"base_prompt_tokens"`
	HistoryTokens    int     `json:"history_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	ResponseTokens   int     `json:"response_tokens"`
	Limit            int     `json:"limit"`
	PercentUsed      float64 `json:"percent_used"`
}

// ExchangeUsage records the token cost of one completed chat exchange.
type ExchangeUsage struct {
	Timestamp        time.Time `json:"timestamp"`
	MessageTokens    int       `json:"message_tokens"`
	ResponseTokens   int       `json:"response_tokens"`
	ExchangeTokens   int       `json:"exchange_tokens"`
	CumulativeTokens int       `json:"cumulative_tokens"`
}
