package provider

import (
    "context"
    "time"
)

// Quote is the normalized shape served to consumers regardless of upstream.
// Keep price as a string to avoid float rounding on the way out.
type Quote struct {
    Symbol     string    `json:"symbol"`
    Price      string    `json:"price"`
    Currency   string    `json:"currency"`
    Exchange   string    `json:"exchange,omitempty"`
    Source     string    `json:"source"`
    ReceivedAt time.Time `json:"received_at"`
}

// Provider fetches normalized quotes for a batch of symbols.
type Provider interface {
    Name() string
    Fetch(ctx context.Context, symbols []string) ([]Quote, error)
}
