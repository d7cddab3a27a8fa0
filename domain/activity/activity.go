package activity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parodee/goapi/domain"
)

// BadgeColor buckets an event into one of the storefront accents
type BadgeColor string

const (
	BadgeColorSuccess BadgeColor = "#4ade80"
	BadgeColorWarn    BadgeColor = "#facc15"
	BadgeColorInfo    BadgeColor = "#60a5fa"
	BadgeColorNeutral BadgeColor = "#d1d5db"
	BadgeColorAccent  BadgeColor = "#fb7185"
)

// Payment is the decimal-adjusted price variant of an event
type Payment struct {
	Quantity     domain.FlexString `json:"quantity"`
	Decimals     int32             `json:"decimals"`
	Symbol       string            `json:"symbol"`
	TokenAddress domain.Address    `json:"token_address"`
}

// MarketplaceEvent is one upstream event row. Exactly which price and
// counterparty fields are present varies by event type.
type MarketplaceEvent struct {
	EventType      string             `json:"event_type"`
	EventTimestamp int64              `json:"event_timestamp"`
	From           *string            `json:"from_address"`
	Maker          *string            `json:"maker"`
	Offerer        *string            `json:"offerer"`
	To             *string            `json:"to_address"`
	Taker          *string            `json:"taker"`
	Payment        *Payment           `json:"payment"`
	Price          *domain.FlexString `json:"price"`
	StartPrice     *domain.FlexString `json:"start_price"`
}

// DisplayEvent is the render-ready form of a MarketplaceEvent
type DisplayEvent struct {
	BadgeLabel string     `json:"badgeLabel"`
	BadgeColor BadgeColor `json:"badgeColor"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Price      string     `json:"price"`
	Date       string     `json:"date"`
}

var weiUnit = decimal.New(1, 18)

// FormatEvents turns upstream events into display rows. Pure, no I/O,
// never errors; unusable fields degrade to placeholders.
func FormatEvents(events []MarketplaceEvent) []DisplayEvent {
	out := make([]DisplayEvent, 0, len(events))
	for _, ev := range events {
		label, color := badge(ev.EventType)
		out = append(out, DisplayEvent{
			BadgeLabel: label,
			BadgeColor: color,
			From:       shortAddress(firstOf(ev.From, ev.Maker, ev.Offerer)),
			To:         shortAddress(firstOf(ev.To, ev.Taker)),
			Price:      formatPrice(ev),
			Date:       formatDate(ev.EventTimestamp),
		})
	}
	return out
}

// SummarizePrice scans events in order for the first usable price and
// reports it as the current best price, or "Not Listed".
func SummarizePrice(events []MarketplaceEvent) string {
	for _, ev := range events {
		if p := formatPrice(ev); p != "—" {
			return p
		}
	}
	return "Not Listed"
}

func badge(eventType string) (string, BadgeColor) {
	switch strings.ToLower(eventType) {
	case "sale", "mint", "item_listed":
		return strings.ToUpper(eventType), BadgeColorSuccess
	case "listing", "list", "order", "created":
		return "LIST", BadgeColorWarn
	case "offer_entered":
		return "BID", BadgeColorInfo
	case "cancelled", "cancel":
		return "CANCEL", BadgeColorNeutral
	case "transfer":
		return "TRANSFER", BadgeColorAccent
	default:
		return strings.ToUpper(eventType), BadgeColorNeutral
	}
}

// formatPrice resolves the price variants in order: decimal-adjusted
// payment, then wei price, then wei start price.
func formatPrice(ev MarketplaceEvent) string {
	if ev.Payment != nil && ev.Payment.Quantity != "" {
		if qty, err := decimal.NewFromString(ev.Payment.Quantity.String()); err == nil {
			amount := qty.Shift(-ev.Payment.Decimals)
			symbol := ev.Payment.Symbol
			if strings.EqualFold(symbol, "WETH") {
				symbol = "ETH"
			}
			if symbol == "" {
				return amount.String()
			}
			return amount.String() + " " + symbol
		}
	}
	for _, wei := range []*domain.FlexString{ev.Price, ev.StartPrice} {
		if wei == nil || *wei == "" {
			continue
		}
		if v, err := decimal.NewFromString(wei.String()); err == nil {
			return v.Div(weiUnit).String()
		}
	}
	return "—"
}

func firstOf(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return ""
}

func shortAddress(addr string) string {
	if addr == "" {
		return "-"
	}
	if len(addr) >= 8 {
		return addr[:6]
	}
	return addr
}

func formatDate(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format("01/02")
}
