package backend

import (
	"context"
	"log/slog"
)

// Capabilities are the backend schema features this client may rely on.
// They are resolved once at startup instead of string-matching "missing
// column" errors at each call site: a column that is not advertised is
// simply never requested, and a query that needs an absent capability
// returns an empty result without a round trip.
type Capabilities struct {
	// SecondaryTitles reports whether items carry a title_en column.
	SecondaryTitles bool `json:"secondary_titles"`
	// Ratings reports whether rating columns exist.
	Ratings bool `json:"ratings"`
	// Wishlist reports whether the wishlist collection exists.
	Wishlist bool `json:"wishlist"`
}

// defaultCapabilities is the conservative baseline assumed when the
// capability view cannot be fetched: only columns every deployed schema
// version has.
func defaultCapabilities() Capabilities {
	return Capabilities{}
}

// ResolveCapabilities fetches the capability flags from the backend's
// capability view. Failure falls back to the conservative baseline; the
// app still works, with the optional features dark.
func ResolveCapabilities(ctx context.Context, client Client, logger *slog.Logger) Capabilities {
	var rows []Capabilities
	err := client.Query(ctx, QuerySpec{Collection: "client_capabilities", Limit: 1}, &rows)
	if err != nil || len(rows) == 0 {
		logger.Warn("capability resolution failed, using baseline", "error", err)
		return defaultCapabilities()
	}
	return rows[0]
}
