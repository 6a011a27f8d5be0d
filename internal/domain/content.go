// Package domain contains the core types shared across the client.
package domain

import "time"

// ContentKind classifies a content item. Exactly one kind applies per item;
// the backend's boolean flags (is_music, is_podcast, is_article, ...) are
// folded into this enum when rows are decoded.
type ContentKind string

// Content kinds.
const (
	KindAudiobook ContentKind = "audiobook"
	KindEbook     ContentKind = "ebook"
	KindMusic     ContentKind = "music"
	KindPodcast   ContentKind = "podcast"
	KindArticle   ContentKind = "article"
)

// Valid reports whether k is a known content kind.
func (k ContentKind) Valid() bool {
	switch k {
	case KindAudiobook, KindEbook, KindMusic, KindPodcast, KindArticle:
		return true
	}
	return false
}

// Audio reports whether the kind is played rather than read.
func (k ContentKind) Audio() bool {
	return k == KindAudiobook || k == KindMusic || k == KindPodcast
}

// ContentItem is a remote catalog record. Read-only on the client; the
// backend owns it.
type ContentItem struct {
	ID          string      `json:"id"`
	TitleFa     string      `json:"title_fa"`
	TitleEn     string      `json:"title_en,omitempty"`
	CreatorName string      `json:"creator_name"`
	CoverPath   string      `json:"cover_path,omitempty"`
	CoverHash   string      `json:"cover_hash,omitempty"` // BlurHash placeholder
	Kind        ContentKind `json:"kind"`
	DurationSec int64       `json:"duration_sec,omitempty"` // audio kinds
	PageCount   int         `json:"page_count,omitempty"`   // text kinds
	IsFree      bool        `json:"is_free"`
	Rating      float64     `json:"rating"`
	RatingCount int         `json:"rating_count"`
	CreatedAt   time.Time   `json:"created_at"`
}

// EntitlementSource describes how the user came to own an item.
type EntitlementSource string

// Entitlement sources.
const (
	SourcePurchase EntitlementSource = "purchase"
	SourceGrant    EntitlementSource = "grant"
	SourceFree     EntitlementSource = "free"
)

// Entitlement links a user to an owned content item. Read-only on the client.
type Entitlement struct {
	UserID    string            `json:"user_id"`
	ItemID    string            `json:"item_id"`
	Source    EntitlementSource `json:"source"`
	CreatedAt time.Time         `json:"created_at"`
}
