// Package articles prepares article bodies for the reader view. The backend
// stores bodies as HTML fragments; the reader renders Markdown.
package articles

import (
	"context"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/shenavaapp/shenava-client/internal/backend"
	"github.com/shenavaapp/shenava-client/internal/errors"
)

const collectionBodies = "article_bodies"

// Words per minute for the reading-time estimate. Persian prose reads a bit
// slower than the usual English figure.
const readingWPM = 180

// htmlTagPattern matches common HTML tags to detect whether a body actually
// contains markup. Plain-text bodies pass through untouched.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote|img|figure)[\s>/]`)

// Article is a rendered article body.
type Article struct {
	ItemID      string
	Markdown    string
	WordCount   int
	ReadMinutes int
}

// bodyRow is the wire shape of an article body.
type bodyRow struct {
	ItemID string `json:"item_id"`
	Body   string `json:"body"`
}

// Service fetches article bodies and renders them to Markdown.
type Service struct {
	client backend.Client
}

// NewService creates an article service.
func NewService(client backend.Client) *Service {
	return &Service{client: client}
}

// Get fetches and renders the body for one article.
func (s *Service) Get(ctx context.Context, itemID string) (*Article, error) {
	var rows []bodyRow
	err := s.client.Query(ctx, backend.QuerySpec{
		Collection: collectionBodies,
		Select:     []string{"item_id", "body"},
		Filters:    []backend.Filter{backend.Eq("item_id", itemID)},
		Limit:      1,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.NotFoundf("article %s has no body", itemID)
	}

	md := Render(rows[0].Body)
	words := countWords(md)
	return &Article{
		ItemID:      itemID,
		Markdown:    md,
		WordCount:   words,
		ReadMinutes: readMinutes(words),
	}, nil
}

// Render converts an HTML fragment to Markdown. Plain text and empty bodies
// are returned as-is, and a failed conversion falls back to the raw body so
// the reader always has something to show.
func Render(body string) string {
	if body == "" || !containsHTML(body) {
		return strings.TrimSpace(body)
	}

	md, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(md)
}

func containsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

func readMinutes(words int) int {
	if words == 0 {
		return 0
	}
	return (words + readingWPM - 1) / readingWPM
}
