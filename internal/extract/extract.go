// Package extract derives structured facts from a website's markup: title,
// normalized absolute image URLs, and a stylesheet-link count.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/webscope/siteinfo/internal/logger"
)

// Info holds the facts derived from a single page.
type Info struct {
	URL              string
	DomainName       string
	Protocol         string
	Title            *string // nil when the document has no <title>
	Images           []string
	StylesheetsCount int
}

// Fetcher is the outbound GET contract the extractor depends on.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type Extractor struct {
	fetcher Fetcher
	log     logger.Logger
}

func New(fetcher Fetcher, log logger.Logger) *Extractor {
	return &Extractor{fetcher: fetcher, log: log}
}

// Extract fetches rawURL and derives its Info. The URL is decomposed into
// scheme and host by pure string parsing before any network I/O; fetch and
// parse failures are returned to the caller, never swallowed.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (Info, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Info{}, fmt.Errorf("parse url: %w", err)
	}

	body, err := e.fetcher.Get(ctx, rawURL)
	if err != nil {
		return Info{}, fmt.Errorf("fetch failed: %w", err)
	}

	doc, err := parseHTML(body)
	if err != nil {
		return Info{}, fmt.Errorf("parse html: %w", err)
	}

	info := Info{
		URL:        rawURL,
		DomainName: parsed.Host,
		Protocol:   parsed.Scheme,
		Title:      extractTitle(doc),
		Images:     extractImages(doc, parsed.Scheme, parsed.Host),
		// The rel match is exact lowercase on purpose; uppercase variants
		// like REL="STYLESHEET" are not counted.
		StylesheetsCount: doc.Find(`link[rel="stylesheet"]`).Length(),
	}

	e.log.Debug("extracted website info",
		logger.String("url", rawURL),
		logger.Int("images", len(info.Images)),
		logger.Int("stylesheets", info.StylesheetsCount))

	return info, nil
}

// parseHTML decodes the body to UTF-8 when needed and builds a tolerant
// document. Malformed markup never fails; missing elements degrade to
// empty selections.
func parseHTML(body []byte) (*goquery.Document, error) {
	enc, _, _ := charset.DetermineEncoding(body, "")
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		if !utf8.Valid(body) {
			return nil, err
		}
		decoded = body
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(decoded))
}

func extractTitle(doc *goquery.Document) *string {
	sel := doc.Find("title")
	if sel.Length() == 0 {
		return nil
	}
	title := strings.TrimSpace(sel.First().Text())
	return &title
}

// extractImages collects img sources in document order, skipping tags with
// no src, and normalizes each to an absolute URL. The list is not
// deduplicated.
func extractImages(doc *goquery.Document, scheme, host string) []string {
	images := []string{}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		images = append(images, normalizeImageURL(src, scheme, host))
	})
	return images
}

// normalizeImageURL resolves a raw src value against the page's scheme and
// host: scheme-relative ("//"), root-relative ("/"), already absolute, or
// bare relative paths.
func normalizeImageURL(src, scheme, host string) string {
	switch {
	case strings.HasPrefix(src, "//"):
		return scheme + ":" + src
	case strings.HasPrefix(src, "/"):
		return scheme + "://" + host + src
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	default:
		return scheme + "://" + host + "/" + src
	}
}
