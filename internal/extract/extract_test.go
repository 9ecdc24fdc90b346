package extract

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/webscope/siteinfo/internal/logger"
)

// fakeFetcher serves a fixed body or error without any network I/O.
type fakeFetcher struct {
	body  []byte
	err   error
	calls int
}

func (f *fakeFetcher) Get(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

func extractHTML(t *testing.T, url, html string) Info {
	t.Helper()
	e := New(&fakeFetcher{body: []byte(html)}, logger.Nop())
	info, err := e.Extract(context.Background(), url)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return info
}

func TestExtractTitleOnly(t *testing.T) {
	info := extractHTML(t, "https://example.com",
		`<html><head><title>Example Domain</title></head><body></body></html>`)

	if info.Title == nil || *info.Title != "Example Domain" {
		t.Errorf("Title = %v, want %q", info.Title, "Example Domain")
	}
	if len(info.Images) != 0 {
		t.Errorf("Images = %v, want empty", info.Images)
	}
	if info.StylesheetsCount != 0 {
		t.Errorf("StylesheetsCount = %d, want 0", info.StylesheetsCount)
	}
	if info.DomainName != "example.com" {
		t.Errorf("DomainName = %q, want example.com", info.DomainName)
	}
	if info.Protocol != "https" {
		t.Errorf("Protocol = %q, want https", info.Protocol)
	}
}

func TestExtractTitleTrimmed(t *testing.T) {
	info := extractHTML(t, "https://example.com",
		"<title>\n   Example Domain\t </title>")
	if info.Title == nil || *info.Title != "Example Domain" {
		t.Errorf("Title = %v, want trimmed %q", info.Title, "Example Domain")
	}
}

func TestExtractNoTitle(t *testing.T) {
	info := extractHTML(t, "https://example.com", `<html><body><p>hi</p></body></html>`)
	if info.Title != nil {
		t.Errorf("Title = %q, want nil when no title element exists", *info.Title)
	}
}

func TestExtractImageNormalization(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "scheme-relative",
			html: `<img src="//cdn.example.com/a.png">`,
			want: []string{"https://cdn.example.com/a.png"},
		},
		{
			name: "root-relative",
			html: `<img src="/a.png">`,
			want: []string{"https://example.com/a.png"},
		},
		{
			name: "bare relative",
			html: `<img src="a.png">`,
			want: []string{"https://example.com/a.png"},
		},
		{
			name: "already absolute",
			html: `<img src="http://other.example.org/b.jpg">`,
			want: []string{"http://other.example.org/b.jpg"},
		},
		{
			name: "missing and empty src skipped",
			html: `<img><img src=""><img src="c.gif">`,
			want: []string{"https://example.com/c.gif"},
		},
		{
			name: "document order preserved without dedup",
			html: `<img src="/a.png"><img src="b.png"><img src="/a.png">`,
			want: []string{
				"https://example.com/a.png",
				"https://example.com/b.png",
				"https://example.com/a.png",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := extractHTML(t, "https://example.com", tt.html)
			if !reflect.DeepEqual(info.Images, tt.want) {
				t.Errorf("Images = %v, want %v", info.Images, tt.want)
			}
		})
	}
}

func TestExtractStylesheetCount(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "counts stylesheet links only",
			html: `<link rel="stylesheet" href="a.css">
			       <link rel="stylesheet" href="b.css">
			       <link rel="icon" href="favicon.ico">`,
			want: 2,
		},
		{
			name: "uppercase rel is not counted",
			html: `<link rel="STYLESHEET" href="a.css">`,
			want: 0,
		},
		{
			name: "no links",
			html: `<p>plain</p>`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := extractHTML(t, "https://example.com", tt.html)
			if info.StylesheetsCount != tt.want {
				t.Errorf("StylesheetsCount = %d, want %d", info.StylesheetsCount, tt.want)
			}
		})
	}
}

func TestExtractToleratesMalformedMarkup(t *testing.T) {
	info := extractHTML(t, "https://example.com",
		`<html><head><title>Broken</title><body><div><img src="/a.png"<p>text`)
	if info.Title == nil || *info.Title != "Broken" {
		t.Errorf("Title = %v, want %q", info.Title, "Broken")
	}
}

func TestExtractFetchFailure(t *testing.T) {
	wantErr := errors.New("connection refused")
	e := New(&fakeFetcher{err: wantErr}, logger.Nop())

	_, err := e.Extract(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("Extract() should fail when the fetch fails")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("Extract() error = %v, want wrapped %v", err, wantErr)
	}
}
