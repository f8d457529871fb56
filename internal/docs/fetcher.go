package docs

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// FetchCap bounds how much text a single fetch may hand back to callers.
const FetchCap = 5000

const userAgent = "GarapaAgent Assistant"

// urlPattern matches absolute http(s) URL tokens. The token ends at
// whitespace or at any of the delimiter characters in the class.
var urlPattern = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")

// knownDocHosts is the fixed allow-list of documentation host/path prefixes
// considered safe to auto-fetch. A URL qualifies when it contains one of
// these as a substring.
var knownDocHosts = []string{
	"docs.supabase.com",
	"supabase.com/docs",
	"docs.stripe.com",
	"stripe.com/docs",
	"firebase.google.com/docs",
	"docs.mongodb.com",
	"docs.aws.amazon.com",
	"docs.microsoft.com",
	"developer.mozilla.org",
	"docs.github.com",
	"docs.gitlab.com",
	"docs.docker.com",
	"kubernetes.io/docs",
	"docs.npmjs.com",
	"reactjs.org/docs",
	"nextjs.org/docs",
	"docs.nestjs.com",
	"docs.prisma.io",
	"typeorm.io/docs",
	"docs.fastify.io",
	"expressjs.com/docs",
	"tailwindcss.com/docs",
}

// ExtractCandidateURLs scans free text for absolute http(s) URLs, in order
// of appearance.
func ExtractCandidateURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// Fetcher retrieves documentation pages over HTTP and reduces them to text.
type Fetcher struct {
	client *http.Client
	allow  []string
}

// NewFetcher creates a Fetcher. Extra allow-list entries (e.g. from the
// workspace config) extend the built-in documentation hosts.
func NewFetcher(extraAllowed ...string) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		},
		allow: append(append([]string{}, knownDocHosts...), extraAllowed...),
	}
}

// FilterKnownDocs keeps only URLs on the allow-list. Order is preserved and
// duplicates are kept; the output is a subsequence of the input.
func (f *Fetcher) FilterKnownDocs(urls []string) []string {
	var filtered []string
	for _, url := range urls {
		for _, host := range f.allow {
			if strings.Contains(url, host) {
				filtered = append(filtered, url)
				break
			}
		}
	}
	return filtered
}

// Fetch performs a GET against the URL and returns the page reduced to plain
// text, capped at FetchCap characters. Any transport failure or non-2xx
// status yields ok=false; fetch failures are expected and non-fatal.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		log.Printf("⚠️ Documentation fetch failed for %s: %v", url, err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("⚠️ Documentation fetch for %s returned %d", url, resp.StatusCode)
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}

	return TruncateBytes(HTMLToText(string(body)), FetchCap), true
}

// TruncateBytes caps s at limit bytes without splitting a UTF-8 rune: the
// cut point backs off to the nearest rune start.
func TruncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
