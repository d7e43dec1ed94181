// Package analytics records server-side post views in SQLite and turns them
// into the ranking signals used by the blog's popular and trending orders.
// Only per-post daily counters are kept; no visitor data is stored.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// DefaultTrendingWindow is the trailing window counted for trending posts.
const DefaultTrendingWindow = 7 * 24 * time.Hour

const dayLayout = "2006-01-02"

// PostViews is a post's view total over some period.
type PostViews struct {
	Slug  string `json:"slug"`
	Views int    `json:"views"`
}

// DailyView is the site-wide post view count for one day.
type DailyView struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

var botMarkers = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"googlebot", "bingbot", "yandex", "baidu", "duckduckbot",
	"facebookexternalhit", "twitterbot", "linkedinbot",
	"ahrefsbot", "semrushbot", "mj12bot", "dotbot",
	"curl/", "wget/", "python-requests", "go-http-client", "headless",
}

// IsBot reports whether the User-Agent is likely a bot or crawler. An empty
// User-Agent counts as a bot.
func IsBot(ua string) bool {
	ua = strings.ToLower(strings.TrimSpace(ua))
	if ua == "" {
		return true
	}
	for _, m := range botMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}

// visitorKey hashes the visitor and slug with the installation salt so the
// dedupe limiter never holds raw addresses.
func visitorKey(salt, ip, ua, slug string) string {
	h := sha256.New()
	h.Write([]byte(salt + ip + "|" + ua + "|" + slug))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func dayOf(t time.Time) string {
	return t.UTC().Format(dayLayout)
}
