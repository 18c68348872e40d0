// Package analytics counts page views so the site can list its most popular content.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// salt holds the per-installation random salt for visitor hashing, protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for visitor hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

// PageStat is the number of counted views of one path.
type PageStat struct {
	Path  string
	Views int
}

// PagerPath matches the numbered pages of the article listing, which are
// navigation rather than content and never count as popular.
var PagerPath = regexp.MustCompile(`^/articles/\d+/?$`)

// VisitorID creates a salted, anonymous visitor key from IP and User-Agent.
// The raw IP is never stored.
func VisitorID(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(salt.value + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

var botMarkers = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"googlebot", "bingbot", "yandex", "baidu", "duckduckbot",
	"facebookexternalhit", "twitterbot", "linkedinbot",
	"ahrefsbot", "semrushbot", "mj12bot", "dotbot",
	"headlesschrome", "lighthouse", "curl/", "wget/",
}

// IsBot checks if the User-Agent is likely a bot/crawler. An empty
// User-Agent is treated as a bot.
func IsBot(ua string) bool {
	ua = strings.ToLower(strings.TrimSpace(ua))
	if ua == "" {
		return true
	}
	for _, bot := range botMarkers {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}

// NormalizePath strips the query string and fragment and ensures a trailing
// slash, so "/articles/go?x=1" and "/articles/go/" count as the same page.
func NormalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if !strings.HasSuffix(p, "/") && !strings.Contains(p[strings.LastIndex(p, "/")+1:], ".") {
		p += "/"
	}
	return p
}
