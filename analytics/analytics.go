// Package analytics records privacy-first page view counts for the pressgen
// serve command. IP addresses are never stored: visitors are identified by a
// salted hash, and the salt is generated per installation.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// Visit is a single recorded page view.
type Visit struct {
	ID        int64
	VisitorID string // salted fingerprint of IP + user agent
	IPHash    string // salted hash of the IP, truncated
	Browser   string
	OS        string
	Device    string // Desktop, Mobile, Tablet
	Path      string
	Referrer  string
	Timestamp time.Time
}

// Summary holds the aggregates shown on the stats dashboard.
type Summary struct {
	TotalVisits    int
	UniqueVisitors int
	TopPages       []PathCount
	Days           []DayCount
}

// PathCount is a path with its visit count.
type PathCount struct {
	Path  string
	Count int
}

// DayCount is a calendar day (YYYY-MM-DD) with its visit count.
type DayCount struct {
	Day   string
	Count int
}

// HashIP returns a salted, truncated SHA-256 hash of an IP address.
func (s *Store) HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(s.salt + ip))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// VisitorID derives an anonymous visitor fingerprint from IP and user agent.
func (s *Store) VisitorID(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(s.salt + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// ParseUserAgent extracts browser, OS, and device class from a user agent.
func ParseUserAgent(ua string) (browser, os, device string) {
	ua = strings.ToLower(ua)

	// Order matters: Edge and Opera UAs also contain "chrome".
	switch {
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr"):
		browser = "Opera"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	default:
		browser = "Other"
	}

	// Android UAs contain "linux", so check Android first.
	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		os = "iOS"
	case strings.Contains(ua, "macintosh") || strings.Contains(ua, "mac os"):
		os = "macOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	default:
		os = "Other"
	}

	// iPad UAs contain "mobile", so check tablet first.
	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		device = "Tablet"
	case strings.Contains(ua, "mobile"):
		device = "Mobile"
	default:
		device = "Desktop"
	}

	return
}

// IsBot reports whether the user agent looks like a crawler. Bot traffic is
// not recorded.
func IsBot(ua string) bool {
	ua = strings.ToLower(ua)
	markers := []string{
		"bot", "crawler", "spider", "crawl", "slurp", "scrape",
		"facebookexternalhit", "yandex", "baidu",
	}
	for _, m := range markers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}

var referrerDomainRegex = regexp.MustCompile(`^https?://(?:www\.)?([^/]+)`)

// CleanReferrer reduces a referrer URL to its domain, or "Direct" when empty.
func CleanReferrer(ref string) string {
	if ref == "" {
		return "Direct"
	}
	if m := referrerDomainRegex.FindStringSubmatch(ref); len(m) > 1 {
		return m[1]
	}
	return "Other"
}
