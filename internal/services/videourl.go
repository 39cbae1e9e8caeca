package services

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	iframeSrcPattern = regexp.MustCompile(`src\s*=\s*["']([^"']+)["']`)
)

// CleanVideoURL canonicalizes the three YouTube shapes teachers paste into
// the lesson form (watch/short URLs, iframe embed markup, bare video IDs)
// to https://www.youtube.com/watch?v=<ID>. Anything else, including direct
// file and object-storage URLs, passes through unchanged. Idempotent: the
// canonical form maps to itself.
func CleanVideoURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}

	if strings.Contains(s, "<iframe") {
		m := iframeSrcPattern.FindStringSubmatch(s)
		if m == nil {
			return raw
		}
		s = m[1]
	}

	if youtubeIDPattern.MatchString(s) {
		return canonicalWatchURL(s)
	}

	if id := youtubeIDFromURL(s); id != "" {
		return canonicalWatchURL(id)
	}
	return raw
}

func canonicalWatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func youtubeIDFromURL(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))

	switch host {
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = id[:i]
		}
		if youtubeIDPattern.MatchString(id) {
			return id
		}
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); youtubeIDPattern.MatchString(id) {
				return id
			}
			return ""
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id := strings.Trim(strings.TrimPrefix(u.Path, prefix), "/")
				if youtubeIDPattern.MatchString(id) {
					return id
				}
			}
		}
	}
	return ""
}

const (
	DifficultyBeginner     = 1
	DifficultyIntermediate = 2
	DifficultyAdvanced     = 3
	DifficultyProfessional = 4
)

// DifficultyValue maps a difficulty label to its numeric level. Accepts the
// English labels, the Vietnamese labels shown in the admin form, and numeric
// strings. Total: anything unrecognized gets the middle level.
func DifficultyValue(label string) int {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "beginner", "cơ bản", "1":
		return DifficultyBeginner
	case "intermediate", "trung bình", "2":
		return DifficultyIntermediate
	case "advanced", "nâng cao", "3":
		return DifficultyAdvanced
	case "professional", "chuyên nghiệp", "4":
		return DifficultyProfessional
	default:
		return DifficultyIntermediate
	}
}

// DifficultyLabel is the inverse display mapping for API responses.
func DifficultyLabel(level int) string {
	switch level {
	case DifficultyBeginner:
		return "Cơ bản"
	case DifficultyAdvanced:
		return "Nâng cao"
	case DifficultyProfessional:
		return "Chuyên nghiệp"
	default:
		return "Trung bình"
	}
}
