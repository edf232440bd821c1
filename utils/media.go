package utils

import "strings"

const defaultImagePrefix = "data:image/jpeg;base64,"

// NormalizeMedia makes a stored image/video field renderable. Data URLs and
// absolute http(s) URLs pass through; anything else is treated as raw base64
// JPEG data. Empty input stays empty.
func NormalizeMedia(v string) string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return ""
	case strings.HasPrefix(v, "data:"):
		return v
	case strings.HasPrefix(v, "http://"), strings.HasPrefix(v, "https://"):
		return v
	default:
		return defaultImagePrefix + v
	}
}

// NormalizeMediaList applies NormalizeMedia to each entry, dropping empties.
func NormalizeMediaList(vs []string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if n := NormalizeMedia(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// IsDataURL reports whether v is an inline data URL.
func IsDataURL(v string) bool {
	return strings.HasPrefix(v, "data:")
}
