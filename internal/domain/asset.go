package domain

import (
	"regexp"
	"strings"
)

// Asset is the identifier of one tracked cryptocurrency, as used by the
// price API ("bitcoin", "ethereum").
type Asset string

// DefaultAssets is the tracked set when none is configured.
func DefaultAssets() []Asset { return []Asset{"bitcoin", "ethereum"} }

var assetRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

func ValidAsset(a Asset) bool {
	return assetRe.MatchString(string(a))
}

// ParseAssets turns a comma-separated list into a normalized asset set:
// lowercased, trimmed, deduplicated, input order preserved. Invalid entries
// are dropped. An empty or all-invalid list falls back to DefaultAssets.
func ParseAssets(csv string) []Asset {
	seen := make(map[Asset]bool)
	var out []Asset
	for _, part := range strings.Split(csv, ",") {
		a := Asset(strings.ToLower(strings.TrimSpace(part)))
		if a == "" || !ValidAsset(a) || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	if len(out) == 0 {
		return DefaultAssets()
	}
	return out
}
