package preview

import (
	"encoding/json"
	"strings"
)

// ParseCarousel normalizes the carousel_images column into an ordered
// slice of image URLs. Two strategies are tried in fixed order: a JSON
// string array, then a comma-separated list. Blank entries are dropped;
// nothing here is fatal — malformed input degrades to an empty slice.
func ParseCarousel(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if imgs, ok := parseJSONArray(raw); ok {
		return imgs
	}
	return parseCommaList(raw)
}

func parseJSONArray(raw string) ([]string, bool) {
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}

	var out []string
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out, true
}

func parseCommaList(raw string) []string {
	var out []string
	for _, e := range strings.Split(raw, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
