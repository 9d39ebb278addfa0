package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// QueryParam is one query parameter. A slice of them keeps caller order,
// which url.Values would sort away.
type QueryParam struct {
	Key   string
	Value string
}

// BuildURL appends params to base in the given order. Any query already on
// base is kept in front. base must be absolute.
func BuildURL(base string, params ...QueryParam) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("base url %q is not absolute", base)
	}

	parts := make([]string, 0, len(params)+1)
	if u.RawQuery != "" {
		parts = append(parts, u.RawQuery)
	}
	for _, p := range params {
		if p.Key == "" {
			return "", fmt.Errorf("empty query parameter name")
		}
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	u.RawQuery = strings.Join(parts, "&")
	u.ForceQuery = false

	return u.String(), nil
}
