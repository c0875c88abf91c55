package normalize

import (
	"net/url"
	"sort"
	"strings"
)

// trackingParams are query parameters that vary per click without changing
// the posting identity.
var trackingParams = map[string]bool{
	"gclid":   true,
	"fbclid":  true,
	"msclkid": true,
	"mc_cid":  true,
	"mc_eid":  true,
	"mkt_tok": true,
}

// CanonicalLink normalizes a posting URL into the dedup identity: trimmed,
// lowercased, fragment and tracking parameters stripped, no trailing slash,
// deterministic query order. Links differing only in case or a trailing
// slash canonicalize to the same value.
func CanonicalLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSuffix(raw, "/"))
	}

	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if trackingParams[lk] || strings.HasPrefix(lk, "utm_") {
			q.Del(k)
		}
	}
	for k := range q {
		sort.Strings(q[k])
	}
	u.RawQuery = q.Encode()
	u.Path = strings.TrimSuffix(u.Path, "/")

	return strings.ToLower(u.String())
}
