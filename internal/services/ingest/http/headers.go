// Package http provides http transport for event ingestion
package http

import (
	stdhttp "net/http"
	"net/url"
	"strings"

	perr "salus/internal/platform/errors"
	"salus/internal/services/ingest/domain"
)

// HeaderAPIKey names the header browser beacons send their key under
const HeaderAPIKey = "api-key"

// sourceHeaders are the request scoped inputs every batch record shares
type sourceHeaders struct {
	apiKey    string
	site      string
	userAgent string
}

// parseSourceHeaders extracts and validates the source triple
// the site is the host of the Origin header, ports stripped
func parseSourceHeaders(r *stdhttp.Request) (sourceHeaders, error) {
	key := strings.TrimSpace(r.Header.Get(HeaderAPIKey))
	if key == "" {
		return sourceHeaders{}, domain.ErrApiKey
	}

	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return sourceHeaders{}, perr.WithField(domain.ErrRequestHeaders, "origin")
	}
	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return sourceHeaders{}, perr.WithField(domain.ErrRequestHeaders, "origin")
	}

	ua := strings.TrimSpace(r.Header.Get("User-Agent"))
	if ua == "" {
		return sourceHeaders{}, perr.WithField(domain.ErrRequestHeaders, "user-agent")
	}

	return sourceHeaders{apiKey: key, site: u.Hostname(), userAgent: ua}, nil
}
