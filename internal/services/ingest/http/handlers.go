package http

import (
	stdhttp "net/http"

	"salus/internal/modkit/httpkit"
	pnet "salus/internal/platform/net"
	"salus/internal/platform/net/http/bind"
	"salus/internal/services/ingest/domain"
	svc "salus/internal/services/ingest/service"
)

// Register mounts ingest endpoints on the given router
func Register(r httpkit.Router, s svc.Service, maxBodyBytes int64) {
	h := &handlers{svc: s, maxBody: maxBodyBytes}
	r.Post("/", httpkit.Handle(h.save))
}

type handlers struct {
	svc     svc.Service
	maxBody int64
}

// save accepts a batch of client events and persists it all or nothing
// clients only ever see a status code, success carries no body
func (h *handlers) save(r *stdhttp.Request) httpkit.Response {
	hdr, err := parseSourceHeaders(r)
	if err != nil {
		return httpkit.Error(err)
	}
	r = r.WithContext(pnet.WithSite(r.Context(), hdr.site))

	body, err := bind.ParseJSON[[]eventBody](r, bind.JSONOptions{
		MaxBytes:        h.maxBody,
		DisallowUnknown: true,
	})
	if err != nil {
		return httpkit.Error(err)
	}
	if len(body) == 0 {
		return httpkit.Error(domain.ErrEmptyBatch)
	}

	events := make([]domain.Event, 0, len(body))
	for _, rec := range body {
		ev, err := rec.toDomain(hdr)
		if err != nil {
			return httpkit.Error(err)
		}
		events = append(events, ev)
	}

	if _, err := h.svc.Save(r.Context(), events); err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Created()
}
