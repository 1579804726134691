package http

import (
	"sort"

	"github.com/google/uuid"

	perr "salus/internal/platform/errors"
	"salus/internal/services/ingest/domain"
)

// eventBody is one wire record in the batch payload
type eventBody struct {
	EventType string            `json:"event_type" validate:"required,oneof=Visitor Session Section Click"`
	ID        string            `json:"id" validate:"required,uuid"`
	Attrs     map[string]string `json:"attrs"`
}

// toDomain translates a wire record into a typed event under the request source
func (b eventBody) toDomain(h sourceHeaders) (domain.Event, error) {
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return nil, perr.WithField(domain.ErrRequestBody, "id")
	}

	switch b.EventType {
	case "Visitor":
		ev, err := domain.NewVisitor(h.apiKey, h.site, id)
		if err != nil {
			return nil, err
		}
		return ev, nil
	case "Session":
		parent, err := parentOf(b.Attrs)
		if err != nil {
			return nil, err
		}
		ev, err := domain.NewSession(h.apiKey, h.site, id, parent)
		if err != nil {
			return nil, err
		}
		return ev, nil
	case "Section":
		parent, err := parentOf(b.Attrs)
		if err != nil {
			return nil, err
		}
		ev, err := domain.NewSection(h.apiKey, h.site, id, parent, extraAttrs(b.Attrs))
		if err != nil {
			return nil, err
		}
		return ev, nil
	case "Click":
		parent, err := parentOf(b.Attrs)
		if err != nil {
			return nil, err
		}
		ev, err := domain.NewClick(h.apiKey, h.site, id, parent)
		if err != nil {
			return nil, err
		}
		return ev, nil
	default:
		return nil, perr.WithField(domain.ErrRequestBody, "event_type")
	}
}

// parentOf pulls the required parent id out of the record attrs
func parentOf(attrs map[string]string) (uuid.UUID, error) {
	raw, ok := attrs[domain.AttrParent]
	if !ok {
		return uuid.Nil, perr.WithField(domain.ErrRequestBody, domain.AttrParent)
	}
	p, err := uuid.Parse(raw)
	if err != nil || p == uuid.Nil {
		return uuid.Nil, perr.WithField(domain.ErrRequestBody, domain.AttrParent)
	}
	return p, nil
}

// extraAttrs returns every non parent attr in stable key order
func extraAttrs(attrs map[string]string) []domain.Attr {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k != domain.AttrParent {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]domain.Attr, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.Attr{Key: k, Value: attrs[k]})
	}
	return out
}
