// Package domain defines the event model for the ingest service
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApiKey identifies the publishing client
type ApiKey string

// Site is the origin host events are scoped to
type Site string

// EventSource pairs the credentials a batch arrives under
type EventSource struct {
	ApiKey ApiKey
	Site   Site
}

// AttrParent is the well known attribute key carrying a parent event id
const AttrParent = "parent"

// Attr is one ordered key value pair carried by an event
type Attr struct {
	Key   string
	Value string
}

// seam for construction time range checks
var timeNow = time.Now

// NewApiKey trims and validates an api key
func NewApiKey(s string) (ApiKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrApiKey
	}
	return ApiKey(s), nil
}

// NewSite trims and validates a site host
func NewSite(s string) (Site, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrSite
	}
	return Site(s), nil
}

// NewEventSource builds a validated source pair
func NewEventSource(apiKey, site string) (EventSource, error) {
	k, err := NewApiKey(apiKey)
	if err != nil {
		return EventSource{}, err
	}
	st, err := NewSite(site)
	if err != nil {
		return EventSource{}, err
	}
	return EventSource{ApiKey: k, Site: st}, nil
}

// Kind discriminates event variants
// the numeric values are the stable storage codes
type Kind uint8

// Event kinds in storage code order
const (
	KindVisitor Kind = 1
	KindSession Kind = 2
	KindSection Kind = 3
	KindClick   Kind = 4
)

// String returns the wire name of the kind
func (k Kind) String() string {
	switch k {
	case KindVisitor:
		return "Visitor"
	case KindSession:
		return "Session"
	case KindSection:
		return "Section"
	case KindClick:
		return "Click"
	default:
		return "Unknown"
	}
}

// Core carries the fields shared by every event kind
// construction validates the source pair then derives and range checks the timestamp
type Core struct {
	apiKey ApiKey
	site   Site
	id     uuid.UUID
	ts     time.Time
}

// ApiKey returns the validated api key
func (c Core) ApiKey() ApiKey { return c.apiKey }

// Site returns the validated site
func (c Core) Site() Site { return c.site }

// ID returns the event id
func (c Core) ID() uuid.UUID { return c.id }

// Timestamp returns the id derived event time in UTC
func (c Core) Timestamp() time.Time { return c.ts }

// Source returns the (api key, site) pair for authorization checks
func (c Core) Source() EventSource { return EventSource{ApiKey: c.apiKey, Site: c.site} }

func newCore(apiKey, site string, id uuid.UUID) (Core, error) {
	k, err := NewApiKey(apiKey)
	if err != nil {
		return Core{}, err
	}
	st, err := NewSite(site)
	if err != nil {
		return Core{}, err
	}
	ts, err := EventTime(id)
	if err != nil {
		return Core{}, err
	}
	if !WithinIngestRange(ts, timeNow()) {
		return Core{}, ErrTimestampRange
	}
	return Core{apiKey: k, site: st, id: id, ts: ts}, nil
}

// Event is one ingested analytics event
type Event interface {
	Kind() Kind
	Core() Core
	Attrs() []Attr
}

// Visitor marks the first contact of a browser with a site
type Visitor struct {
	core Core
}

// NewVisitor constructs a visitor event
func NewVisitor(apiKey, site string, id uuid.UUID) (Visitor, error) {
	c, err := newCore(apiKey, site, id)
	if err != nil {
		return Visitor{}, err
	}
	return Visitor{core: c}, nil
}

// Kind satisfies Event
func (v Visitor) Kind() Kind { return KindVisitor }

// Core satisfies Event
func (v Visitor) Core() Core { return v.core }

// Attrs satisfies Event
func (v Visitor) Attrs() []Attr { return nil }

// Session opens a browsing session under a visitor
type Session struct {
	core   Core
	parent uuid.UUID
}

// NewSession constructs a session event under the given visitor id
func NewSession(apiKey, site string, id, parent uuid.UUID) (Session, error) {
	if parent == uuid.Nil {
		return Session{}, ErrParent
	}
	c, err := newCore(apiKey, site, id)
	if err != nil {
		return Session{}, err
	}
	return Session{core: c, parent: parent}, nil
}

// Kind satisfies Event
func (s Session) Kind() Kind { return KindSession }

// Core satisfies Event
func (s Session) Core() Core { return s.core }

// Parent returns the owning visitor id
func (s Session) Parent() uuid.UUID { return s.parent }

// Attrs satisfies Event
func (s Session) Attrs() []Attr {
	return []Attr{{Key: AttrParent, Value: s.parent.String()}}
}

// Section records a page or view change within a session
// extra attributes such as location and title ride along untyped
type Section struct {
	core   Core
	parent uuid.UUID
	extra  []Attr
}

// NewSection constructs a section event under the given session id
func NewSection(apiKey, site string, id, parent uuid.UUID, extra []Attr) (Section, error) {
	if parent == uuid.Nil {
		return Section{}, ErrParent
	}
	c, err := newCore(apiKey, site, id)
	if err != nil {
		return Section{}, err
	}
	var xs []Attr
	if len(extra) > 0 {
		xs = make([]Attr, len(extra))
		copy(xs, extra)
	}
	return Section{core: c, parent: parent, extra: xs}, nil
}

// Kind satisfies Event
func (s Section) Kind() Kind { return KindSection }

// Core satisfies Event
func (s Section) Core() Core { return s.core }

// Parent returns the owning session id
func (s Section) Parent() uuid.UUID { return s.parent }

// Attrs returns the parent pair first, then the extras in given order
func (s Section) Attrs() []Attr {
	out := make([]Attr, 0, len(s.extra)+1)
	out = append(out, Attr{Key: AttrParent, Value: s.parent.String()})
	out = append(out, s.extra...)
	return out
}

// Click records an interaction within a section
type Click struct {
	core   Core
	parent uuid.UUID
}

// NewClick constructs a click event under the given section id
func NewClick(apiKey, site string, id, parent uuid.UUID) (Click, error) {
	if parent == uuid.Nil {
		return Click{}, ErrParent
	}
	c, err := newCore(apiKey, site, id)
	if err != nil {
		return Click{}, err
	}
	return Click{core: c, parent: parent}, nil
}

// Kind satisfies Event
func (c Click) Kind() Kind { return KindClick }

// Core satisfies Event
func (c Click) Core() Core { return c.core }

// Parent returns the owning section id
func (c Click) Parent() uuid.UUID { return c.parent }

// Attrs satisfies Event
func (c Click) Attrs() []Attr {
	return []Attr{{Key: AttrParent, Value: c.parent.String()}}
}
