// Package module wires the ingest service into the HTTP server using modkit
package module

import (
	"context"
	"net/http"

	modkit "salus/internal/modkit"
	"salus/internal/modkit/httpkit"
	"salus/internal/modkit/repokit"
	"salus/internal/platform/logger"
	str "salus/internal/platform/strings"
	"salus/internal/services/ingest/domain"
	ingesthttp "salus/internal/services/ingest/http"
	ingestrepo "salus/internal/services/ingest/repo"
	ingestsvc "salus/internal/services/ingest/service"
)

// Ports exposed by the ingest module
type Ports struct {
	Recorder domain.RecorderPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc ingestsvc.Service
}

// New constructs the ingest module
// the source registry is loaded once here and a failure aborts startup
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ingest"), modkit.WithPrefix("/events")}, opts...)...)
	o := FromConfig(deps.Cfg)
	log := logger.Named("ingest")

	registry := repokit.MustBind(ingestrepo.NewSources(), deps.PG)
	set, err := registry.LoadSources(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("event source registry load failed")
	}
	log.Info().Int("sources", set.Len()).Msg("event source registry loaded")

	rec := ingestrepo.NewEvents(deps.CH, set)
	svc := ingestsvc.New(rec)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Recorder: rec}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ingesthttp.Register(r, m.svc, o.MaxBodyBytes)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
