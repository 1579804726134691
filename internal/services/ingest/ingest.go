// Package ingest provides the HTTP ingestion surface for client analytics events
package ingest

import (
	"salus/internal/platform/config"
	"salus/internal/platform/logger"
	phttp "salus/internal/platform/net/http"
	"salus/internal/platform/store"

	"salus/internal/modkit"
	"salus/internal/modkit/httpkit"
	"salus/internal/modkit/module"
	"salus/internal/modkit/swaggerkit"

	ingestmod "salus/internal/services/ingest/module"
)

// Options are the ingest mount options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the ingest service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := []module.Module{
		ingestmod.New(deps),
	}

	// versioned API with the common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
