package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	"salus/internal/platform/logger"
	pnet "salus/internal/platform/net"
)

// RecoverLogged converts panics into a bare 500 and logs the stack with the
// request id. The response carries no body; submitters are untrusted and the
// stack belongs in the log, not on the wire
func RecoverLogged(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			if v := recover(); v != nil {
				reqID := pnet.RequestID(r.Context())

				// format stack like chi recover
				raw := debug.Stack()
				lines := strings.Split(string(raw), "\n")
				stack := strings.Join(lines, "\n\t")

				log := logger.C(r.Context())
				log.Error().
					Str("request_id", reqID).
					Interface("panic", v).
					Msgf("panic recovered\n%s", stack)

				// mirror id in response header
				if reqID != "" {
					w.Header().Set("X-Request-ID", reqID)
				}
				w.WriteHeader(stdhttp.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
