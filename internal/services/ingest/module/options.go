package module

import "salus/internal/platform/config"

// Options holds ingest module tunables
type Options struct {
	// MaxBodyBytes caps the accepted batch payload size
	MaxBodyBytes int64
}

// FromConfig reads module options under the EVENTS_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("EVENTS_")
	return Options{
		MaxBodyBytes: int64(c.MayInt("MAX_BODY_BYTES", 1<<20)),
	}
}
