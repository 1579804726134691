package module

import "sync"

// process global registry for cross wiring ports during bootstrap
// single process composition only
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores a port set under a module name
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches the port set for name and asserts it to T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset clears the registry, tests only
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
