package coordinator

import "sync"

var (
	mainRegistryMu sync.RWMutex
	mainRegistry   = map[string]Main{}
)

// RegisterMain attaches a coordinator-side Main to the name a scenario
// config's `coordinator` key will reference (§6). Scenario packages call
// this from their own init(), the same way the worker package's
// RegisterType lets them register worker_class names.
func RegisterMain(name string, main Main) {
	mainRegistryMu.Lock()
	defer mainRegistryMu.Unlock()
	mainRegistry[name] = main
}

// LookupMain returns the Main registered for name, if any.
func LookupMain(name string) (Main, bool) {
	mainRegistryMu.RLock()
	defer mainRegistryMu.RUnlock()
	m, ok := mainRegistry[name]
	return m, ok
}
