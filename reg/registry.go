package reg

import (
	"github.com/joshuapare/regkit/native"
)

// Registry drives a native registry backend. All operations are methods on
// Registry taking a Key; the Registry itself holds no per-key state, so one
// instance serves any number of keys. Operations re-derive everything from
// the native subsystem on each call.
type Registry struct {
	api native.API
}

// New wraps a native backend. Pass memreg.New() for an in-memory registry.
func New(api native.API) *Registry {
	return &Registry{api: api}
}

// Live returns a Registry over the platform's registry. It fails on
// platforms without one.
func Live() (*Registry, error) {
	api, err := native.Live()
	if err != nil {
		return nil, err
	}
	return New(api), nil
}
