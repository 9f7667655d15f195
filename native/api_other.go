//go:build !windows

package native

import "errors"

// Live returns the platform registry backend. Only Windows has one; other
// platforms can still use regkit against an in-memory implementation.
func Live() (API, error) {
	return nil, errors.New("native: live registry access requires windows")
}
