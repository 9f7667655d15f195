package reg

import (
	"errors"

	"github.com/joshuapare/regkit/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// translate maps a native status to the error taxonomy, stamping the
// offending key's full path. Unmapped codes become a generic native failure
// carrying the raw code; they are never silently ignored. InvalidArgument
// errors never pass through here: they are raised before any native call.
func translate(st native.Status, k Key) error {
	switch st {
	case native.StatusOK:
		return nil
	case native.StatusFileNotFound:
		return types.NotFoundError(k.Path(), k.host)
	case native.StatusAccessDenied:
		return types.AccessDeniedError(k.Path(), k.host)
	case native.StatusInvalidHandle, native.StatusInvalidParameter:
		return types.InvalidHandleError(k.Path(), k.host)
	case native.StatusDirNotEmpty:
		return types.NotEmptyError(k.Path(), k.host)
	case native.StatusAlreadyExists:
		return types.AlreadyExistsError(k.Path(), k.host)
	default:
		return types.NativeError(uint32(st), k.Path(), k.host)
	}
}

// attachSuppressed folds a secondary failure into the primary outcome: if a
// primary error is already propagating, the secondary is recorded on its
// Suppressed list; otherwise the secondary becomes the primary.
func attachSuppressed(primary, secondary error) error {
	if secondary == nil {
		return primary
	}
	if primary == nil {
		return secondary
	}
	var te *types.Error
	if errors.As(primary, &te) {
		te.AddSuppressed(secondary)
	}
	return primary
}
