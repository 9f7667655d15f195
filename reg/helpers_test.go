package reg

import (
	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/memreg"
	"github.com/joshuapare/regkit/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// newTestRegistry builds a Registry over an in-memory backend seeded with a
// small tree:
//
//	HKEY_CURRENT_USER
//	└── Software
//	    ├── JavaSoft
//	    │   └── Prefs        (values: Theme, Retries, Flags)
//	    └── Vendor
//	        ├── App
//	        │   ├── Settings
//	        │   └── Cache
//	        └── Tool
func newTestRegistry() (*Registry, *memreg.Registry) {
	m := memreg.New()
	m.Seed(types.CurrentUser, `Software\JavaSoft\Prefs`)
	m.Seed(types.CurrentUser, `Software\Vendor\App\Settings`)
	m.Seed(types.CurrentUser, `Software\Vendor\App\Cache`)
	m.Seed(types.CurrentUser, `Software\Vendor\Tool`)

	prefs := `Software\JavaSoft\Prefs`
	m.SeedValue(types.CurrentUser, prefs, "Theme", types.REG_SZ, mustEncode(types.String("Theme", "dark")))
	m.SeedValue(types.CurrentUser, prefs, "Retries", types.REG_DWORD, mustEncode(types.DWord("Retries", 3)))
	m.SeedValue(types.CurrentUser, prefs, "Flags", types.REG_BINARY, mustEncode(types.Binary("Flags", []byte{1, 2})))

	return New(m), m
}

func mustEncode(v types.Value) []byte {
	data, err := codec.Encode(v)
	if err != nil {
		panic(err)
	}
	return data
}

// pathsOf projects keys to their path strings for order-sensitive asserts.
func pathsOf(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Path()
	}
	return out
}

// deniedRenameAPI fails every rename with access-denied while leaving the
// rest of the backend intact, so the target probe sees the real tree.
type deniedRenameAPI struct {
	*memreg.Registry
}

func (a *deniedRenameAPI) RenameKey(parent native.Handle, subpath, newName string) native.Status {
	return native.StatusAccessDenied
}
