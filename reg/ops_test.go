package reg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
)

func Test_GetValue(t *testing.T) {
	r, _ := newTestRegistry()
	prefs := LocalRoot(types.CurrentUser).Resolve(`Software\JavaSoft\Prefs`)

	v, err := r.GetValue(prefs, "Theme")
	require.NoError(t, err)
	assert.True(t, types.String("Theme", "dark").Equal(v))

	v, err = r.GetValue(prefs, "Retries")
	require.NoError(t, err)
	assert.Equal(t, uint32(3), v.Dword)

	t.Run("value name matches case-insensitively", func(t *testing.T) {
		v, err := r.GetValue(prefs, "theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", v.Str)
	})

	t.Run("missing value is NotFound with the key path", func(t *testing.T) {
		_, err := r.GetValue(prefs, "Nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrNotFound))
		assert.Contains(t, err.Error(), `HKEY_CURRENT_USER\Software\JavaSoft\Prefs`)
	})

	t.Run("missing key is NotFound with the key path", func(t *testing.T) {
		gone := LocalRoot(types.CurrentUser).Resolve(`Software\NoSuch`)
		_, err := r.GetValue(gone, "Theme")
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrNotFound))
		assert.Contains(t, err.Error(), `HKEY_CURRENT_USER\Software\NoSuch`)
	})
}

func Test_FindValue(t *testing.T) {
	r, _ := newTestRegistry()
	prefs := LocalRoot(types.CurrentUser).Resolve(`Software\JavaSoft\Prefs`)

	v, err := r.FindValue(prefs, "Theme")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "dark", v.Str)

	t.Run("missing value is nil, not an error", func(t *testing.T) {
		v, err := r.FindValue(prefs, "Nope")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("missing key is nil, not an error", func(t *testing.T) {
		v, err := r.FindValue(LocalRoot(types.CurrentUser).Resolve("NoSuch"), "Theme")
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func Test_SetValue_RoundTripsThroughBackend(t *testing.T) {
	r, _ := newTestRegistry()
	app := LocalRoot(types.CurrentUser).Resolve(`Software\Vendor\App`)

	vals := []types.Value{
		types.String("Greeting", "héllo"),
		types.MultiString("Servers", []string{"alpha", "beta"}),
		types.DWord("Port", 8443),
		types.QWord("Quota", 1 << 40),
		types.Binary("Blob", []byte{0, 255, 4}),
		types.None("Opaque", []byte{7}),
		types.String("", "default value"),
	}
	for _, want := range vals {
		require.NoError(t, r.SetValue(app, want))
		got, err := r.GetValue(app, want.Name)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "%#v round trip, got %#v", want, got)
	}

	t.Run("overwrite replaces type and payload", func(t *testing.T) {
		require.NoError(t, r.SetValue(app, types.DWord("Greeting", 1)))
		got, err := r.GetValue(app, "Greeting")
		require.NoError(t, err)
		assert.Equal(t, types.REG_DWORD, got.Type)
	})
}

func Test_DeleteValue(t *testing.T) {
	r, _ := newTestRegistry()
	prefs := LocalRoot(types.CurrentUser).Resolve(`Software\JavaSoft\Prefs`)

	require.NoError(t, r.DeleteValue(prefs, "Theme"))
	_, err := r.GetValue(prefs, "Theme")
	assert.True(t, errors.Is(err, types.ErrNotFound))

	t.Run("deleting a missing value is NotFound", func(t *testing.T) {
		err := r.DeleteValue(prefs, "Theme")
		assert.True(t, errors.Is(err, types.ErrNotFound))
	})
}

func Test_Exists(t *testing.T) {
	r, _ := newTestRegistry()

	ok, err := r.Exists(LocalRoot(types.CurrentUser).Resolve(`Software\Vendor`))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Exists(LocalRoot(types.CurrentUser).Resolve(`Software\NoSuch`))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, r.IsAccessible(LocalRoot(types.CurrentUser)))
	assert.False(t, r.IsAccessible(LocalRoot(types.CurrentUser).Resolve("NoSuch")))
}

func Test_Create(t *testing.T) {
	r, _ := newTestRegistry()
	fresh := LocalRoot(types.CurrentUser).Resolve(`Software\Vendor\New`)

	require.NoError(t, r.Create(fresh))
	ok, err := r.Exists(fresh)
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("creating an existing key is AlreadyExists", func(t *testing.T) {
		err := r.Create(fresh)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrAlreadyExists))
		assert.Contains(t, err.Error(), fresh.Path())
	})

	t.Run("CreateIfNotExists tolerates pre-existence", func(t *testing.T) {
		assert.NoError(t, r.CreateIfNotExists(fresh))
	})

	t.Run("intermediate keys are created", func(t *testing.T) {
		deep := LocalRoot(types.CurrentUser).Resolve(`Software\A\B\C`)
		require.NoError(t, r.Create(deep))
		ok, err := r.Exists(LocalRoot(types.CurrentUser).Resolve(`Software\A\B`))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("creating a root is AlreadyExists", func(t *testing.T) {
		err := r.Create(LocalRoot(types.CurrentUser))
		assert.True(t, errors.Is(err, types.ErrAlreadyExists))
	})
}

func Test_Delete(t *testing.T) {
	r, _ := newTestRegistry()

	leaf := LocalRoot(types.CurrentUser).Resolve(`Software\Vendor\Tool`)
	require.NoError(t, r.Delete(leaf))
	ok, err := r.Exists(leaf)
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("deleting a missing key is NotFound", func(t *testing.T) {
		err := r.Delete(leaf)
		assert.True(t, errors.Is(err, types.ErrNotFound))
	})

	t.Run("DeleteIfExists tolerates absence", func(t *testing.T) {
		assert.NoError(t, r.DeleteIfExists(leaf))
	})

	t.Run("key with subkeys is a distinct NotEmpty error", func(t *testing.T) {
		err := r.Delete(LocalRoot(types.CurrentUser).Resolve(`Software\Vendor\App`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrNotEmpty))
		assert.False(t, errors.Is(err, types.ErrNotFound))
	})

	t.Run("deleting a root is InvalidArgument", func(t *testing.T) {
		err := r.Delete(LocalRoot(types.CurrentUser))
		assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	})
}

func Test_Rename(t *testing.T) {
	r, _ := newTestRegistry()
	tool := LocalRoot(types.CurrentUser).Resolve(`Software\Vendor\Tool`)

	renamed, err := r.Rename(tool, "Utility")
	require.NoError(t, err)
	assert.Equal(t, `HKEY_CURRENT_USER\Software\Vendor\Utility`, renamed.Path())

	ok, err := r.Exists(renamed)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Exists(tool)
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("separator in target is InvalidArgument before any call", func(t *testing.T) {
		_, err := r.Rename(renamed, `nested\name`)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	})

	t.Run("empty target is InvalidArgument", func(t *testing.T) {
		_, err := r.Rename(renamed, "")
		assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	})

	t.Run("renaming a root is InvalidArgument", func(t *testing.T) {
		_, err := r.Rename(LocalRoot(types.CurrentUser), "X")
		assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	})
}

func Test_Rename_Disambiguation(t *testing.T) {
	// The native rename reports access-denied both for a target collision
	// and for a genuine permission failure; a probe-open of the target
	// decides how it is surfaced.
	t.Run("probe hit becomes AlreadyExists with the target path", func(t *testing.T) {
		r, _ := newTestRegistry()
		app := LocalRoot(types.CurrentUser).Resolve(`Software\Vendor\App`)

		_, err := r.Rename(app, "Tool") // Vendor\Tool exists
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrAlreadyExists))
		assert.Contains(t, err.Error(), `HKEY_CURRENT_USER\Software\Vendor\Tool`)
		assert.NotContains(t, err.Error(), `Vendor\App`)
	})

	t.Run("probe miss re-reports AccessDenied with the source path", func(t *testing.T) {
		_, m := newTestRegistry()
		r := New(&deniedRenameAPI{Registry: m})

		tool := LocalRoot(types.CurrentUser).Resolve(`Software\Vendor\Tool`)
		_, err := r.Rename(tool, "Fresh") // no collision, rename still denied
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrAccessDenied))
		assert.Contains(t, err.Error(), `HKEY_CURRENT_USER\Software\Vendor\Tool`)
		assert.NotContains(t, err.Error(), "Fresh")
	})
}
