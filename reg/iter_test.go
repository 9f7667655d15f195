package reg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/native"
	"github.com/joshuapare/regkit/pkg/types"
)

func Test_Children(t *testing.T) {
	r, m := newTestRegistry()
	software := LocalRoot(types.CurrentUser).Resolve("Software")

	it, err := r.Children(software)
	require.NoError(t, err)

	var got []string
	for it.Next() {
		got = append(got, it.Key().Path())
	}
	require.NoError(t, it.Err())
	require.NoError(t, it.Close())

	assert.Equal(t, []string{
		`HKEY_CURRENT_USER\Software\JavaSoft`,
		`HKEY_CURRENT_USER\Software\Vendor`,
	}, got)
	assert.Equal(t, m.Opens, m.Closes, "cursor released its handle")
}

func Test_Children_Empty(t *testing.T) {
	r, _ := newTestRegistry()
	prefs := LocalRoot(types.CurrentUser).Resolve(`Software\JavaSoft\Prefs`)

	it, err := r.Children(prefs)
	require.NoError(t, err)
	assert.False(t, it.Next())
	require.NoError(t, it.Err())
	require.NoError(t, it.Close())
}

func Test_Children_Missing(t *testing.T) {
	r, m := newTestRegistry()
	ghost := LocalRoot(types.CurrentUser).Resolve(`Software\Nothing`)

	_, err := r.Children(ghost)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotFound))
	assert.Equal(t, m.Opens, m.Closes, "no handle leaked on failed start")
}

func Test_Children_MidStreamFailure(t *testing.T) {
	r, m := newTestRegistry()
	software := LocalRoot(types.CurrentUser).Resolve("Software")

	m.EnumKeyFailAt = 1
	m.EnumKeyFailWith = native.StatusAccessDenied

	it, err := r.Children(software)
	require.NoError(t, err)

	require.True(t, it.Next()) // index 0 still succeeds
	assert.False(t, it.Next())
	require.Error(t, it.Err())
	assert.True(t, errors.Is(it.Err(), types.ErrAccessDenied))
	require.NoError(t, it.Close())
	assert.Equal(t, m.Opens, m.Closes, "handle closed after failure")
}

func Test_Values(t *testing.T) {
	r, _ := newTestRegistry()
	prefs := LocalRoot(types.CurrentUser).Resolve(`Software\JavaSoft\Prefs`)

	it, err := r.Values(prefs, nil)
	require.NoError(t, err)

	var names []string
	for it.Next() {
		names = append(names, it.Value().Name)
	}
	require.NoError(t, it.Err())
	require.NoError(t, it.Close())

	assert.Equal(t, []string{"Theme", "Retries", "Flags"}, names)
}

func Test_Values_Filter(t *testing.T) {
	r, _ := newTestRegistry()
	prefs := LocalRoot(types.CurrentUser).Resolve(`Software\JavaSoft\Prefs`)

	t.Run("by type", func(t *testing.T) {
		vals, err := r.ValueList(prefs, &types.Filter{Types: []types.RegType{types.REG_DWORD}})
		require.NoError(t, err)
		require.Len(t, vals, 1)
		assert.Equal(t, "Retries", vals[0].Name)
		assert.Equal(t, uint32(3), vals[0].Dword)
	})

	t.Run("by name", func(t *testing.T) {
		vals, err := r.ValueList(prefs, &types.Filter{
			Name: func(n string) bool { return strings.HasPrefix(n, "T") },
		})
		require.NoError(t, err)
		require.Len(t, vals, 1)
		assert.Equal(t, "Theme", vals[0].Name)
	})

	t.Run("nothing matches", func(t *testing.T) {
		vals, err := r.ValueList(prefs, &types.Filter{Types: []types.RegType{types.REG_QWORD}})
		require.NoError(t, err)
		assert.Empty(t, vals)
	})
}

func Test_Values_MidStreamFailure(t *testing.T) {
	r, m := newTestRegistry()
	prefs := LocalRoot(types.CurrentUser).Resolve(`Software\JavaSoft\Prefs`)

	m.EnumValueFailAt = 2
	m.EnumValueFailWith = native.StatusAccessDenied

	it, err := r.Values(prefs, nil)
	require.NoError(t, err)

	var n int
	for it.Next() {
		n++
	}
	assert.Equal(t, 2, n)
	assert.True(t, errors.Is(it.Err(), types.ErrAccessDenied))
	require.NoError(t, it.Close())
	assert.Equal(t, m.Opens, m.Closes)
}

func Test_Subkeys(t *testing.T) {
	r, _ := newTestRegistry()
	app := LocalRoot(types.CurrentUser).Resolve(`Software\Vendor\App`)

	keys, err := r.Subkeys(app)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`HKEY_CURRENT_USER\Software\Vendor\App\Settings`,
		`HKEY_CURRENT_USER\Software\Vendor\App\Cache`,
	}, pathsOf(keys))
}
