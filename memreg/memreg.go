package memreg

import (
	"bytes"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/joshuapare/regkit/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// node is one key in the in-memory hierarchy. Subkeys and values keep
// insertion order so index-based enumeration is stable.
type node struct {
	name    string
	subkeys []*node
	values  []valEntry
}

type valEntry struct {
	name string
	typ  types.RegType
	data []byte
}

type openKey struct {
	n      *node
	closed bool
}

type txState struct {
	outcome native.TxOutcome
	roots   map[types.Root]*node
	timeout time.Duration
	desc    string
}

// Registry is an in-memory native.API. The zero value is not usable; call New.
type Registry struct {
	roots   map[types.Root]*node
	handles map[native.Handle]*openKey
	txs     map[native.Tx]*txState
	nextID  uintptr

	// Counters for open/close pairing assertions. Opens counts successful
	// Open/Create/remote-ConnectRoot calls; Closes counts every Close call
	// received, including failed ones.
	Opens  int
	Closes int

	// Fault injection. A zero Status means no failure.
	FailNextClose     native.Status // consumed by the next Close call
	EnumKeyFailAt     int           // index at which EnumKey starts failing, -1 disabled
	EnumKeyFailWith   native.Status
	EnumValueFailAt   int // index at which EnumValue starts failing, -1 disabled
	EnumValueFailWith native.Status
}

// New returns an empty in-memory registry with all well-known roots present.
func New() *Registry {
	r := &Registry{
		roots:           make(map[types.Root]*node),
		handles:         make(map[native.Handle]*openKey),
		txs:             make(map[native.Tx]*txState),
		EnumKeyFailAt:   -1,
		EnumValueFailAt: -1,
	}
	for _, root := range []types.Root{
		types.ClassesRoot, types.CurrentUser, types.LocalMachine,
		types.Users, types.CurrentConfig,
	} {
		r.roots[root] = &node{name: root.String()}
	}
	return r
}

// -----------------------------------------------------------------------------
// Seeding helpers (test setup)
// -----------------------------------------------------------------------------

// Seed ensures the separator-joined path exists under root and returns regkit
// to the caller for chaining-free setup in tests.
func (r *Registry) Seed(root types.Root, path string) *Registry {
	n := r.roots[root]
	for _, seg := range splitPath(path) {
		child := findChild(n, seg)
		if child == nil {
			child = &node{name: seg}
			n.subkeys = append(n.subkeys, child)
		}
		n = child
	}
	return r
}

// SeedValue ensures path exists and sets a raw value on it.
func (r *Registry) SeedValue(root types.Root, path, name string, t types.RegType, data []byte) *Registry {
	r.Seed(root, path)
	n := r.lookup(r.roots, root, path)
	setValue(n, name, t, data)
	return r
}

// -----------------------------------------------------------------------------
// native.API implementation
// -----------------------------------------------------------------------------

func (r *Registry) ConnectRoot(host string, root types.Root) (native.Handle, native.Status) {
	if _, ok := r.roots[root]; !ok {
		return native.InvalidHandle, native.StatusInvalidParameter
	}
	if host == "" {
		return native.RootHandle(root), native.StatusOK
	}
	// Remote hosts share the same forest here; what matters to callers is
	// that the returned handle is real and must be closed.
	return r.newHandle(r.roots[root]), native.StatusOK
}

func (r *Registry) Open(parent native.Handle, subpath string, access types.Access, tx native.Tx) (native.Handle, native.Status) {
	base, st := r.resolve(parent, tx)
	if !st.OK() {
		return native.InvalidHandle, st
	}
	n := base
	for _, seg := range splitPath(subpath) {
		n = findChild(n, seg)
		if n == nil {
			return native.InvalidHandle, native.StatusFileNotFound
		}
	}
	return r.newHandle(n), native.StatusOK
}

func (r *Registry) Create(parent native.Handle, subpath string, access types.Access, tx native.Tx) (native.Handle, native.Disposition, native.Status) {
	base, st := r.resolve(parent, tx)
	if !st.OK() {
		return native.InvalidHandle, 0, st
	}
	n := base
	disp := native.OpenedExistingKey
	for _, seg := range splitPath(subpath) {
		child := findChild(n, seg)
		if child == nil {
			child = &node{name: seg}
			n.subkeys = append(n.subkeys, child)
			disp = native.CreatedNewKey
		}
		n = child
	}
	return r.newHandle(n), disp, native.StatusOK
}

func (r *Registry) Close(h native.Handle) native.Status {
	r.Closes++
	if st := r.FailNextClose; !st.OK() {
		r.FailNextClose = native.StatusOK
		return st
	}
	if isPseudo(h) {
		return native.StatusOK
	}
	ok, exists := r.handles[h]
	if !exists || ok.closed {
		return native.StatusInvalidHandle
	}
	ok.closed = true
	return native.StatusOK
}

func (r *Registry) QueryInfo(h native.Handle) (native.KeyInfo, native.Status) {
	n, st := r.resolve(h, native.NoTx)
	if !st.OK() {
		return native.KeyInfo{}, st
	}
	var info native.KeyInfo
	info.SubkeyCount = uint32(len(n.subkeys))
	info.ValueCount = uint32(len(n.values))
	for _, c := range n.subkeys {
		if l := utf16Len(c.name); l > info.MaxSubkeyName {
			info.MaxSubkeyName = l
		}
	}
	for _, v := range n.values {
		if l := utf16Len(v.name); l > info.MaxValueName {
			info.MaxValueName = l
		}
		if l := uint32(len(v.data)); l > info.MaxValueData {
			info.MaxValueData = l
		}
	}
	return info, native.StatusOK
}

func (r *Registry) EnumKey(h native.Handle, index uint32) (string, native.Status) {
	if r.EnumKeyFailAt >= 0 && int(index) >= r.EnumKeyFailAt {
		return "", r.EnumKeyFailWith
	}
	n, st := r.resolve(h, native.NoTx)
	if !st.OK() {
		return "", st
	}
	if int(index) >= len(n.subkeys) {
		return "", native.StatusNoMoreItems
	}
	return n.subkeys[index].name, native.StatusOK
}

func (r *Registry) EnumValue(h native.Handle, index uint32) (string, types.RegType, []byte, native.Status) {
	if r.EnumValueFailAt >= 0 && int(index) >= r.EnumValueFailAt {
		return "", 0, nil, r.EnumValueFailWith
	}
	n, st := r.resolve(h, native.NoTx)
	if !st.OK() {
		return "", 0, nil, st
	}
	if int(index) >= len(n.values) {
		return "", 0, nil, native.StatusNoMoreItems
	}
	v := n.values[index]
	return v.name, v.typ, bytes.Clone(v.data), native.StatusOK
}

func (r *Registry) QueryValue(h native.Handle, name string) (types.RegType, []byte, native.Status) {
	n, st := r.resolve(h, native.NoTx)
	if !st.OK() {
		return 0, nil, st
	}
	for _, v := range n.values {
		if strings.EqualFold(v.name, name) {
			return v.typ, bytes.Clone(v.data), native.StatusOK
		}
	}
	return 0, nil, native.StatusFileNotFound
}

func (r *Registry) SetValue(h native.Handle, name string, t types.RegType, data []byte) native.Status {
	n, st := r.resolve(h, native.NoTx)
	if !st.OK() {
		return st
	}
	setValue(n, name, t, data)
	return native.StatusOK
}

func (r *Registry) DeleteValue(h native.Handle, name string) native.Status {
	n, st := r.resolve(h, native.NoTx)
	if !st.OK() {
		return st
	}
	for i, v := range n.values {
		if strings.EqualFold(v.name, name) {
			n.values = append(n.values[:i], n.values[i+1:]...)
			return native.StatusOK
		}
	}
	return native.StatusFileNotFound
}

func (r *Registry) DeleteKey(parent native.Handle, subpath string) native.Status {
	base, st := r.resolve(parent, native.NoTx)
	if !st.OK() {
		return st
	}
	segs := splitPath(subpath)
	if len(segs) == 0 {
		return native.StatusAccessDenied
	}
	n := base
	for _, seg := range segs[:len(segs)-1] {
		n = findChild(n, seg)
		if n == nil {
			return native.StatusFileNotFound
		}
	}
	last := segs[len(segs)-1]
	for i, c := range n.subkeys {
		if strings.EqualFold(c.name, last) {
			if len(c.subkeys) > 0 {
				return native.StatusDirNotEmpty
			}
			n.subkeys = append(n.subkeys[:i], n.subkeys[i+1:]...)
			return native.StatusOK
		}
	}
	return native.StatusFileNotFound
}

func (r *Registry) RenameKey(parent native.Handle, subpath, newName string) native.Status {
	base, st := r.resolve(parent, native.NoTx)
	if !st.OK() {
		return st
	}
	segs := splitPath(subpath)
	if len(segs) == 0 {
		return native.StatusAccessDenied
	}
	n := base
	for _, seg := range segs[:len(segs)-1] {
		n = findChild(n, seg)
		if n == nil {
			return native.StatusFileNotFound
		}
	}
	target := findChild(n, segs[len(segs)-1])
	if target == nil {
		return native.StatusFileNotFound
	}
	if existing := findChild(n, newName); existing != nil && existing != target {
		// Native semantics: the rename call itself reports access denied on
		// a name collision, not already-exists.
		return native.StatusAccessDenied
	}
	target.name = newName
	return native.StatusOK
}

func (r *Registry) TxBegin(timeout time.Duration, description string) (native.Tx, native.Status) {
	r.nextID++
	tx := native.Tx(r.nextID)
	r.txs[tx] = &txState{
		outcome: native.TxActive,
		roots:   cloneForest(r.roots),
		timeout: timeout,
		desc:    description,
	}
	return tx, native.StatusOK
}

func (r *Registry) TxCommit(tx native.Tx) native.Status {
	t, ok := r.txs[tx]
	if !ok {
		return native.StatusInvalidHandle
	}
	if t.outcome != native.TxActive {
		return native.StatusInvalidParameter
	}
	t.outcome = native.TxCommitted
	r.roots = t.roots
	return native.StatusOK
}

func (r *Registry) TxRollback(tx native.Tx) native.Status {
	t, ok := r.txs[tx]
	if !ok {
		return native.StatusInvalidHandle
	}
	if t.outcome != native.TxActive {
		return native.StatusInvalidParameter
	}
	t.outcome = native.TxRolledBack
	return native.StatusOK
}

func (r *Registry) TxStatus(tx native.Tx) (native.TxOutcome, native.Status) {
	t, ok := r.txs[tx]
	if !ok {
		return native.TxUnknown, native.StatusInvalidHandle
	}
	return t.outcome, native.StatusOK
}

func (r *Registry) TxClose(tx native.Tx) native.Status {
	if _, ok := r.txs[tx]; !ok {
		return native.StatusInvalidHandle
	}
	delete(r.txs, tx)
	return native.StatusOK
}

// -----------------------------------------------------------------------------
// Internals
// -----------------------------------------------------------------------------

func (r *Registry) newHandle(n *node) native.Handle {
	r.nextID++
	h := native.Handle(r.nextID)
	r.handles[h] = &openKey{n: n}
	r.Opens++
	return h
}

// resolve maps a handle (pseudo root or real) to its node. When tx is active
// and the handle is a pseudo root, the transaction's snapshot is used.
func (r *Registry) resolve(h native.Handle, tx native.Tx) (*node, native.Status) {
	forest := r.roots
	if tx != native.NoTx {
		t, ok := r.txs[tx]
		if !ok || t.outcome != native.TxActive {
			return nil, native.StatusInvalidParameter
		}
		forest = t.roots
	}
	if isPseudo(h) {
		n, ok := forest[types.Root(h)]
		if !ok {
			return nil, native.StatusInvalidHandle
		}
		return n, native.StatusOK
	}
	ok, exists := r.handles[h]
	if !exists || ok.closed {
		return nil, native.StatusInvalidHandle
	}
	return ok.n, native.StatusOK
}

func (r *Registry) lookup(forest map[types.Root]*node, root types.Root, path string) *node {
	n := forest[root]
	for _, seg := range splitPath(path) {
		n = findChild(n, seg)
		if n == nil {
			return nil
		}
	}
	return n
}

func isPseudo(h native.Handle) bool {
	return uintptr(h) >= 0x80000000
}

func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, `\`) {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func findChild(n *node, name string) *node {
	if n == nil {
		return nil
	}
	for _, c := range n.subkeys {
		if strings.EqualFold(c.name, name) {
			return c
		}
	}
	return nil
}

func setValue(n *node, name string, t types.RegType, data []byte) {
	data = bytes.Clone(data)
	for i, v := range n.values {
		if strings.EqualFold(v.name, name) {
			n.values[i] = valEntry{name: v.name, typ: t, data: data}
			return
		}
	}
	n.values = append(n.values, valEntry{name: name, typ: t, data: data})
}

func cloneForest(roots map[types.Root]*node) map[types.Root]*node {
	out := make(map[types.Root]*node, len(roots))
	for root, n := range roots {
		out[root] = cloneNode(n)
	}
	return out
}

func cloneNode(n *node) *node {
	c := &node{name: n.name}
	c.subkeys = make([]*node, len(n.subkeys))
	for i, s := range n.subkeys {
		c.subkeys[i] = cloneNode(s)
	}
	c.values = make([]valEntry, len(n.values))
	for i, v := range n.values {
		c.values[i] = valEntry{name: v.name, typ: v.typ, data: bytes.Clone(v.data)}
	}
	return c
}

func utf16Len(s string) uint32 {
	return uint32(len(utf16.Encode([]rune(s))))
}
