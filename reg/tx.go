package reg

import (
	"time"

	"github.com/google/uuid"

	"github.com/joshuapare/regkit/native"
	"github.com/joshuapare/regkit/pkg/types"
)

// Transaction wraps one native transaction handle. Handles acquired with
// WithTransaction scope their writes to it: nothing becomes visible until
// Commit. Once committed or rolled back, no further Handle may attach.
//
// A Transaction is not safe for concurrent use. The usual shape is:
//
//	tx, err := r.Begin(0, "migrate vendor settings")
//	if err != nil { ... }
//	defer tx.Close() // rolls back unless resolved
//	...
//	return tx.Commit()
type Transaction struct {
	r       *Registry
	tx      native.Tx
	id      string
	desc    string
	timeout time.Duration
	state   native.TxOutcome
	closed  bool
}

// Begin starts a native transaction with the given timeout (0 = no
// timeout) and optional human-readable description.
func (r *Registry) Begin(timeout time.Duration, description string) (*Transaction, error) {
	if timeout < 0 {
		return nil, types.InvalidArgumentError("negative transaction timeout")
	}
	tx, st := r.api.TxBegin(timeout, description)
	if err := translateTx(st); err != nil {
		return nil, err
	}
	return &Transaction{
		r:       r,
		tx:      tx,
		id:      uuid.NewString(),
		desc:    description,
		timeout: timeout,
		state:   native.TxActive,
	}, nil
}

// ID returns the transaction's identifier, for correlation in logs.
func (t *Transaction) ID() string { return t.id }

// Description returns the human-readable description passed to Begin.
func (t *Transaction) Description() string { return t.desc }

// Commit makes all writes scoped to the transaction visible atomically.
func (t *Transaction) Commit() error {
	if t.resolved() {
		return types.InvalidArgumentError("transaction already " + t.state.String())
	}
	if err := translateTx(t.r.api.TxCommit(t.tx)); err != nil {
		return err
	}
	t.state = native.TxCommitted
	return nil
}

// Rollback discards all writes scoped to the transaction.
func (t *Transaction) Rollback() error {
	if t.resolved() {
		return types.InvalidArgumentError("transaction already " + t.state.String())
	}
	if err := translateTx(t.r.api.TxRollback(t.tx)); err != nil {
		return err
	}
	t.state = native.TxRolledBack
	return nil
}

// Status polls the native transaction object for its outcome.
func (t *Transaction) Status() native.TxOutcome {
	outcome, st := t.r.api.TxStatus(t.tx)
	if !st.OK() {
		return native.TxUnknown
	}
	return outcome
}

// Close releases the native transaction handle. An unresolved transaction
// is rolled back first, so a deferred Close gives scope-exit rollback
// semantics. Closing twice is a no-op.
func (t *Transaction) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	var err error
	if !t.resolved() {
		err = t.Rollback()
	}
	return attachSuppressed(err, translateTx(t.r.api.TxClose(t.tx)))
}

// resolved reports whether the transaction reached a terminal state from
// this wrapper's point of view.
func (t *Transaction) resolved() bool {
	return t.state != native.TxActive
}

// translateTx maps transaction statuses to the taxonomy. Transactions have
// no key path to stamp.
func translateTx(st native.Status) error {
	switch st {
	case native.StatusOK:
		return nil
	case native.StatusAccessDenied:
		return &types.Error{Kind: types.ErrKindAccessDenied, Msg: "transaction"}
	case native.StatusInvalidHandle, native.StatusInvalidParameter:
		return &types.Error{Kind: types.ErrKindInvalidHandle, Msg: "transaction"}
	default:
		return &types.Error{Kind: types.ErrKindNative, Code: uint32(st), Msg: "transaction: " + st.String()}
	}
}
