package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotFound        ErrKind = iota // missing key or value
	ErrKindAlreadyExists                  // create/rename target collision
	ErrKindAccessDenied                   // insufficient rights on the native key
	ErrKindInvalidHandle                  // stale or malformed native handle/request
	ErrKindInvalidArgument                // rejected before any native call
	ErrKindNotEmpty                       // delete of a key that still has subkeys
	ErrKindNative                         // unmapped native status code
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not found"
	case ErrKindAlreadyExists:
		return "already exists"
	case ErrKindAccessDenied:
		return "access denied"
	case ErrKindInvalidHandle:
		return "invalid handle"
	case ErrKindInvalidArgument:
		return "invalid argument"
	case ErrKindNotEmpty:
		return "key has subkeys"
	case ErrKindNative:
		return "native call failed"
	default:
		return "unknown error kind"
	}
}

// Error is a typed error carrying the offending key's full path and, for
// unmapped native failures, the raw status code. Secondary failures that
// occur while a primary error is already propagating (typically handle
// close failures) are recorded in Suppressed rather than replacing the
// primary outcome.
type Error struct {
	Kind       ErrKind
	Path       string  // full path of the offending key ("" if not applicable)
	Host       string  // remote host name, "" for the local machine
	Code       uint32  // raw native status code (ErrKindNative only)
	Msg        string  // optional detail
	Err        error   // optional underlying cause
	Suppressed []error // secondary failures recorded alongside the primary
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := e.Kind.String()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Path != "" {
		loc := e.Path
		if e.Host != "" {
			loc = `\\` + e.Host + `\` + e.Path
		}
		s += ": " + loc
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	if n := len(e.Suppressed); n > 0 {
		s += " (+" + itoa(n) + " suppressed)"
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality, so callers can write errors.Is(err, types.ErrNotFound)
// without caring about path or code payloads.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// AddSuppressed records a secondary failure on e and returns e.
// A nil secondary is ignored.
func (e *Error) AddSuppressed(sec error) *Error {
	if sec != nil {
		e.Suppressed = append(e.Suppressed, sec)
	}
	return e
}

// Sentinels for errors.Is matching. These carry no path; real errors returned
// by the library carry the offending key's full path.
var (
	ErrNotFound        = &Error{Kind: ErrKindNotFound}
	ErrAlreadyExists   = &Error{Kind: ErrKindAlreadyExists}
	ErrAccessDenied    = &Error{Kind: ErrKindAccessDenied}
	ErrInvalidHandle   = &Error{Kind: ErrKindInvalidHandle}
	ErrInvalidArgument = &Error{Kind: ErrKindInvalidArgument}
	ErrNotEmpty        = &Error{Kind: ErrKindNotEmpty}
	ErrNative          = &Error{Kind: ErrKindNative}
)

// NotFoundError builds a NotFound error for the given key location.
func NotFoundError(path, host string) *Error {
	return &Error{Kind: ErrKindNotFound, Path: path, Host: host}
}

// AlreadyExistsError builds an AlreadyExists error for the given key location.
func AlreadyExistsError(path, host string) *Error {
	return &Error{Kind: ErrKindAlreadyExists, Path: path, Host: host}
}

// AccessDeniedError builds an AccessDenied error for the given key location.
func AccessDeniedError(path, host string) *Error {
	return &Error{Kind: ErrKindAccessDenied, Path: path, Host: host}
}

// InvalidHandleError builds an InvalidHandle error for the given key location.
func InvalidHandleError(path, host string) *Error {
	return &Error{Kind: ErrKindInvalidHandle, Path: path, Host: host}
}

// InvalidArgumentError builds an InvalidArgument error. These are raised
// before any native call is made and are never wrapped from a native code.
func InvalidArgumentError(msg string) *Error {
	return &Error{Kind: ErrKindInvalidArgument, Msg: msg}
}

// NotEmptyError builds the distinct "key has subkeys" delete failure.
func NotEmptyError(path, host string) *Error {
	return &Error{Kind: ErrKindNotEmpty, Path: path, Host: host}
}

// NativeError builds the generic failure for an unmapped native status code,
// preserving the raw code. Unmapped codes are never silently ignored.
func NativeError(code uint32, path, host string) *Error {
	return &Error{Kind: ErrKindNative, Code: code, Msg: "status " + itoa(int(code)), Path: path, Host: host}
}

// itoa avoids pulling strconv into the error hot path for tiny numbers.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
