// Package loadstate tracks the presentation phase of one screen region
// through a load cycle.
package loadstate

// Phase is the presentation branch a region is in.
type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Empty
	Error
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Empty:
		return "empty"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Token identifies one load cycle of a region. Only the most recently
// issued token may resolve it.
type Token uint64

// Region holds the outcome of the latest load cycle. The zero value is an
// idle region. Region is not safe for concurrent use; it is owned by the
// UI goroutine.
type Region[T any] struct {
	phase Phase
	seq   Token
	data  T
	err   error
}

// Begin starts a new load cycle, moving the region to Loading. Previous
// data is kept so callers may keep showing it, but Phase reports Loading.
func (r *Region[T]) Begin() Token {
	r.seq++
	r.phase = Loading
	r.err = nil
	return r.seq
}

// Resolve applies the outcome of the cycle identified by tok. err takes
// precedence over empty. It reports false, and changes nothing, when tok
// has been superseded by a later Begin.
func (r *Region[T]) Resolve(tok Token, data T, empty bool, err error) bool {
	if !r.Current(tok) || r.phase != Loading {
		return false
	}
	var zero T
	switch {
	case err != nil:
		r.phase = Error
		r.err = err
		r.data = zero
	case empty:
		r.phase = Empty
		r.data = zero
	default:
		r.phase = Success
		r.data = data
	}
	return true
}

func (r *Region[T]) Phase() Phase { return r.phase }

// Data returns the payload of a successful cycle.
func (r *Region[T]) Data() T { return r.data }

func (r *Region[T]) Err() error { return r.err }

// Current reports whether tok belongs to the latest cycle.
func (r *Region[T]) Current(tok Token) bool { return tok == r.seq }

// Token returns the token of the latest cycle.
func (r *Region[T]) Token() Token { return r.seq }
