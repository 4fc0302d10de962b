// Package future defines the erased deferred-computation interface the
// engine drives: a value that, when polled with a Context carrying a
// Waker, either reports it is not yet ready or yields its output.
package future

// Waker is invoked by a Future to signal that it may be able to make
// progress. Implementations must be safe to call more than once and from
// any goroutine.
type Waker interface {
	Wake()
}

// Context is passed to Poll. It carries the Waker a Future should retain
// if it returns Pending, so that its owner is re-scheduled once progress
// is possible.
type Context struct {
	waker Waker
}

// NewContext builds a Context wrapping w.
func NewContext(w Waker) *Context {
	return &Context{waker: w}
}

// Waker returns the context's waker.
func (c *Context) Waker() Waker {
	return c.waker
}

// Future is a deferred computation producing a value of type T.
//
// Poll attempts to advance the computation. A (zero, false) return means
// Pending: the Future must arrange, before returning, for cx.Waker().Wake
// to be invoked once it can usefully be polled again. A (v, true) return
// means Ready(v); a Future must not be polled again after returning Ready.
type Future[T any] interface {
	Poll(cx *Context) (T, bool)
}

// FromFunc adapts a plain poll function into a Future.
func FromFunc[T any](fn func(cx *Context) (T, bool)) Future[T] {
	return fromFunc[T](fn)
}

type fromFunc[T any] func(cx *Context) (T, bool)

func (f fromFunc[T]) Poll(cx *Context) (T, bool) { return f(cx) }

// Ready returns a Future that is immediately Ready(v) on its first poll.
func Ready[T any](v T) Future[T] {
	return FromFunc(func(*Context) (T, bool) { return v, true })
}

// WakerFunc adapts a plain function into a Waker.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }
