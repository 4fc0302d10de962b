package pool

import "sync"

// dynamic wraps sync.Pool to satisfy Pool[T]; it grows and shrinks as the
// garbage collector sees fit.
type dynamic[T any] struct {
	p sync.Pool
}

// NewDynamic is a dynamic-size pool of objects, built with newFn on
// demand. It is a thin generic wrapper around sync.Pool.
func NewDynamic[T any](newFn func() T) Pool[T] {
	return &dynamic[T]{p: sync.Pool{New: func() interface{} { return newFn() }}}
}

func (p *dynamic[T]) Get() T      { return p.p.Get().(T) }
func (p *dynamic[T]) Put(el T)    { p.p.Put(el) }
