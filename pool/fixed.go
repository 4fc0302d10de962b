package pool

// fixed is a bounded pool: it constructs at most capacity objects, and
// once that many exist Get blocks until one is returned with Put. all
// holds one slot per object constructed so far.
type fixed[T any] struct {
	available chan T
	all       chan T
	newFn     func() T
}

// NewFixed constructs a pool capped at capacity live objects, built with
// newFn on demand.
func NewFixed[T any](capacity uint, newFn func() T) Pool[T] {
	return &fixed[T]{
		available: make(chan T, capacity),
		all:       make(chan T, capacity),
		newFn:     newFn,
	}
}

func (p *fixed[T]) Get() T {
	select {
	case el := <-p.available:
		return el

	default:
		var el T

		select {
		case p.all <- el:
			el = p.newFn()
		case el = <-p.available:
		}
		return el
	}
}

func (p *fixed[T]) Put(el T) {
	select {
	case p.available <- el:
	case p.all <- el:
	default:
	}
}
