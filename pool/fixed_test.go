package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type pooledThing struct{ id int }

func TestFixedPool_TableDriven(t *testing.T) {
	type args struct {
		capacity uint
	}
	type want struct {
		newCountMin int
		newCountMax int
	}

	tests := []struct {
		name  string
		args  args
		setup func(t *testing.T, p *fixed[*pooledThing])
		run   func(t *testing.T, p *fixed[*pooledThing], newCount *int32) int
		want  want
	}{
		{
			name: "constructor: capacity>0 makes buffered channels",
			args: args{capacity: 3},
			run: func(t *testing.T, p *fixed[*pooledThing], _ *int32) int {
				for i := 0; i < cap(p.available); i++ {
					select {
					case p.available <- &pooledThing{id: i}:
					case <-time.After(100 * time.Millisecond):
						t.Fatalf("available channel did not accept up to capacity elements")
					}
				}
				var drained int
				for i := 0; i < cap(p.available); i++ {
					select {
					case <-p.available:
						drained++
					default:
					}
				}
				if drained != cap(p.available) {
					t.Fatalf("drained %d, want %d", drained, cap(p.available))
				}
				return 0
			},
			want: want{newCountMin: 0, newCountMax: 0},
		},
		{
			name: "Get creates up to capacity via newFn; then blocks until Put",
			args: args{capacity: 2},
			run: func(t *testing.T, p *fixed[*pooledThing], newCount *int32) int {
				w1 := p.Get()
				w2 := p.Get()
				if w1 == nil || w2 == nil || w1 == w2 {
					t.Fatalf("expected two distinct objects, got %v and %v", w1, w2)
				}

				gotCh := make(chan *pooledThing, 1)
				go func() { gotCh <- p.Get() }()

				select {
				case <-gotCh:
					t.Fatalf("third Get should block until Put; returned early")
				case <-time.After(100 * time.Millisecond):
				}

				p.Put(w1)

				select {
				case got := <-gotCh:
					if got != w1 {
						t.Fatalf("expected blocked Get to receive reused object w1; got %v", got)
					}
				case <-time.After(200 * time.Millisecond):
					t.Fatalf("blocked Get did not resume after Put")
				}

				return int(atomic.LoadInt32(newCount))
			},
			want: want{newCountMin: 2, newCountMax: 2},
		},
		{
			name: "Get reuses object from available even if capacity not yet reached",
			args: args{capacity: 3},
			setup: func(_ *testing.T, p *fixed[*pooledThing]) {
				p.available <- &pooledThing{id: 42}
			},
			run: func(t *testing.T, p *fixed[*pooledThing], newCount *int32) int {
				got := p.Get()
				if got.id != 42 {
					t.Fatalf("expected to reuse seeded object id=42, got %#v", got)
				}
				return int(atomic.LoadInt32(newCount))
			},
			want: want{newCountMin: 0, newCountMax: 0},
		},
		{
			name: "Put then Get returns the same instance",
			args: args{capacity: 1},
			run: func(t *testing.T, p *fixed[*pooledThing], _ *int32) int {
				w := p.Get()
				p.Put(w)
				w2 := p.Get()
				if w2 != w {
					t.Fatalf("expected same instance after Put/Get; got %v vs %v", w, w2)
				}
				return 1
			},
			want: want{newCountMin: 1, newCountMax: 1},
		},
		{
			name: "Concurrent Get/Put never creates more than capacity objects",
			args: args{capacity: 5},
			run: func(t *testing.T, p *fixed[*pooledThing], newCount *int32) int {
				const goroutines = 20
				var wg sync.WaitGroup
				wg.Add(goroutines)

				for i := 0; i < goroutines; i++ {
					go func() {
						defer wg.Done()
						w := p.Get()
						time.Sleep(5 * time.Millisecond)
						p.Put(w)
					}()
				}
				wg.Wait()
				created := int(atomic.LoadInt32(newCount))
				if created > cap(p.all) {
					t.Fatalf("created %d objects, exceeds capacity %d", created, cap(p.all))
				}
				return created
			},
			want: want{newCountMin: 1, newCountMax: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var counter int32
			newFn := func() *pooledThing {
				id := int(atomic.AddInt32(&counter, 1))
				return &pooledThing{id: id}
			}

			p := NewFixed[*pooledThing](tt.args.capacity, newFn).(*fixed[*pooledThing])

			if tt.setup != nil {
				tt.setup(t, p)
			}

			created := tt.run(t, p, &counter)

			if created < tt.want.newCountMin || created > tt.want.newCountMax {
				t.Fatalf("newFn calls = %d, want in [%d..%d]", created, tt.want.newCountMin, tt.want.newCountMax)
			}
		})
	}
}
