package marshal

import (
	"errors"
	"math"
	"testing"
	"unsafe"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/com"
	"github.com/gogpu/dxbind/internal/fakenative"
)

type view struct{ obj *com.Object }

func (v *view) Object() *com.Object {
	if v == nil {
		return nil
	}
	return v.obj
}

func newViews(t *testing.T, n int) (*fakenative.Native, []*view) {
	t.Helper()
	fn := fakenative.New()
	tbl := com.NewTable(fn)
	views := make([]*view, n)
	for i := range views {
		obj, err := tbl.Attach(fn.NewObject(fakenative.KindUnorderedAccessView))
		if err != nil {
			t.Fatal(err)
		}
		views[i] = &view{obj: obj}
	}
	t.Cleanup(func() {
		for _, v := range views {
			if !v.obj.Released() {
				_ = v.obj.Release()
			}
		}
	})
	return fn, views
}

func TestArenaSlabsAreDisjoint(t *testing.T) {
	a := Acquire()
	defer a.Release()

	p1 := a.Pointers(3)
	p2 := a.Pointers(40)
	for i := range p1 {
		p1[i] = 1
	}
	for i := range p2 {
		p2[i] = 2
	}
	for i, v := range p1 {
		if v != 1 {
			t.Fatalf("p1[%d] = %d, overwritten by later slab", i, v)
		}
	}

	c := a.Int32s(4)
	if len(c) != 4 || cap(c) != 4 {
		t.Errorf("Int32s len/cap = %d/%d, want 4/4", len(c), cap(c))
	}
}

func TestArenaReuseIsZeroed(t *testing.T) {
	a := Acquire()
	p := a.Pointers(8)
	for i := range p {
		p[i] = 0xFF
	}
	a.Release()

	b := Acquire()
	defer b.Release()
	for i, v := range b.Pointers(8) {
		if v != 0 {
			t.Fatalf("slot %d = %#x, want zeroed", i, v)
		}
	}
}

func TestArenaUseAfterRelease(t *testing.T) {
	a := Acquire()
	a.Release()
	defer func() {
		if recover() == nil {
			t.Error("use after Release did not panic")
		}
	}()
	a.Pointers(1)
}

func TestArenaStaleCopyAfterReuse(t *testing.T) {
	stale := Acquire()
	stale.Release()

	// The next Acquire may hand out the same slabs; the stale copy must
	// still be rejected.
	fresh := Acquire()
	defer fresh.Release()

	tests := []struct {
		name string
		use  func()
	}{
		{"Pointers", func() { stale.Pointers(1) }},
		{"Int32s", func() { stale.Int32s(1) }},
		{"Stage", func() { Stage(stale, float32(1)) }},
		{"Release", stale.Release},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("stale arena did not panic")
				}
			}()
			tt.use()
		})
	}
	if len(fresh.Pointers(2)) != 2 {
		t.Error("fresh arena unusable after stale access")
	}
}

func TestAddresses(t *testing.T) {
	_, views := newViews(t, 3)

	a := Acquire()
	defer a.Release()

	got, err := Addresses(a, "op", "views", views)
	if err != nil {
		t.Fatalf("Addresses: %v", err)
	}
	for i, v := range views {
		if got[i] != v.obj.Address() {
			t.Errorf("slot %d = %#x, want %#x", i, got[i], v.obj.Address())
		}
	}

	empty, err := Addresses(a, "op", "views", []*view{})
	if err != nil || len(empty) != 0 {
		t.Errorf("empty = %v, %v", empty, err)
	}
}

func TestAddressesErrors(t *testing.T) {
	_, views := newViews(t, 2)
	released := views[1]
	_ = released.obj.Release()

	tests := []struct {
		name  string
		views []*view
		want  error
	}{
		{"nil slice", nil, dxbind.ErrNullArgument},
		{"nil element", []*view{views[0], nil}, dxbind.ErrNullArgument},
		{"released element", []*view{views[0], released}, dxbind.ErrUseAfterRelease},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Acquire()
			defer a.Release()
			_, err := Addresses(a, "op", "views", tt.views)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, dxbind.ErrInvalidArgument) {
				t.Errorf("err = %v does not match ErrInvalidArgument", err)
			}
		})
	}
}

func TestAddressOptional(t *testing.T) {
	_, views := newViews(t, 1)

	if addr, err := Address[*view]("op", "dsv", nil); addr != 0 || err != nil {
		t.Errorf("Address(nil) = %#x, %v", addr, err)
	}
	if addr, err := Address("op", "dsv", views[0]); addr != views[0].obj.Address() || err != nil {
		t.Errorf("Address = %#x, %v", addr, err)
	}
	if _, err := Required[*view]("op", "rtv", nil); !errors.Is(err, dxbind.ErrNullArgument) {
		t.Errorf("Required(nil) = %v", err)
	}
}

func TestRequireNonEmpty(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		isNil bool
		want  error
	}{
		{"nil", 0, true, dxbind.ErrNullArgument},
		{"empty", 0, false, dxbind.ErrEmptyArgument},
		{"ok", 2, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireNonEmpty("op", "uavs", tt.n, tt.isNil)
			if tt.want == nil {
				if err != nil {
					t.Errorf("err = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCounters(t *testing.T) {
	a := Acquire()
	defer a.Release()

	got, err := Counters(a, "op", "counts", nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range got {
		if c != KeepCounter {
			t.Errorf("slot %d = %d, want %d", i, c, KeepCounter)
		}
	}

	got, err = Counters(a, "op", "counts", []int32{0, 7}, 2)
	if err != nil || got[0] != 0 || got[1] != 7 {
		t.Errorf("Counters = %v, %v", got, err)
	}

	_, err = Counters(a, "op", "counts", []int32{0}, 2)
	if !errors.Is(err, dxbind.ErrLengthMismatch) {
		t.Errorf("short counts = %v, want ErrLengthMismatch", err)
	}
}

func TestSliceAndOne(t *testing.T) {
	if Slice([]float32{}) != nil {
		t.Error("Slice(empty) != nil")
	}
	vs := []float32{1, 2}
	if Slice(vs) != unsafe.Pointer(&vs[0]) {
		t.Error("Slice does not alias the first element")
	}

	a := Acquire()
	defer a.Release()
	type rect struct{ l, t, r, b int32 }
	want := rect{1, -2, 3, 4}
	p := One(a, want)
	if got := *(*rect)(p); got != want {
		t.Errorf("One staged %v, want %v", got, want)
	}
	if uintptr(p)%8 != 0 {
		t.Errorf("One %p not 8-byte aligned", p)
	}
}

func TestSteadyStateAllocations(t *testing.T) {
	if raceEnabled {
		t.Skip("sync.Pool drops items under the race detector")
	}
	_, views := newViews(t, 4)
	counts := []int32{0, 1, 2, 3}

	tests := []struct {
		name string
		fn   func(a Arena)
	}{
		{"Addresses", func(a Arena) { _, _ = Addresses(a, "op", "views", views) }},
		{"Counters", func(a Arena) { _, _ = Counters(a, "op", "counts", counts, 4) }},
		{"KeepCounters", func(a Arena) { _, _ = Counters(a, "op", "counts", nil, 4) }},
		{"One", func(a Arena) { _ = One(a, [6]float32{1, 2, 3, 4, 5, 6}) }},
		{"Stage", func(a Arena) { _, _ = Stage(a, [4]float32{1, 2, 3, 4}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocs := testing.AllocsPerRun(100, func() {
				a := Acquire()
				tt.fn(a)
				a.Release()
			})
			if allocs != 0 {
				t.Errorf("allocs/op = %v, want 0", allocs)
			}
		})
	}
}

func TestStage(t *testing.T) {
	a := Acquire()
	defer a.Release()

	for _, f := range []float32{0, -1.5, float32(math.Inf(1)), float32(math.Inf(-1))} {
		p, size := Stage(a, f)
		if size != 4 {
			t.Fatalf("size = %d, want 4", size)
		}
		if got := Load[float32](p); got != f {
			t.Errorf("Load = %v, want %v", got, f)
		}
	}

	p, size := Stage(a, [4]float32{1, 2, 3, 4})
	if size != 16 {
		t.Fatalf("vector size = %d, want 16", size)
	}
	if got := Load[[4]float32](p); got != [4]float32{1, 2, 3, 4} {
		t.Errorf("Load = %v", got)
	}
	if uintptr(p)%8 != 0 {
		t.Errorf("scratch %p not 8-byte aligned", p)
	}
}
