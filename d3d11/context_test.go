package d3d11

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/com"
	"github.com/gogpu/dxbind/internal/fakenative"
)

var _ ABI = (*fakenative.Native)(nil)

type testEnv struct {
	fn   *fakenative.Native
	opts []Option
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fn := fakenative.New()
	e := &testEnv{
		fn:   fn,
		opts: []Option{WithABI(fn), WithTable(com.NewTable(fn))},
	}
	t.Cleanup(func() {
		if v := fn.Violations(); len(v) != 0 {
			t.Errorf("native protocol violations: %v", v)
		}
	})
	return e
}

func (e *testEnv) device(t *testing.T) *Device {
	t.Helper()
	dev, err := WrapDevice(e.fn.NewDevice(), e.opts...)
	if err != nil {
		t.Fatalf("WrapDevice: %v", err)
	}
	t.Cleanup(func() { _ = dev.Release() })
	return dev
}

func (e *testEnv) deferred(t *testing.T) *DeviceContext {
	t.Helper()
	ctx, err := e.device(t).CreateDeferredContext()
	if err != nil {
		t.Fatalf("CreateDeferredContext: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Release() })
	return ctx
}

func (e *testEnv) immediate(t *testing.T) *DeviceContext {
	t.Helper()
	ctx, err := e.device(t).ImmediateContext()
	if err != nil {
		t.Fatalf("ImmediateContext: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Release() })
	return ctx
}

func (e *testEnv) rtvs(t *testing.T, n int) []*RenderTargetView {
	t.Helper()
	out := make([]*RenderTargetView, n)
	for i := range out {
		v, err := WrapRenderTargetView(e.fn.NewObject(fakenative.KindRenderTargetView), e.opts...)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = v
		t.Cleanup(func() { _ = v.Release() })
	}
	return out
}

func (e *testEnv) dsv(t *testing.T) *DepthStencilView {
	t.Helper()
	v, err := WrapDepthStencilView(e.fn.NewObject(fakenative.KindDepthStencilView), e.opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = v.Release() })
	return v
}

func (e *testEnv) uavs(t *testing.T, n int) []*UnorderedAccessView {
	t.Helper()
	out := make([]*UnorderedAccessView, n)
	for i := range out {
		v, err := WrapUnorderedAccessView(e.fn.NewObject(fakenative.KindUnorderedAccessView), e.opts...)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = v
		t.Cleanup(func() { _ = v.Release() })
	}
	return out
}

func int32s(b []byte) []int32 {
	out := make([]int32, len(b)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}

func float32s(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}

func TestRenderTargetsRoundTrip(t *testing.T) {
	for n := 1; n <= 4; n++ {
		e := newTestEnv(t)
		ctx := e.immediate(t)
		rtvs := e.rtvs(t, n)
		dsv := e.dsv(t)

		if err := ctx.OMSetRenderTargets(rtvs, dsv); err != nil {
			t.Fatalf("n=%d: OMSetRenderTargets: %v", n, err)
		}
		got, gotDSV, err := ctx.OMGetRenderTargets(n)
		if err != nil {
			t.Fatalf("n=%d: OMGetRenderTargets: %v", n, err)
		}
		for i := range rtvs {
			if got[i].Address() != rtvs[i].Address() {
				t.Errorf("n=%d slot %d = %#x, want %#x", n, i, got[i].Address(), rtvs[i].Address())
			}
			if !com.Equal(got[i].Object(), rtvs[i].Object()) {
				t.Errorf("n=%d slot %d: proxies not equal", n, i)
			}
			_ = got[i].Release()
		}
		if gotDSV.Address() != dsv.Address() {
			t.Errorf("n=%d depth stencil = %#x, want %#x", n, gotDSV.Address(), dsv.Address())
		}
		_ = gotDSV.Release()

		// Wrap added one reference per view; querying must not leak more.
		for _, v := range rtvs {
			if refs := e.fn.Refs(v.Address()); refs != 2 {
				t.Errorf("n=%d: view refs = %d, want 2", n, refs)
			}
		}
	}
}

func TestOMGetRenderTargetsEmptySlots(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.immediate(t)
	rtvs := e.rtvs(t, 1)
	if err := ctx.OMSetRenderTarget(rtvs[0], nil); err != nil {
		t.Fatal(err)
	}
	got, dsv, err := ctx.OMGetRenderTargets(3)
	if err != nil {
		t.Fatal(err)
	}
	defer got[0].Release()
	if got[1] != nil || got[2] != nil || dsv != nil {
		t.Errorf("empty slots = %v, %v, dsv %v; want nil", got[1], got[2], dsv)
	}
}

func TestRenderTargetPreconditions(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.immediate(t)
	rtvs := e.rtvs(t, 2)
	released := e.rtvs(t, 1)[0]
	if err := released.Release(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"nil slice", func() error { return ctx.OMSetRenderTargets(nil, nil) }, dxbind.ErrNullArgument},
		{"empty slice", func() error { return ctx.OMSetRenderTargets([]*RenderTargetView{}, nil) }, dxbind.ErrEmptyArgument},
		{"nil element", func() error { return ctx.OMSetRenderTargets([]*RenderTargetView{rtvs[0], nil}, nil) }, dxbind.ErrNullArgument},
		{"released element", func() error { return ctx.OMSetRenderTargets([]*RenderTargetView{released}, nil) }, dxbind.ErrUseAfterRelease},
		{"nil single", func() error { return ctx.OMSetRenderTarget(nil, nil) }, dxbind.ErrNullArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, dxbind.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if n := e.fn.CallCount("OMSetRenderTargets"); n != 0 {
				t.Errorf("native calls = %d, want 0", n)
			}
		})
	}
}

func TestOMUnbindRenderTargets(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.immediate(t)
	if err := ctx.OMSetRenderTargets(e.rtvs(t, 2), e.dsv(t)); err != nil {
		t.Fatal(err)
	}
	if err := ctx.OMUnbindRenderTargets(); err != nil {
		t.Fatal(err)
	}
	call, _ := e.fn.LastCall("OMSetRenderTargets")
	if call.Args[0] != 0 || call.Args[1] != 0 || call.Args[2] != 0 {
		t.Errorf("args = %v, want all zero", call.Args)
	}
	if b := e.fn.Bound(ctx.Address()); len(b.RenderTargets) != 0 || b.DepthStencil != 0 {
		t.Errorf("bound after unbind = %+v", b)
	}
}

func TestUAVCounters(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.immediate(t)
	rtvs := e.rtvs(t, 1)
	uavs := e.uavs(t, 3)
	const method = "OMSetRenderTargetsAndUnorderedAccessViews"

	err := ctx.OMSetRenderTargetsAndUnorderedAccessViews(rtvs, nil, 1, uavs, []int32{0, 5})
	if !errors.Is(err, dxbind.ErrLengthMismatch) || !errors.Is(err, dxbind.ErrInvalidArgument) {
		t.Fatalf("short counts: err = %v, want ErrLengthMismatch", err)
	}
	if n := e.fn.CallCount(method); n != 0 {
		t.Fatalf("native calls after rejected binding = %d", n)
	}

	if err := ctx.OMSetRenderTargetsAndUnorderedAccessViews(rtvs, nil, 1, uavs, nil); err != nil {
		t.Fatalf("absent counts: %v", err)
	}
	call, ok := e.fn.LastCall(method)
	if !ok {
		t.Fatal("no native call")
	}
	counts := int32s(call.Data[2])
	if len(counts) != 3 {
		t.Fatalf("counts = %v, want 3 entries", counts)
	}
	for i, c := range counts {
		if c != KeepCounter {
			t.Errorf("count[%d] = %d, want %d", i, c, KeepCounter)
		}
	}

	if err := ctx.OMSetRenderTargetsAndUnorderedAccessViews(rtvs, nil, 1, uavs, []int32{0, 7, -1}); err != nil {
		t.Fatal(err)
	}
	b := e.fn.Bound(ctx.Address())
	if b.UAVStartSlot != 1 || len(b.UAVs) != 3 || b.UAVCounts[1] != 7 {
		t.Errorf("bound = %+v", b)
	}
	for i, v := range uavs {
		if b.UAVs[i] != v.Address() {
			t.Errorf("uav slot %d = %#x, want %#x", i, b.UAVs[i], v.Address())
		}
	}
}

func TestUAVPreconditions(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.immediate(t)
	rtvs := e.rtvs(t, 1)
	uav := e.uavs(t, 1)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"nil uavs", func() error { return ctx.OMSetRenderTargetsAndUnorderedAccessViews(rtvs, nil, 0, nil, nil) }, dxbind.ErrNullArgument},
		{"empty uavs", func() error {
			return ctx.OMSetRenderTargetsAndUnorderedAccessViews(rtvs, nil, 0, []*UnorderedAccessView{}, nil)
		}, dxbind.ErrEmptyArgument},
		{"nil rtvs", func() error {
			return ctx.OMSetRenderTargetsAndUnorderedAccessViews(nil, nil, 0, uav, nil)
		}, dxbind.ErrNullArgument},
		{"single without uavs", func() error { return ctx.OMSetRenderTargetAndUnorderedAccessViews(rtvs[0], nil, 0) }, dxbind.ErrEmptyArgument},
		{"single nil rtv", func() error { return ctx.OMSetRenderTargetAndUnorderedAccessViews(nil, nil, 0, uav...) }, dxbind.ErrNullArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if n := e.fn.CallCount("OMSetRenderTargetsAndUnorderedAccessViews"); n != 0 {
		t.Errorf("native calls = %d, want 0", n)
	}
}

func TestOMSetUnorderedAccessViewsKeepsRenderTargets(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.immediate(t)
	rtvs := e.rtvs(t, 2)
	if err := ctx.OMSetRenderTargets(rtvs, nil); err != nil {
		t.Fatal(err)
	}
	if err := ctx.OMSetUnorderedAccessViews(2, e.uavs(t, 1), []int32{0}); err != nil {
		t.Fatal(err)
	}
	call, _ := e.fn.LastCall("OMSetRenderTargetsAndUnorderedAccessViews")
	if call.Args[0] != uint64(KeepRenderTargetsAndDepthStencil) {
		t.Errorf("render target count = %#x, want keep sentinel", call.Args[0])
	}
	if b := e.fn.Bound(ctx.Address()); len(b.RenderTargets) != 2 {
		t.Errorf("render targets after UAV-only binding = %v", b.RenderTargets)
	}
}

func TestSingleViewportMatchesSlice(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.immediate(t)
	vp := Viewport{TopLeftX: 1, TopLeftY: 2, Width: 640, Height: 480, MinDepth: 0.25, MaxDepth: 1}

	if err := ctx.RSSetViewport(vp); err != nil {
		t.Fatal(err)
	}
	single, _ := e.fn.LastCall("RSSetViewports")
	if err := ctx.RSSetViewports(vp); err != nil {
		t.Fatal(err)
	}
	nary, _ := e.fn.LastCall("RSSetViewports")

	if len(single.Data[0]) != 24 {
		t.Fatalf("viewport bytes = %d, want 24", len(single.Data[0]))
	}
	if !bytes.Equal(single.Data[0], nary.Data[0]) {
		t.Errorf("single %x != n-ary %x", single.Data[0], nary.Data[0])
	}
	if single.Args[0] != nary.Args[0] || single.Args[0] != 1 {
		t.Errorf("counts = %d, %d; want 1", single.Args[0], nary.Args[0])
	}
	if got := float32s(single.Data[0]); got[2] != 640 || got[4] != 0.25 {
		t.Errorf("layout = %v", got)
	}
}

func TestSingleScissorMatchesSlice(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.immediate(t)
	r := Rect{Left: -4, Top: 8, Right: 100, Bottom: 50}

	_ = ctx.RSSetScissorRect(r)
	single, _ := e.fn.LastCall("RSSetScissorRects")
	_ = ctx.RSSetScissorRects(r)
	nary, _ := e.fn.LastCall("RSSetScissorRects")

	if !bytes.Equal(single.Data[0], nary.Data[0]) || len(single.Data[0]) != 16 {
		t.Errorf("single %x, n-ary %x", single.Data[0], nary.Data[0])
	}
	if got := int32s(single.Data[0]); got[0] != -4 || got[3] != 50 {
		t.Errorf("layout = %v", got)
	}
}

func TestViewportsAndScissorsRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.immediate(t)
	vps := []Viewport{{Width: 10, Height: 10, MaxDepth: 1}, {TopLeftX: 5, Width: 1, Height: 2}}
	rects := []Rect{{0, 0, 10, 10}, {1, 2, 3, 4}, {5, 6, 7, 8}}

	if err := ctx.RSSetViewports(vps...); err != nil {
		t.Fatal(err)
	}
	if err := ctx.RSSetScissorRects(rects...); err != nil {
		t.Fatal(err)
	}
	gotVPs, err := ctx.RSGetViewports()
	if err != nil || len(gotVPs) != 2 || gotVPs[1] != vps[1] {
		t.Errorf("RSGetViewports = %v, %v", gotVPs, err)
	}
	gotRects, err := ctx.RSGetScissorRects()
	if err != nil || len(gotRects) != 3 || gotRects[2] != rects[2] {
		t.Errorf("RSGetScissorRects = %v, %v", gotRects, err)
	}

	// No arguments unbinds with a null array.
	if err := ctx.RSSetViewports(); err != nil {
		t.Fatal(err)
	}
	call, _ := e.fn.LastCall("RSSetViewports")
	if call.Args[0] != 0 || call.Args[1] != 0 {
		t.Errorf("unbind args = %v", call.Args)
	}
	if got, _ := ctx.RSGetViewports(); len(got) != 0 {
		t.Errorf("viewports after unbind = %v", got)
	}
}

func TestClearRenderTargetView(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.immediate(t)
	rtv := e.rtvs(t, 1)[0]

	tests := []struct {
		name  string
		clear func() error
		want  [4]float32
	}{
		{"rgba", func() error { return ctx.ClearRenderTargetView(rtv, [4]float32{0.1, 0.2, 0.3, 0.4}) }, [4]float32{0.1, 0.2, 0.3, 0.4}},
		{"color", func() error { return ctx.ClearRenderTargetViewColor(rtv, color.NRGBA{R: 255, B: 51, A: 255}) }, [4]float32{1, 0, 0.2, 1}},
		{"gpu", func() error { return ctx.ClearRenderTargetViewGPU(rtv, gputypes.Color{R: 0.5, G: 1, A: 1}) }, [4]float32{0.5, 1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.clear(); err != nil {
				t.Fatal(err)
			}
			call, _ := e.fn.LastCall("ClearRenderTargetView")
			if call.Args[0] != uint64(rtv.Address()) {
				t.Errorf("view = %#x, want %#x", call.Args[0], rtv.Address())
			}
			got := float32s(call.Data[0])
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("rgba = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}

	if err := ctx.ClearRenderTargetView(nil, [4]float32{}); !errors.Is(err, dxbind.ErrNullArgument) {
		t.Errorf("nil view: err = %v", err)
	}
}

func TestReleasedContext(t *testing.T) {
	e := newTestEnv(t)
	ctx, err := e.device(t).CreateDeferredContext()
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Release(); err != nil {
		t.Fatal(err)
	}
	if err := ctx.RSSetViewport(Viewport{}); !errors.Is(err, dxbind.ErrUseAfterRelease) {
		t.Errorf("RSSetViewport after release = %v", err)
	}
	if err := ctx.Release(); !errors.Is(err, dxbind.ErrUseAfterRelease) {
		t.Errorf("second Release = %v", err)
	}
	if e.fn.CallCount("RSSetViewports") != 0 {
		t.Error("native call on released context")
	}
}

func TestContextTypes(t *testing.T) {
	e := newTestEnv(t)
	imm := e.immediate(t)
	def := e.deferred(t)

	if imm.Type() != ContextImmediate || imm.State() != StateImmediate {
		t.Errorf("immediate: %v/%v", imm.Type(), imm.State())
	}
	if def.Type() != ContextDeferred || def.State() != StateRecording {
		t.Errorf("deferred: %v/%v", def.Type(), def.State())
	}

	wrapped, err := WrapDeviceContext(def.Address(), e.opts...)
	if err != nil {
		t.Fatal(err)
	}
	defer wrapped.Release()
	if wrapped.Type() != ContextDeferred {
		t.Errorf("WrapDeviceContext type = %v", wrapped.Type())
	}
}
