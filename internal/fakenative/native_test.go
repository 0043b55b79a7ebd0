package fakenative

import (
	"testing"
	"unsafe"

	ole "github.com/go-ole/go-ole"

	"github.com/gogpu/dxbind"
)

func TestRefCounting(t *testing.T) {
	n := New()
	addr := n.NewObject(KindRenderTargetView)

	if got := n.AddRef(addr); got != 2 {
		t.Fatalf("AddRef = %d, want 2", got)
	}
	n.Release(addr)
	n.Release(addr)
	if got := n.Refs(addr); got != 0 {
		t.Errorf("Refs = %d, want 0", got)
	}
	if v := n.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}

	n.Release(addr)
	if v := n.Violations(); len(v) == 0 {
		t.Error("over-release not reported")
	}
}

func TestUnknownObject(t *testing.T) {
	n := New()
	n.AddRef(0xdead)
	if v := n.Violations(); len(v) != 1 {
		t.Fatalf("Violations = %v, want one entry", v)
	}
}

func TestDeviceContexts(t *testing.T) {
	n := New()
	dev := n.NewDevice()

	var imm uintptr
	n.GetImmediateContext(dev, &imm)
	if imm != n.ImmediateContext(dev) {
		t.Fatalf("GetImmediateContext = %#x, want %#x", imm, n.ImmediateContext(dev))
	}
	if got := n.Refs(imm); got != 2 {
		t.Errorf("immediate refs = %d, want 2", got)
	}
	if got := n.GetType(imm); got != contextTypeImmediate {
		t.Errorf("GetType(immediate) = %d", got)
	}

	var def uintptr
	if r := n.CreateDeferredContext(dev, 0, &def); r != dxbind.SOK {
		t.Fatalf("CreateDeferredContext = %v", r)
	}
	if got := n.GetType(def); got != contextTypeDeferred {
		t.Errorf("GetType(deferred) = %d", got)
	}
}

func TestBindAndQuery(t *testing.T) {
	n := New()
	ctx := n.NewContext(false)
	rtvs := []uintptr{n.NewObject(KindRenderTargetView), n.NewObject(KindRenderTargetView)}
	dsv := n.NewObject(KindDepthStencilView)

	n.OMSetRenderTargets(ctx, uint32(len(rtvs)), unsafe.Pointer(&rtvs[0]), dsv)

	out := make([]uintptr, 3)
	var gotDSV uintptr
	n.OMGetRenderTargets(ctx, uint32(len(out)), unsafe.Pointer(&out[0]), &gotDSV)
	if out[0] != rtvs[0] || out[1] != rtvs[1] || out[2] != 0 {
		t.Errorf("OMGetRenderTargets = %#x, want %#x", out, rtvs)
	}
	if gotDSV != dsv {
		t.Errorf("depth stencil = %#x, want %#x", gotDSV, dsv)
	}
	if got := n.Refs(rtvs[0]); got != 2 {
		t.Errorf("queried view refs = %d, want 2", got)
	}

	call, ok := n.LastCall("OMSetRenderTargets")
	if !ok {
		t.Fatal("OMSetRenderTargets not recorded")
	}
	if len(call.Data) != 1 || len(call.Data[0]) != 2*ptrSize {
		t.Errorf("recorded buffer = %v", call.Data)
	}
}

func TestViewportsRoundTrip(t *testing.T) {
	n := New()
	ctx := n.NewContext(false)
	vps := []Viewport{{Width: 640, Height: 480, MaxDepth: 1}, {TopLeftX: 10, Width: 5, Height: 5}}
	n.RSSetViewports(ctx, uint32(len(vps)), unsafe.Pointer(&vps[0]))

	var count uint32
	n.RSGetViewports(ctx, &count, nil)
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	out := make([]Viewport, count)
	n.RSGetViewports(ctx, &count, unsafe.Pointer(&out[0]))
	if out[0] != vps[0] || out[1] != vps[1] {
		t.Errorf("RSGetViewports = %v, want %v", out, vps)
	}

	n.RSSetViewports(ctx, 0, nil)
	if got := n.Bound(ctx).Viewports; len(got) != 0 {
		t.Errorf("viewports after unbind = %v", got)
	}
}

func TestFinishCommandList(t *testing.T) {
	n := New()
	imm := n.NewContext(false)
	def := n.NewContext(true)

	var list uintptr
	if r := n.FinishCommandList(imm, false, &list); r != dxbind.DXGIErrorInvalidCall {
		t.Errorf("FinishCommandList(immediate) = %v, want DXGI_ERROR_INVALID_CALL", r)
	}

	vp := Viewport{Width: 1, Height: 1}
	n.RSSetViewports(def, 1, unsafe.Pointer(&vp))
	if r := n.FinishCommandList(def, false, &list); r != dxbind.SOK {
		t.Fatalf("FinishCommandList = %v", r)
	}
	if n.Kind(list) != KindCommandList {
		t.Errorf("Kind = %q", n.Kind(list))
	}
	if got := n.Commands(list); got != 1 {
		t.Errorf("Commands = %d, want 1", got)
	}
	if got := n.Bound(def).Viewports; len(got) != 0 {
		t.Errorf("state not reset: %v", got)
	}

	n.Fail("FinishCommandList", dxbind.EOutOfMemory)
	if r := n.FinishCommandList(def, true, &list); r != dxbind.EOutOfMemory {
		t.Errorf("scripted failure = %v", r)
	}
	if list != 0 {
		t.Errorf("out = %#x after failure, want 0", list)
	}
}

func TestEffectProperties(t *testing.T) {
	n := New()
	clsid := ole.NewGUID("{B56C8CFA-F634-41EE-BEE0-FFA617106004}")
	n.RegisterEffect(clsid, Float("ExposureValue"))
	d2d := n.NewD2DContext()

	var effect uintptr
	if r := n.CreateEffect(d2d, clsid, &effect); r != dxbind.SOK {
		t.Fatalf("CreateEffect = %v", r)
	}
	if got := n.GetPropertyCount(effect); got != 1 {
		t.Errorf("GetPropertyCount = %d", got)
	}

	v := float32(-2.5)
	if r := n.SetValue(effect, 0, PropertyFloat, unsafe.Pointer(&v), 4); r != dxbind.SOK {
		t.Fatalf("SetValue = %v", r)
	}
	var got float32
	if r := n.GetValue(effect, 0, PropertyFloat, unsafe.Pointer(&got), 4); r != dxbind.SOK || got != v {
		t.Errorf("GetValue = %v, %v; want %v", got, r, v)
	}

	tests := []struct {
		name  string
		index uint32
		typ   uint32
		size  uint32
	}{
		{"out of range", 1, PropertyFloat, 4},
		{"wrong type", 0, PropertyUint32, 4},
		{"wrong size", 0, PropertyFloat, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf [16]byte
			if r := n.GetValue(effect, tt.index, tt.typ, unsafe.Pointer(&buf[0]), tt.size); r != dxbind.EInvalidArg {
				t.Errorf("GetValue = %v, want E_INVALIDARG", r)
			}
		})
	}

	var other uintptr
	if r := n.CreateEffect(d2d, ole.NewGUID("{00000000-0000-0000-0000-000000000001}"), &other); r.Succeeded() {
		t.Error("CreateEffect of unregistered type succeeded")
	}
}
