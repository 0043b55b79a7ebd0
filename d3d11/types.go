package d3d11

import "github.com/gogpu/dxbind/internal/marshal"

// Viewport is D3D11_VIEWPORT.
type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

// Rect is D3D11_RECT, used for scissor rectangles.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int32 { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() int32 { return r.Bottom - r.Top }

const (
	// KeepCounter as a UAV initial count preserves the view's hidden
	// append/consume counter.
	KeepCounter int32 = marshal.KeepCounter

	// KeepRenderTargetsAndDepthStencil as the render-target count of
	// OMSetRenderTargetsAndUnorderedAccessViews leaves the bound render
	// targets and depth-stencil view untouched.
	KeepRenderTargetsAndDepthStencil uint32 = 0xFFFFFFFF
)

// ContextType is D3D11_DEVICE_CONTEXT_TYPE.
type ContextType uint32

const (
	ContextImmediate ContextType = 0
	ContextDeferred  ContextType = 1
)

func (t ContextType) String() string {
	switch t {
	case ContextImmediate:
		return "immediate"
	case ContextDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// RecordingState is the capture state of a device context.
type RecordingState int

const (
	// StateImmediate is reported by immediate contexts, which never record.
	StateImmediate RecordingState = iota

	// StateRecording means a deferred context is accepting commands.
	StateRecording

	// StateIdle means a deferred context has just been finished and has
	// not been given a command since.
	StateIdle
)

func (s RecordingState) String() string {
	switch s {
	case StateImmediate:
		return "immediate"
	case StateRecording:
		return "recording"
	case StateIdle:
		return "idle"
	default:
		return "unknown"
	}
}
