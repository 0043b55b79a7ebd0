package d3d11

import (
	"fmt"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/internal/marshal"
)

// failurePolicy selects how finishCommandList reports a failed capture.
type failurePolicy int

const (
	// raiseOnFailure turns a failed HRESULT into a *dxbind.NativeError.
	raiseOnFailure failurePolicy = iota

	// returnStatus hands the HRESULT back with a nil error.
	returnStatus
)

// FinishCommandList captures the commands recorded on a deferred context
// into a new command list. With restoreState the context keeps its
// state afterwards; otherwise it is reset to defaults.
//
// A failed capture returns a *dxbind.NativeError. Immediate contexts
// cannot be finished and fail with DXGI_ERROR_INVALID_CALL.
func (c *DeviceContext) FinishCommandList(restoreState bool) (*CommandList, error) {
	list := new(CommandList)
	if _, err := c.finishCommandList(restoreState, list, raiseOnFailure); err != nil {
		return nil, err
	}
	return list, nil
}

// FinishCommandListInto captures into list and returns the native
// result without raising. A command list previously held by list is
// released once the capture succeeds; on failure list is left as it
// was. A nil list returns E_POINTER without a native call, and so does
// a released context.
func (c *DeviceContext) FinishCommandListInto(restoreState bool, list *CommandList) dxbind.Result {
	if list == nil {
		return dxbind.EPointer
	}
	r, _ := c.finishCommandList(restoreState, list, returnStatus)
	return r
}

func (c *DeviceContext) finishCommandList(restoreState bool, list *CommandList, policy failurePolicy) (dxbind.Result, error) {
	const op = "FinishCommandList"
	this, err := c.live(op)
	if err != nil {
		if policy == returnStatus {
			return dxbind.EPointer, nil
		}
		return dxbind.EPointer, err
	}

	var out uintptr
	r := c.abi.FinishCommandList(this, restoreState, &out)
	if r.Succeeded() && out == 0 {
		r = dxbind.EPointer
	}
	if r.Failed() {
		if policy == raiseOnFailure {
			dxbind.Logger().Warn("d3d11: command list capture failed",
				"context", fmt.Sprintf("%#x", this), "result", r.String())
			return r, r.Err(op)
		}
		return r, nil
	}

	obj, err := c.table.Attach(out)
	if err != nil {
		return dxbind.EPointer, err
	}
	list.set(obj)
	c.state = StateIdle
	dxbind.Logger().Debug("d3d11: command list captured",
		"context", fmt.Sprintf("%#x", this), "list", fmt.Sprintf("%#x", out), "restore", restoreState)
	return r, nil
}

// ExecuteCommandList plays list back on an immediate context. With
// restoreState the context state is saved before and restored after
// execution.
func (c *DeviceContext) ExecuteCommandList(list *CommandList, restoreState bool) error {
	const op = "ExecuteCommandList"
	this, err := c.live(op)
	if err != nil {
		return err
	}
	addr, err := marshal.Required(op, "commandList", list)
	if err != nil {
		return err
	}
	c.abi.ExecuteCommandList(this, addr, restoreState)
	return nil
}
