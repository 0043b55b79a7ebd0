package probe

import (
	"fmt"
	"slices"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/d3d11"
)

// Report summarizes a run.
type Report struct {
	Plan         string
	Iterations   int
	CommandLists int

	// Mismatches lists state read back from the deferred context that
	// differs from what the plan bound.
	Mismatches []string
}

// OK reports whether every read-back matched.
func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

// Run executes plan on dev. Each iteration binds the plan's state on a
// deferred context, reads it back, captures a command list and executes
// it on the immediate context.
func Run(dev *d3d11.Device, plan *Plan) (*Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	imm, err := dev.ImmediateContext()
	if err != nil {
		return nil, fmt.Errorf("immediate context: %w", err)
	}
	defer imm.Release()

	def, err := dev.CreateDeferredContext()
	if err != nil {
		return nil, fmt.Errorf("deferred context: %w", err)
	}
	defer def.Release()

	vps := plan.viewports()
	rects := plan.scissorRects()
	report := &Report{Plan: plan.Name}

	var reused d3d11.CommandList
	defer func() {
		if !reused.Empty() {
			_ = reused.Release()
		}
	}()

	for i := 0; i < plan.Repeat; i++ {
		if plan.ClearState {
			if err := def.ClearState(); err != nil {
				return report, err
			}
		}
		if err := def.RSSetViewports(vps...); err != nil {
			return report, err
		}
		if err := def.RSSetScissorRects(rects...); err != nil {
			return report, err
		}
		if err := verify(def, vps, rects, i, report); err != nil {
			return report, err
		}

		if plan.ReuseList {
			if r := def.FinishCommandListInto(plan.RestoreState, &reused); r.Failed() {
				return report, r.Err("FinishCommandList")
			}
			if err := imm.ExecuteCommandList(&reused, false); err != nil {
				return report, err
			}
		} else {
			list, err := def.FinishCommandList(plan.RestoreState)
			if err != nil {
				return report, err
			}
			err = imm.ExecuteCommandList(list, false)
			_ = list.Release()
			if err != nil {
				return report, err
			}
		}
		report.CommandLists++
		report.Iterations++
	}

	dxbind.Logger().Info("probe: plan finished",
		"plan", plan.Name, "iterations", report.Iterations, "mismatches", len(report.Mismatches))
	return report, nil
}

func verify(ctx *d3d11.DeviceContext, vps []d3d11.Viewport, rects []d3d11.Rect, iter int, report *Report) error {
	gotVPs, err := ctx.RSGetViewports()
	if err != nil {
		return err
	}
	if !slices.Equal(gotVPs, vps) {
		report.Mismatches = append(report.Mismatches,
			fmt.Sprintf("iteration %d: viewports %v, want %v", iter, gotVPs, vps))
	}
	gotRects, err := ctx.RSGetScissorRects()
	if err != nil {
		return err
	}
	if !slices.Equal(gotRects, rects) {
		report.Mismatches = append(report.Mismatches,
			fmt.Sprintf("iteration %d: scissor rects %v, want %v", iter, gotRects, rects))
	}
	return nil
}
