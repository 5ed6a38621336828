// Command pattern wrapping processor invocations with snapshot-based undo
package commands

import (
	"fmt"

	"gocv.io/x/gocv"

	"imaging-workbench/internal/processing"
)

// Controller is the surface a command needs from its owning window: two
// named image slots and per-slot refresh triggers. Slot accessors follow
// clone-in/clone-out semantics; returned Mats are owned by the caller.
type Controller interface {
	Source() gocv.Mat
	SetSource(mat gocv.Mat)
	HasSource() bool
	ClearSource()
	RefreshSource()

	Output() gocv.Mat
	SetOutput(mat gocv.Mat)
	HasOutput() bool
	ClearOutput()
	RefreshOutput()
}

// Command is one applied (or applicable) operation. Execute recomputes the
// output from the controller's current source; Undo restores the snapshot
// taken at construction. Release frees owned snapshots and is called
// exactly once, when the command is evicted from history.
type Command interface {
	Execute() error
	Undo()
	Release()
}

// Apply runs one processor against the current source image and writes the
// result into the output slot. A single parameterized type covers all nine
// transformations; the shared snapshot/restore logic lives here.
type Apply struct {
	ctrl     Controller
	kind     processing.Kind
	prior    gocv.Mat
	hadPrior bool
}

// NewApply snapshots the controller's current output and binds the
// processor kind to run on execute. The snapshot never changes afterwards.
func NewApply(ctrl Controller, kind processing.Kind) *Apply {
	cmd := &Apply{
		ctrl:  ctrl,
		kind:  kind,
		prior: gocv.NewMat(),
	}
	if ctrl.HasOutput() {
		cmd.prior.Close()
		cmd.prior = ctrl.Output()
		cmd.hadPrior = true
	}
	return cmd
}

func (c *Apply) Execute() error {
	if !c.ctrl.HasSource() {
		return fmt.Errorf("%s: no source image loaded", c.kind)
	}

	proc, err := processing.New(c.kind)
	if err != nil {
		return err
	}

	src := c.ctrl.Source()
	defer src.Close()

	out, err := proc.Process(src)
	if err != nil {
		return fmt.Errorf("%s failed: %w", c.kind, err)
	}
	defer out.Close()

	c.ctrl.SetOutput(out)
	c.ctrl.RefreshOutput()
	return nil
}

func (c *Apply) Undo() {
	if c.hadPrior {
		c.ctrl.SetOutput(c.prior)
	} else {
		c.ctrl.ClearOutput()
	}
	c.ctrl.RefreshOutput()
}

func (c *Apply) Release() {
	if !c.prior.Empty() {
		c.prior.Close()
	}
}

// Kind returns the transformation this command applies.
func (c *Apply) Kind() processing.Kind {
	return c.kind
}
