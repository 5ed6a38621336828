// Administrative commands for the two image slots
package commands

import "gocv.io/x/gocv"

// ClearSource empties the source slot. The prior source is snapshotted at
// construction, so the command is fully reversible.
type ClearSource struct {
	ctrl     Controller
	prior    gocv.Mat
	hadPrior bool
}

func NewClearSource(ctrl Controller) *ClearSource {
	cmd := &ClearSource{
		ctrl:  ctrl,
		prior: gocv.NewMat(),
	}
	if ctrl.HasSource() {
		cmd.prior.Close()
		cmd.prior = ctrl.Source()
		cmd.hadPrior = true
	}
	return cmd
}

func (c *ClearSource) Execute() error {
	c.ctrl.ClearSource()
	c.ctrl.RefreshSource()
	return nil
}

func (c *ClearSource) Undo() {
	if c.hadPrior {
		c.ctrl.SetSource(c.prior)
	} else {
		c.ctrl.ClearSource()
	}
	c.ctrl.RefreshSource()
}

func (c *ClearSource) Release() {
	if !c.prior.Empty() {
		c.prior.Close()
	}
}

// ClearOutput empties the output slot. No snapshot is taken, so undo is an
// explicit no-op: once the output is cleared its effect is not reversible.
// This asymmetry with ClearSource is intentional.
type ClearOutput struct {
	ctrl Controller
}

func NewClearOutput(ctrl Controller) *ClearOutput {
	return &ClearOutput{ctrl: ctrl}
}

func (c *ClearOutput) Execute() error {
	c.ctrl.ClearOutput()
	c.ctrl.RefreshOutput()
	return nil
}

func (c *ClearOutput) Undo() {}

func (c *ClearOutput) Release() {}
