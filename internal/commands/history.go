// Dual-stack undo/redo history with linear (non-branching) semantics
package commands

// History keeps the executed commands on an undo stack and the undone ones
// on a redo stack. Pushing a new command discards the redo stack, so once
// a new branch of history is taken the old future is unreachable. A
// command sits on at most one stack at any time.
type History struct {
	undoStack []Command
	redoStack []Command
}

func NewHistory() *History {
	return &History{}
}

// Push appends an executed command to the undo stack and releases every
// command waiting on the redo stack.
func (h *History) Push(cmd Command) {
	h.undoStack = append(h.undoStack, cmd)
	h.clearRedo()
}

// Undo reverts the most recent command and moves it to the redo stack.
// With an empty undo stack it is a silent no-op.
func (h *History) Undo() {
	if len(h.undoStack) == 0 {
		return
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	cmd.Undo()
	h.redoStack = append(h.redoStack, cmd)
}

// Redo re-executes the most recently undone command and moves it back to
// the undo stack. With an empty redo stack it is a silent no-op. Stack
// bookkeeping completes even when re-execution fails; the error is
// returned for the caller to surface.
func (h *History) Redo() error {
	if len(h.redoStack) == 0 {
		return nil
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	err := cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	return err
}

// CanUndo reports whether an undo would have an effect.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo would have an effect.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Reset releases every command on both stacks and empties them.
func (h *History) Reset() {
	for _, cmd := range h.undoStack {
		cmd.Release()
	}
	h.undoStack = nil
	h.clearRedo()
}

func (h *History) clearRedo() {
	for _, cmd := range h.redoStack {
		cmd.Release()
	}
	h.redoStack = nil
}
