package state

import "fmt"

// Action names a tool-selection request coming from a menu or toolbar.
type Action uint8

const (
	ActionSetColor Action = iota + 1
	ActionSetBrushWidth
	ActionSetEraser
	ActionSetBlur // enables blur with the given kind
	ActionDisableBlur
	ActionResetBrush
	ActionUndo
	ActionClear
)

func (a Action) String() string {
	switch a {
	case ActionSetColor:
		return "set_color"
	case ActionSetBrushWidth:
		return "set_brush_width"
	case ActionSetEraser:
		return "set_eraser"
	case ActionSetBlur:
		return "set_blur"
	case ActionDisableBlur:
		return "disable_blur"
	case ActionResetBrush:
		return "reset_brush"
	case ActionUndo:
		return "undo"
	case ActionClear:
		return "clear"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Command carries an Action and the argument it needs, if any.
type Command struct {
	Action Action
	Color  string // ActionSetColor
	Width  int    // ActionSetBrushWidth, ActionSetEraser
	Blur   BlurKind
}

// Dispatch applies cmd to the canvas. Rejected commands are logged at Warn.
func (c *Canvas) Dispatch(cmd Command) error {
	Logger().Debug("dispatch", "action", cmd.Action)
	if err := c.apply(cmd); err != nil {
		Logger().Warn("command rejected", "action", cmd.Action, "error", err)
		return err
	}
	return nil
}

func (c *Canvas) apply(cmd Command) error {
	switch cmd.Action {
	case ActionSetColor:
		return c.SetColor(cmd.Color)
	case ActionSetBrushWidth:
		return c.SetBrushWidth(cmd.Width)
	case ActionSetEraser:
		return c.SetEraser(cmd.Width)
	case ActionSetBlur:
		if err := c.SetBlurKind(cmd.Blur); err != nil {
			return err
		}
		c.SetBlurEnabled(true)
	case ActionDisableBlur:
		c.SetBlurEnabled(false)
	case ActionResetBrush:
		c.ResetToDefaultBrush()
	case ActionUndo:
		c.Undo()
	case ActionClear:
		c.Clear()
	default:
		return fmt.Errorf("state: dispatch: unknown action %v", cmd.Action)
	}
	return nil
}
