// Package nav is the navigation state machine: it consumes key events,
// mutates selection/breadcrumb/expansion state, and emits effects for the
// runtime to apply. It never touches the terminal or the config store itself.
package nav

import "shellmate/internal/menu"

// EffectKind discriminates the effect union handed back to the runtime.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectActivate
	EffectToggleSet
	EffectExpand
	EffectCollapse
	EffectNavigateBack
	EffectExit
	EffectRequestConfirmation
	EffectNotice
)

// Effect is the controller's output. Path is absolute (from the tree root)
// so the runtime can apply toggle writes without re-deriving view state.
type Effect struct {
	Kind        EffectKind
	Action      menu.ActionID
	Path        []int
	ConfigKey   string
	Value       bool
	NodeID      string
	Destructive bool
	Notice      string
}

func (k EffectKind) String() string {
	switch k {
	case EffectActivate:
		return "activate"
	case EffectToggleSet:
		return "toggle-set"
	case EffectExpand:
		return "expand"
	case EffectCollapse:
		return "collapse"
	case EffectNavigateBack:
		return "navigate-back"
	case EffectExit:
		return "exit"
	case EffectRequestConfirmation:
		return "request-confirmation"
	case EffectNotice:
		return "notice"
	default:
		return "none"
	}
}
