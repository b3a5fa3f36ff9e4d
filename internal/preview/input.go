package preview

import "github.com/gdamore/tcell/v2"

// Action is a viewer command.
type Action uint8

const (
	ActionNone Action = iota
	ActionRegenerate
	ActionTogglePath
	ActionNextTheme
	ActionQuit
)

// keyToAction maps a tcell key event to a viewer action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEnter:
		return ActionRegenerate
	}

	switch ev.Rune() {
	case 'r', 'R', ' ':
		return ActionRegenerate
	case 'p', 'P':
		return ActionTogglePath
	case 't', 'T':
		return ActionNextTheme
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
