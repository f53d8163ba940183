package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/gitz/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionQuit      Action = "quit"
	ActionFocusNext Action = "focus_next"
	ActionHelp      Action = "help"
	ActionRefresh   Action = "refresh"
	ActionTheme     Action = "theme_cycle"

	ActionUp       Action = "up"
	ActionDown     Action = "down"
	ActionLeft     Action = "left"
	ActionRight    Action = "right"
	ActionPageUp   Action = "page_up"
	ActionPageDown Action = "page_down"
	ActionTop      Action = "top"
	ActionBottom   Action = "bottom"

	ActionFilter      Action = "filter"
	ActionSearch      Action = "search"
	ActionSearchNext  Action = "search_next"
	ActionJumpHead    Action = "jump_head"
	ActionCopyHash    Action = "copy_hash"
	ActionFullHistory Action = "full_history"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the application.
type KeyMap struct {
	Quit      key.Binding
	FocusNext key.Binding
	Help      key.Binding
	Refresh   key.Binding
	Theme     key.Binding

	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Filter      key.Binding
	Search      key.Binding
	SearchNext  key.Binding
	JumpHead    key.Binding
	CopyHash    key.Binding
	FullHistory key.Binding
}

var defaults = []bindingDef{
	{ActionQuit, []string{"q", "ctrl+q", "ctrl+w"}, "quit"},
	{ActionFocusNext, []string{"tab", "shift+tab"}, "switch pane"},
	{ActionHelp, []string{"?"}, "help"},
	{ActionRefresh, []string{"r", "f5"}, "reload"},
	{ActionTheme, []string{"t"}, "next theme"},

	{ActionUp, []string{"k", "up"}, "up"},
	{ActionDown, []string{"j", "down"}, "down"},
	{ActionLeft, []string{"h", "left"}, "scroll left"},
	{ActionRight, []string{"l", "right"}, "scroll right"},
	{ActionPageUp, []string{"pgup", "ctrl+u"}, "page up"},
	{ActionPageDown, []string{"pgdown", "ctrl+d", "space"}, "page down"},
	{ActionTop, []string{"g", "home"}, "top"},
	{ActionBottom, []string{"G", "end"}, "bottom"},

	{ActionFilter, []string{"/"}, "filter"},
	{ActionSearch, []string{"ctrl+f"}, "search"},
	{ActionSearchNext, []string{"n", "f3"}, "next match"},
	{ActionJumpHead, []string{"."}, "jump to HEAD"},
	{ActionCopyHash, []string{"y"}, "copy hash"},
	{ActionFullHistory, []string{"f"}, "full commit"},
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	b := make(map[Action]key.Binding, len(defaults))
	for _, def := range defaults {
		b[def.action] = bindingFromDef(cfg, def)
	}
	return KeyMap{
		Quit:      b[ActionQuit],
		FocusNext: b[ActionFocusNext],
		Help:      b[ActionHelp],
		Refresh:   b[ActionRefresh],
		Theme:     b[ActionTheme],

		Up:       b[ActionUp],
		Down:     b[ActionDown],
		Left:     b[ActionLeft],
		Right:    b[ActionRight],
		PageUp:   b[ActionPageUp],
		PageDown: b[ActionPageDown],
		Top:      b[ActionTop],
		Bottom:   b[ActionBottom],

		Filter:      b[ActionFilter],
		Search:      b[ActionSearch],
		SearchNext:  b[ActionSearchNext],
		JumpHead:    b[ActionJumpHead],
		CopyHash:    b[ActionCopyHash],
		FullHistory: b[ActionFullHistory],
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// BindingHint returns a single key hint for a binding, falling back to help text.
func BindingHint(binding key.Binding) string {
	key := PrimaryKey(binding)
	if key == "" {
		return binding.Help().Key
	}
	return key
}

// PairHint joins two bindings with a slash using their primary keys.
func PairHint(a, b key.Binding) string {
	left := BindingHint(a)
	right := BindingHint(b)
	if left == "" {
		return right
	}
	if right == "" {
		return left
	}
	return left + "/" + right
}

// ActionInfo describes a configurable action for UI display.
type ActionInfo struct {
	Action Action
	Desc   string
	Group  string
}

// ActionInfos returns the ordered list of actions for the help overlay.
func ActionInfos() []ActionInfo {
	return []ActionInfo{
		{Action: ActionUp, Desc: "Previous line / commit", Group: "Navigate"},
		{Action: ActionDown, Desc: "Next line / commit", Group: "Navigate"},
		{Action: ActionPageUp, Desc: "Page up", Group: "Navigate"},
		{Action: ActionPageDown, Desc: "Page down", Group: "Navigate"},
		{Action: ActionTop, Desc: "First line", Group: "Navigate"},
		{Action: ActionBottom, Desc: "Last line", Group: "Navigate"},
		{Action: ActionLeft, Desc: "Scroll left", Group: "Navigate"},
		{Action: ActionRight, Desc: "Scroll right", Group: "Navigate"},
		{Action: ActionFocusNext, Desc: "Switch pane", Group: "Navigate"},
		{Action: ActionJumpHead, Desc: "Select HEAD", Group: "History"},
		{Action: ActionFilter, Desc: "Filter history", Group: "History"},
		{Action: ActionCopyHash, Desc: "Copy commit hash", Group: "History"},
		{Action: ActionSearch, Desc: "Search commit view", Group: "Commit"},
		{Action: ActionSearchNext, Desc: "Next match", Group: "Commit"},
		{Action: ActionFullHistory, Desc: "Show full commit", Group: "Commit"},
		{Action: ActionRefresh, Desc: "Reload history", Group: "Global"},
		{Action: ActionTheme, Desc: "Next theme", Group: "Global"},
		{Action: ActionHelp, Desc: "Toggle help", Group: "Global"},
		{Action: ActionQuit, Desc: "Quit", Group: "Global"},
	}
}

// Binding returns the binding for action.
func (km KeyMap) Binding(action Action) key.Binding {
	switch action {
	case ActionQuit:
		return km.Quit
	case ActionFocusNext:
		return km.FocusNext
	case ActionHelp:
		return km.Help
	case ActionRefresh:
		return km.Refresh
	case ActionTheme:
		return km.Theme
	case ActionUp:
		return km.Up
	case ActionDown:
		return km.Down
	case ActionLeft:
		return km.Left
	case ActionRight:
		return km.Right
	case ActionPageUp:
		return km.PageUp
	case ActionPageDown:
		return km.PageDown
	case ActionTop:
		return km.Top
	case ActionBottom:
		return km.Bottom
	case ActionFilter:
		return km.Filter
	case ActionSearch:
		return km.Search
	case ActionSearchNext:
		return km.SearchNext
	case ActionJumpHead:
		return km.JumpHead
	case ActionCopyHash:
		return km.CopyHash
	case ActionFullHistory:
		return km.FullHistory
	}
	return key.Binding{}
}
