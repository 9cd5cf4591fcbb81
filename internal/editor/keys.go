package editor

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the editor's keyboard bindings.
type keyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding

	// Navigation
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	PanMode  key.Binding
	FastMove key.Binding

	// Canvas editing
	AddDevice      key.Binding
	AddShape       key.Binding
	Connect        key.Binding
	Select         key.Binding
	Move           key.Binding
	ToggleStyle    key.Binding
	ToggleLayer    key.Binding
	ShowLayer2     key.Binding
	ShowLayer3     key.Binding
	InsertWaypoint key.Binding
	DeleteWaypoint key.Binding
	CopyRoute      key.Binding

	// History
	Undo key.Binding
	Redo key.Binding

	// Files
	Save      key.Binding
	ExportPNG key.Binding

	// Prompts
	Confirm key.Binding
	Deny    key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear selection / cancel"),
		),

		Left: key.NewBinding(
			key.WithKeys("h", "left", "H", "shift+left"),
			key.WithHelp("h/←", "Cursor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right", "L", "shift+right"),
			key.WithHelp("l/→", "Cursor right"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up", "K", "shift+up"),
			key.WithHelp("k/↑", "Cursor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down", "J", "shift+down"),
			key.WithHelp("j/↓", "Cursor down"),
		),
		PanMode: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "Toggle pan mode"),
		),
		FastMove: key.NewBinding(
			key.WithKeys("H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down"),
			key.WithHelp("shift+dir", "Move 2x faster"),
		),

		AddDevice: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Add device at cursor"),
		),
		AddShape: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Add shape at cursor"),
		),
		Connect: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Start/finish connection, waypoint on empty space"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle symbol in selection"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Move symbol (and selection) under cursor"),
		),
		ToggleStyle: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Toggle straight/orthogonal routing"),
		),
		ToggleLayer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Toggle layer2/layer3 tag"),
		),
		ShowLayer2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Show/hide layer2"),
		),
		ShowLayer3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Show/hide layer3"),
		),
		InsertWaypoint: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Insert waypoint at cursor"),
		),
		DeleteWaypoint: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete waypoint under cursor"),
		),
		CopyRoute: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy route geometry"),
		),

		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "Redo"),
		),

		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Save"),
		),
		ExportPNG: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Export PNG"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y/enter", "Confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "Cancel"),
		),
	}
}

// helpGroups orders bindings for the help screen.
func (k keyMap) helpGroups() []struct {
	Title    string
	Bindings []key.Binding
} {
	return []struct {
		Title    string
		Bindings []key.Binding
	}{
		{"Navigation", []key.Binding{k.Left, k.Right, k.Up, k.Down, k.FastMove, k.PanMode}},
		{"Symbols", []key.Binding{k.AddDevice, k.AddShape, k.Select, k.Move}},
		{"Connections", []key.Binding{k.Connect, k.ToggleStyle, k.ToggleLayer, k.ShowLayer2, k.ShowLayer3, k.InsertWaypoint, k.DeleteWaypoint, k.CopyRoute}},
		{"Files", []key.Binding{k.Save, k.ExportPNG}},
		{"General", []key.Binding{k.Undo, k.Redo, k.Escape, k.Help, k.Quit}},
	}
}
