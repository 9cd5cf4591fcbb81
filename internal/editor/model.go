package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"topodraw/internal/config"
	"topodraw/internal/document"
	"topodraw/internal/geom"
	"topodraw/internal/routing"
	"topodraw/internal/session"
	"topodraw/internal/topology"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeFileInput
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmDeleteWaypoint
)

// Options seeds a new editor.
type Options struct {
	Config   config.Config
	Store    *topology.Store
	Filename string
	View     document.View
}

// Model is the bubbletea model for the canvas editor. Pointer gestures go
// through the routing engine's sessions; everything else edits the store
// directly and is recorded in History.
type Model struct {
	cfg    config.Config
	keys   keyMap
	styles styles

	store     *topology.Store
	cache     *routing.Cache
	coord     *session.Coordinator
	drag      *session.DragSession
	waypoints *session.WaypointSession
	history   History

	filename string
	width    int
	height   int
	cursorX  int
	cursorY  int
	panX     int
	panY     int
	zPanMode bool
	mode     Mode
	help     bool

	selection []string

	// Pointer gesture state. grab is the pointer's offset from the dragged
	// symbol's top-left; gestureWaypoints holds the waypoints before a
	// waypoint drag for undo.
	grab             geom.Point
	gestureWaypoints []geom.Point

	connectFrom      string
	connectWaypoints []geom.Point

	showLayer2 bool
	showLayer3 bool

	input         textinput.Model
	fileOp        FileOperation
	confirmAction ConfirmAction
	confirmConn   string
	confirmIndex  int

	errorMessage   string
	successMessage string
}

// New builds an editor around opts.Store, or an empty canvas.
func New(opts Options) *Model {
	store := opts.Store
	if store == nil {
		store = topology.NewStore()
	}
	cfg := opts.Config
	if cfg.CellWidth <= 0 || cfg.CellHeight <= 0 {
		cfg.CellWidth, cfg.CellHeight = config.Default().CellWidth, config.Default().CellHeight
	}

	ti := textinput.New()
	ti.CharLimit = 256

	coord := session.NewCoordinator()
	return &Model{
		cfg:        cfg,
		keys:       defaultKeyMap(),
		styles:     defaultStyles(),
		store:      store,
		cache:      routing.NewCache(),
		coord:      coord,
		drag:       session.NewDragSession(store, coord),
		waypoints:  session.NewWaypointSession(store, coord),
		filename:   opts.Filename,
		panX:       int(opts.View.PanX),
		panY:       int(opts.View.PanY),
		showLayer2: true,
		showLayer3: true,
		input:      ti,
	}
}

// Store returns the canvas being edited.
func (m *Model) Store() *topology.Store { return m.store }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			m.help = false
			return m, nil
		}
		switch m.mode {
		case ModeFileInput:
			return m, m.handleFileInput(msg)
		case ModeConfirm:
			return m, m.handleConfirm(msg)
		case ModeMove:
			return m, m.handleMoveKey(msg)
		default:
			return m, m.handleNormalKey(msg)
		}
	}
	return m, nil
}

// viewport returns the canvas area of the current frame.
func (m *Model) viewport() Viewport {
	return Viewport{
		Cols:  max(m.width, 1),
		Rows:  max(m.height-1, 1),
		PanX:  m.panX,
		PanY:  m.panY,
		CellW: m.cfg.CellWidth,
		CellH: m.cfg.CellHeight,
	}
}

// frame renders every connection and splits them by layer. The cache makes
// this cheap when nothing moved since the previous call.
func (m *Model) frame() (routing.Partition, []routing.RenderedConnection) {
	rendered := m.cache.Render(m.store)
	p := routing.PartitionLayers(rendered, m.store.Connections())
	return p, p.Visible(m.showLayer2, m.showLayer3)
}

func (m *Model) scene() Scene {
	p, visible := m.frame()
	sc := Scene{
		Symbols:     m.store.Symbols(),
		Connections: visible,
		Layer2:      make(map[string]bool, len(p.Layer2)),
		Selected:    make(map[string]bool, len(m.selection)),
	}
	for _, rc := range p.Layer2 {
		sc.Layer2[rc.ID] = true
	}
	for _, id := range m.selection {
		sc.Selected[id] = true
	}
	if d, ok := m.waypoints.Active(); ok {
		sc.ActiveWaypoint = &d
	}
	if m.connectFrom != "" {
		if sym, ok := m.store.Symbol(m.connectFrom); ok {
			sc.Preview = append(sc.Preview, sym.Bounds().Center())
			sc.Preview = append(sc.Preview, m.connectWaypoints...)
			sc.Preview = append(sc.Preview, m.cursorPoint())
		}
	}
	return sc
}

func (m *Model) View() string {
	if m.help {
		return m.helpView()
	}

	lines := Rasterize(m.viewport(), m.scene())
	if m.cursorY >= 0 && m.cursorY < len(lines) {
		lines[m.cursorY] = m.withCursor(lines[m.cursorY])
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *Model) withCursor(line string) string {
	runes := []rune(line)
	if m.cursorX < 0 || m.cursorX >= len(runes) {
		return line
	}
	return string(runes[:m.cursorX]) +
		m.styles.Cursor.Render(string(runes[m.cursorX])) +
		string(runes[m.cursorX+1:])
}

func (m *Model) statusLine() string {
	switch m.mode {
	case ModeFileInput:
		prompt := "Save as: "
		if m.fileOp == FileOpSavePNG {
			prompt = "Export PNG to: "
		}
		return m.styles.PromptText.Render(prompt) + m.input.View()
	case ModeConfirm:
		return m.styles.PromptText.Render(m.confirmPrompt() + " (y/n)")
	}

	modeStr := m.mode.String()
	if m.zPanMode {
		modeStr += " PAN"
	}
	status := fmt.Sprintf(" Cursor: (%d,%d)", m.cursorX+m.panX, m.cursorY+m.panY)
	if m.connectFrom != "" {
		status += fmt.Sprintf(" | Connecting from %s (%d waypoints)", m.connectFrom, len(m.connectWaypoints))
	}
	if len(m.selection) > 0 {
		status += fmt.Sprintf(" | Selected: %s", strings.Join(m.selection, ","))
	}
	status += " | Layers:" + layerFlag("2", m.showLayer2) + layerFlag("3", m.showLayer3)

	line := m.styles.Mode.Render(modeStr) + m.styles.Status.Render(status)
	switch {
	case m.errorMessage != "":
		line += " " + m.styles.Error.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		line += " " + m.styles.Success.Render(m.successMessage)
	default:
		line += " " + m.styles.Muted.Render("? for help | q to quit")
	}
	return line
}

func layerFlag(name string, on bool) string {
	if on {
		return " " + name
	}
	return " -"
}

func (m *Model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmDeleteWaypoint:
		return fmt.Sprintf("Delete waypoint %d of %s?", m.confirmIndex, m.confirmConn)
	default:
		return "Quit topodraw?"
	}
}

func (m *Model) helpView() string {
	var b strings.Builder
	b.WriteString(m.styles.HelpTitle.Render("topodraw help"))
	b.WriteString("\n")
	for _, group := range m.keys.helpGroups() {
		b.WriteString("\n")
		b.WriteString(m.styles.HelpTitle.Render(group.Title))
		b.WriteString("\n")
		for _, kb := range group.Bindings {
			h := kb.Help()
			b.WriteString("  ")
			b.WriteString(m.styles.HelpKey.Render(h.Key))
			b.WriteString(m.styles.HelpDesc.Render(h.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\nMouse: drag a symbol to move it and the selection, drag a ●\n")
	b.WriteString("waypoint to reshape a link, right-click a waypoint to delete it.\n")
	b.WriteString(m.styles.Muted.Render("\nPress any key to close"))
	return b.String()
}

func (m *Model) setError(format string, args ...any) {
	m.errorMessage = fmt.Sprintf(format, args...)
	m.successMessage = ""
}

func (m *Model) setSuccess(format string, args ...any) {
	m.successMessage = fmt.Sprintf(format, args...)
	m.errorMessage = ""
}

func (m *Model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}
