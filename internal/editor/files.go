package editor

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"topodraw/internal/document"
	"topodraw/internal/export"
	"topodraw/internal/routing"
)

func (m *Model) startFileInput(op FileOperation) tea.Cmd {
	m.mode = ModeFileInput
	m.fileOp = op

	name := strings.TrimSuffix(filepath.Base(m.filename), filepath.Ext(m.filename))
	if m.filename == "" {
		name = "topology"
	}
	m.input.Placeholder = name
	m.input.SetValue(name)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) handleFileInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.input.Blur()
		return nil
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.input.Blur()
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.setError("filename is empty")
			return nil
		}
		switch m.fileOp {
		case FileOpSavePNG:
			m.exportPNG(withExt(name, ".png"))
		default:
			m.save(withExt(name, ".toml"))
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func withExt(name, ext string) string {
	if strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return name + ext
}

func (m *Model) save(name string) {
	path := m.cfg.SavePath(name)
	view := document.View{PanX: float64(m.panX), PanY: float64(m.panY)}
	if err := document.SaveWithView(path, m.store, view); err != nil {
		log.Printf("save %s: %v", path, err)
		m.setError("save failed: %v", err)
		return
	}
	m.filename = path
	m.setSuccess("saved %s", path)
}

func (m *Model) exportPNG(name string) {
	path := m.cfg.SavePath(name)
	opts := export.Options{
		HideLayer2: !m.showLayer2,
		HideLayer3: !m.showLayer3,
		Arrows:     true,
	}
	if err := export.PNG(path, m.store, opts); err != nil {
		if !errors.Is(err, export.ErrEmpty) {
			log.Printf("export %s: %v", path, err)
		}
		m.setError("export failed: %v", err)
		return
	}
	m.setSuccess("exported %s", path)
}

// copyRoute puts the rendered vertices of the connection under the cursor
// on the system clipboard.
func (m *Model) copyRoute() {
	rc, ok := m.connectionNear(m.cursorPoint())
	if !ok {
		m.setError("no connection under cursor")
		return
	}
	if err := clipboard.WriteAll(FormatRoute(rc)); err != nil {
		log.Printf("clipboard: %v", err)
		m.setError("copy failed: %v", err)
		return
	}
	m.setSuccess("copied %s", rc.ID)
}

// FormatRoute renders a connection as "id style x,y x,y ...".
func FormatRoute(rc routing.RenderedConnection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", rc.ID, rc.Style)
	for _, p := range routing.Vertices(rc.Points) {
		fmt.Fprintf(&b, " %g,%g", p.X, p.Y)
	}
	return b.String()
}
