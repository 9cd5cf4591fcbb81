package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"topodraw/internal/document"
	"topodraw/internal/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Open the canvas editor",
	Long: `Open the terminal canvas editor. A file that does not exist yet is
created on the first save.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := editor.Options{Config: cfg}
	if len(args) == 1 {
		opts.Filename = cfg.SavePath(args[0])
		store, view, err := document.LoadWithView(opts.Filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("%s does not exist, starting empty", opts.Filename)
		case err != nil:
			return err
		default:
			opts.Store, opts.View = store, view
		}
	}

	// The terminal belongs to the editor, so logs go to a file or nowhere.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "topodraw")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(
		editor.New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
