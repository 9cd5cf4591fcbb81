package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"topodraw/internal/export"
)

var exportOpts struct {
	scale      float64
	padding    float64
	hideLayer2 bool
	hideLayer3 bool
	noArrows   bool
}

var exportCmd = &cobra.Command{
	Use:   "export <file> <png>",
	Short: "Render a topology to PNG",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	f := exportCmd.Flags()
	f.Float64Var(&exportOpts.scale, "scale", 1, "pixels per logical unit")
	f.Float64Var(&exportOpts.padding, "padding", 20, "margin around the drawing in logical units")
	f.BoolVar(&exportOpts.hideLayer2, "hide-layer2", false, "leave out layer2 connections")
	f.BoolVar(&exportOpts.hideLayer3, "hide-layer3", false, "leave out layer3 connections")
	f.BoolVar(&exportOpts.noArrows, "no-arrows", false, "do not draw arrowheads at targets")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	opts := export.Options{
		Scale:      exportOpts.scale,
		Padding:    exportOpts.padding,
		HideLayer2: exportOpts.hideLayer2,
		HideLayer3: exportOpts.hideLayer3,
		Arrows:     !exportOpts.noArrows,
	}
	if err := export.PNG(args[1], store, opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
	return nil
}
