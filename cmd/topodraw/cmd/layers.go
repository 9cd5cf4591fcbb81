package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"topodraw/internal/routing"
	"topodraw/internal/topology"
)

var layersCmd = &cobra.Command{
	Use:   "layers <file>",
	Short: "List drawable connections by layer",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayers,
}

func init() {
	rootCmd.AddCommand(layersCmd)
}

func runLayers(cmd *cobra.Command, args []string) error {
	store, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	conns := store.Connections()
	p := routing.PartitionLayers(routing.RenderConnections(store, conns), conns)

	out := cmd.OutOrStdout()
	printLayer(out, topology.Layer2, p.Layer2)
	printLayer(out, topology.Layer3, p.Layer3)
	return nil
}

func printLayer(w io.Writer, layer topology.Layer, rendered []routing.RenderedConnection) {
	fmt.Fprintf(w, "%s (%d)\n", layer, len(rendered))
	for _, rc := range rendered {
		fmt.Fprintf(w, "  %s\n", rc.ID)
	}
}
