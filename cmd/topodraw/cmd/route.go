package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"topodraw/internal/editor"
	"topodraw/internal/routing"
)

var routeID string

var routeCmd = &cobra.Command{
	Use:   "route <file>",
	Short: "Print rendered connection geometry",
	Long: `Print the rendered points of every drawable connection, one per line:

  <id> <style> x,y x,y ...

Connections whose symbols are missing are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringVar(&routeID, "id", "", "only print this connection")
}

func runRoute(cmd *cobra.Command, args []string) error {
	store, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	if routeID != "" {
		c, ok := store.Connection(routeID)
		if !ok {
			return fmt.Errorf("connection %q not found", routeID)
		}
		rc, ok := routing.RenderConnection(c, store)
		if !ok {
			return fmt.Errorf("connection %q is not drawable", routeID)
		}
		fmt.Fprintln(cmd.OutOrStdout(), editor.FormatRoute(rc))
		return nil
	}

	for _, rc := range routing.RenderConnections(store, store.Connections()) {
		fmt.Fprintln(cmd.OutOrStdout(), editor.FormatRoute(rc))
	}
	return nil
}
