package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"topodraw/internal/config"
	"topodraw/internal/document"
	"topodraw/internal/topology"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "topodraw",
	Short: "Network topology diagrams in the terminal",
	Long: `topodraw draws network topologies: devices, free shapes and the
links between them, routed straight or orthogonally with optional waypoints.

Examples:
  topodraw edit lab.toml                 # Open the canvas editor
  topodraw route lab.toml --id uplink    # Print one link's rendered points
  topodraw layers lab.toml               # List links by layer
  topodraw export lab.toml lab.png       # Render to PNG`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetOutput(os.Stderr)
			log.SetFlags(log.LstdFlags | log.Lmicroseconds)
			return
		}
		log.SetOutput(io.Discard)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "topodraw: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/topodraw/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	log.Printf("config: save_dir=%q style=%s layer=%s", cfg.SaveDirectory, cfg.DefaultStyle, cfg.DefaultLayer)
	return cfg, nil
}

func loadDocument(path string) (*topology.Store, error) {
	store, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %s: %d symbols, %d connections", path, len(store.Symbols()), len(store.Connections()))
	return store, nil
}
