// Package config loads topodraw editor settings.
//
// Settings live in ~/.config/topodraw/config.toml unless a path is given.
// A missing file is not an error: Load returns Default(). Every field is
// optional and empty or non-positive values keep their default.
//
//	save_dir      = "~/diagrams"
//	default_style = "orthogonal"
//	default_layer = "layer2"
//	cell_width    = 10
//	cell_height   = 20
//	confirmations = false
//	log_file      = "~/.local/share/topodraw/editor.log"
//
// Paths starting with a tilde are expanded against the home directory and
// made absolute.
package config
