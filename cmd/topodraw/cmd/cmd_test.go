package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"topodraw/internal/document"
	"topodraw/internal/geom"
	"topodraw/internal/topology"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	s := topology.NewStore()
	_ = s.AddSymbol(topology.NewDevice("r1", "core", geom.Pt(0, 0)))
	_ = s.AddSymbol(topology.NewDevice("r2", "edge", geom.Pt(200, 0)))
	_ = s.AddSymbol(topology.NewDevice("sw1", "access", geom.Pt(100, 300)))
	_ = s.AddConnection(topology.Connection{ID: "c1", SourceID: "r1", TargetID: "r2"})
	_ = s.AddConnection(topology.Connection{ID: "c2", SourceID: "r2", TargetID: "sw1",
		Style: topology.Orthogonal, Layer: topology.Layer2})
	_ = s.AddConnection(topology.Connection{ID: "c3", SourceID: "r1", TargetID: "gone"})

	path := filepath.Join(t.TempDir(), "lab.toml")
	if err := document.Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	routeID = ""
	exportOpts.scale, exportOpts.padding = 1, 20
	exportOpts.hideLayer2, exportOpts.hideLayer3, exportOpts.noArrows = false, false, false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRouteCommand(t *testing.T) {
	path := writeFixture(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name: "all drawable",
			args: []string{"route", path},
			want: []string{
				"c1 straight 60,30 200,30",
				"c2 orthogonal 230,60 230,180 130,180 130,300",
			},
		},
		{
			name: "single",
			args: []string{"route", path, "--id", "c2"},
			want: []string{"c2 orthogonal 230,60 230,180 130,180 130,300"},
		},
		{
			name:    "dangling",
			args:    []string{"route", path, "--id", "c3"},
			wantErr: "not drawable",
		},
		{
			name:    "unknown",
			args:    []string{"route", path, "--id", "nope"},
			wantErr: "not found",
		},
		{
			name:    "missing file",
			args:    []string{"route", filepath.Join(t.TempDir(), "none.toml")},
			wantErr: "read document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := strings.Split(strings.TrimSpace(out), "\n")
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Fatalf("output:\n%s\nwant:\n%s", out, strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestLayersCommand(t *testing.T) {
	out, err := execute(t, "layers", writeFixture(t))
	if err != nil {
		t.Fatalf("layers: %v", err)
	}
	want := "layer2 (1)\n  c2\nlayer3 (1)\n  c1\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestExportCommand(t *testing.T) {
	src := writeFixture(t)
	dst := filepath.Join(t.TempDir(), "out", "lab.png")

	out, err := execute(t, "export", src, dst, "--hide-layer2")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "wrote "+dst) {
		t.Fatalf("output = %q", out)
	}
	info, err := os.Stat(dst)
	if err != nil || info.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}
}

func TestExportCommand_Empty(t *testing.T) {
	src := filepath.Join(t.TempDir(), "empty.toml")
	if err := document.Save(src, topology.NewStore()); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "export", src, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Fatal("exporting an empty canvas succeeded")
	}
}
