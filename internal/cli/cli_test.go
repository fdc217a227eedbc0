package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/acotour/pkg/aco"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join("/tmp/xdg-cache", "acotour"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}

		// Verify the expected structure: $HOME/.cache/acotour
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".cache", "acotour")
		if dir != expected {
			t.Errorf("cacheDir() = %q, want %q", dir, expected)
		}
	})
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"png", []string{"png"}},
		{"png,svg", []string{"png", "svg"}},
		{" png , json ,", []string{"png", "json"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"single with extension", "tour.png", []string{"png"}, map[string]string{"png": "tour.png"}},
		{"single without extension", "out/tour", []string{"svg"}, map[string]string{"svg": "out/tour.svg"}},
		{"multiple share base", "tour.png", []string{"png", "json"}, map[string]string{"png": "tour.png", "json": "tour.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPaths(tt.output, tt.formats); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	if got := baseName("data/cities.txt"); got != "cities" {
		t.Errorf("baseName() = %q, want cities", got)
	}
}

func TestDisplayURL(t *testing.T) {
	if got := displayURL(":8080"); got != "http://localhost:8080" {
		t.Errorf("displayURL(:8080) = %q", got)
	}
	if got := displayURL("0.0.0.0:9000"); got != "http://0.0.0.0:9000" {
		t.Errorf("displayURL(0.0.0.0:9000) = %q", got)
	}
}

func TestSolverFlagsApply(t *testing.T) {
	var f solverFlags
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	f.register(cmd)
	if err := cmd.ParseFlags([]string{"--ants", "4", "--seed", "9", "--closing-edge"}); err != nil {
		t.Fatal(err)
	}

	base := aco.DefaultOptions()
	base.NumIterations = 500 // e.g. from the config file
	got := f.apply(cmd, base)

	if got.NumAnts != 4 || got.Seed != 9 || !got.IncludeClosingEdge {
		t.Errorf("set flags not applied: %+v", got)
	}
	if got.NumIterations != 500 {
		t.Errorf("NumIterations = %d, unset flags must keep the base value", got.NumIterations)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	got := strings.Join(names, ",")
	for _, want := range []string{"solve", "render", "serve", "runs", "cache", "config", "completion"} {
		if !strings.Contains(got, want) {
			t.Errorf("root command missing %q (have %s)", want, got)
		}
	}
}
