package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	errs "github.com/matzehuels/jsoninvert/pkg/errors"
	"github.com/matzehuels/jsoninvert/pkg/invert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Input != "lables.json" {
		t.Errorf("Input = %q, want %q", cfg.Input, "lables.json")
	}
	if cfg.Output != "reversed.json" {
		t.Errorf("Output = %q, want %q", cfg.Output, "reversed.json")
	}
	if want := invert.DefaultOptions().Indent; cfg.Indent != want {
		t.Errorf("Indent = %d, want %d", cfg.Indent, want)
	}
	if cfg.Verbose {
		t.Error("Verbose should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Config
		wantErr bool
	}{
		{
			name: "empty keeps defaults",
			data: "",
			want: Default(),
		},
		{
			name: "partial override",
			data: `output = "out/inverted.json"`,
			want: Config{Input: DefaultInput, Output: "out/inverted.json", Indent: invert.DefaultIndent},
		},
		{
			name: "full override",
			data: "input = \"a.json\"\noutput = \"b.json\"\nindent = 2\nverbose = true\n",
			want: Config{Input: "a.json", Output: "b.json", Indent: 2, Verbose: true},
		},
		{
			name: "zero indent allowed",
			data: "indent = 0",
			want: Config{Input: DefaultInput, Output: DefaultOutput, Indent: 0},
		},
		{name: "negative indent", data: "indent = -2", wantErr: true},
		{name: "huge indent", data: "indent = 100", wantErr: true},
		{name: "empty input", data: `input = ""`, wantErr: true},
		{name: "unknown key", data: `policy = "first"`, wantErr: true},
		{name: "wrong type", data: `indent = "four"`, wantErr: true},
		{name: "syntax error", data: `input = `, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errs.Is(err, errs.ErrCodeInvalidConfig) {
					t.Errorf("Parse() code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidConfig)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/etc/jsoninvert.toml", []byte("indent = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fsys, "/etc/jsoninvert.toml", false)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Indent != 2 {
		t.Errorf("Indent = %d, want 2", cfg.Indent)
	}
	if cfg.Input != DefaultInput {
		t.Errorf("Input = %q, want %q", cfg.Input, DefaultInput)
	}
}

func TestLoadMissing(t *testing.T) {
	fsys := afero.NewMemMapFs()

	cfg, err := Load(fsys, "/nope.toml", true)
	if err != nil {
		t.Fatalf("Load(optional) error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(optional) = %+v, want defaults", cfg)
	}

	_, err = Load(fsys, "/nope.toml", false)
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Load(required) error = %v, want %v", err, errs.ErrCodeFileNotFound)
	}

	cfg, err = Load(fsys, "", false)
	if err != nil || cfg != Default() {
		t.Errorf("Load(\"\") = %+v, %v, want defaults", cfg, err)
	}
}

func TestLoadInvalid(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/bad.toml", []byte("indent = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(fsys, "/bad.toml", true)
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want %v", err, errs.ErrCodeInvalidConfig)
	}
	if !strings.Contains(err.Error(), "/bad.toml") {
		t.Errorf("Load() error %q should name the file", err)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if want := filepath.Join("/custom/config", AppName); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	if want := filepath.Join("/custom/config", AppName, FileName); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestDirDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}
