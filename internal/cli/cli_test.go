package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	errs "github.com/matzehuels/jsoninvert/pkg/errors"
)

// testCLI builds a CLI on an in-memory filesystem and captures its output.
func testCLI(t *testing.T) (*CLI, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", "/config")

	var out, logs bytes.Buffer
	c := New(&out, &logs, LogInfo)
	c.Fs = afero.NewMemMapFs()
	return c, &out, &logs
}

func execute(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestConvertDefaults(t *testing.T) {
	c, out, _ := testCLI(t)
	writeFile(t, c.Fs, "lables.json", `{"cat": "0", "dog": "1"}`)

	if err := execute(c, "convert"); err != nil {
		t.Fatalf("convert error: %v", err)
	}

	want := "{\n    \"0\": \"cat\",\n    \"1\": \"dog\"\n}"
	if got := readFile(t, c.Fs, "reversed.json"); got != want {
		t.Errorf("reversed.json = %q, want %q", got, want)
	}

	got := lines(out.String())
	if len(got) != 1 {
		t.Fatalf("diagnostics = %q, want one line", got)
	}
	if !strings.Contains(got[0], "Inverted JSON saved to") || !strings.Contains(got[0], "reversed.json") {
		t.Errorf("success line = %q, should name the output path", got[0])
	}
}

func TestConvertArgsOverrideDefaults(t *testing.T) {
	c, out, _ := testCLI(t)
	writeFile(t, c.Fs, "in.json", `{"a": "x"}`)

	if err := execute(c, "convert", "in.json", "out.json", "--indent", "2"); err != nil {
		t.Fatalf("convert error: %v", err)
	}

	if got := readFile(t, c.Fs, "out.json"); got != "{\n  \"x\": \"a\"\n}" {
		t.Errorf("out.json = %q", got)
	}
	if !strings.Contains(out.String(), "out.json") {
		t.Errorf("output %q should name out.json", out.String())
	}
	if exists, _ := afero.Exists(c.Fs, "reversed.json"); exists {
		t.Error("default output should not be written")
	}
}

func TestConvertReportsCollisions(t *testing.T) {
	c, out, _ := testCLI(t)
	writeFile(t, c.Fs, "lables.json", `{"a": 1, "b": 1, "c": 2, "d": 2, "e": 1}`)

	if err := execute(c, "convert"); err != nil {
		t.Fatalf("convert error: %v", err)
	}

	if got := readFile(t, c.Fs, "reversed.json"); got != "{\n    \"1\": \"e\",\n    \"2\": \"d\"\n}" {
		t.Errorf("reversed.json = %q", got)
	}

	got := lines(out.String())
	if len(got) != 5 {
		t.Fatalf("diagnostics = %q, want 3 collision lines, success, summary", got)
	}
	for i, want := range []string{`"1"`, `"2"`, `"1"`} {
		if !strings.Contains(got[i], "appears more than once") || !strings.Contains(got[i], want) {
			t.Errorf("line %d = %q, want collision on %s", i, got[i], want)
		}
	}
	if !strings.Contains(got[3], "Inverted JSON saved to") {
		t.Errorf("line 3 = %q, want success", got[3])
	}
	if !strings.Contains(got[4], `Duplicate values detected: "1", "2"`) {
		t.Errorf("line 4 = %q, want distinct collision summary", got[4])
	}
}

func TestConvertFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string // empty means no input file
		want  string
	}{
		{"missing file", "", "File not found: lables.json"},
		{"malformed", `{"a": }`, "lables.json is not valid JSON"},
		{"array", `[1, 2, 3]`, "must be an object, got array"},
		{"invalid utf-8", "{\"a\": \"\xff\"}", "Conversion failed for lables.json: input is not valid UTF-8"},
		{"lone surrogate", `{"a": "\ud800"}`, "Conversion failed for lables.json: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out, _ := testCLI(t)
			if tt.input != "" {
				writeFile(t, c.Fs, "lables.json", tt.input)
			}

			err := execute(c, "convert")
			if !errors.Is(err, ErrReported) {
				t.Fatalf("convert error = %v, want ErrReported", err)
			}

			got := lines(out.String())
			if len(got) != 1 {
				t.Fatalf("diagnostics = %q, want exactly one line", got)
			}
			if !strings.Contains(got[0], tt.want) {
				t.Errorf("diagnostic = %q, should contain %q", got[0], tt.want)
			}
			if exists, _ := afero.Exists(c.Fs, "reversed.json"); exists {
				t.Error("output file should not be created")
			}
		})
	}
}

func TestConvertUsesConfigFile(t *testing.T) {
	c, _, _ := testCLI(t)
	writeFile(t, c.Fs, "/config/jsoninvert/config.toml", "input = \"src.json\"\noutput = \"dst.json\"\nindent = 1\n")
	writeFile(t, c.Fs, "src.json", `{"k": "v"}`)

	if err := execute(c, "convert"); err != nil {
		t.Fatalf("convert error: %v", err)
	}
	if got := readFile(t, c.Fs, "dst.json"); got != "{\n \"v\": \"k\"\n}" {
		t.Errorf("dst.json = %q", got)
	}
}

func TestConvertExplicitConfig(t *testing.T) {
	c, _, _ := testCLI(t)
	writeFile(t, c.Fs, "custom.toml", "indent = 0\n")
	writeFile(t, c.Fs, "lables.json", `{"k": "v"}`)

	if err := execute(c, "convert", "--config", "custom.toml"); err != nil {
		t.Fatalf("convert error: %v", err)
	}
	if got := readFile(t, c.Fs, "reversed.json"); got != "{\n\"v\": \"k\"\n}" {
		t.Errorf("reversed.json = %q", got)
	}
}

func TestConvertMissingExplicitConfig(t *testing.T) {
	c, _, _ := testCLI(t)
	writeFile(t, c.Fs, "lables.json", `{"k": "v"}`)

	err := execute(c, "convert", "--config", "missing.toml")
	if err == nil || errors.Is(err, ErrReported) {
		t.Fatalf("convert error = %v, want config error", err)
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error %q should mention config", err)
	}
}

func TestConvertInvalidIndentFlag(t *testing.T) {
	c, out, _ := testCLI(t)
	writeFile(t, c.Fs, "lables.json", `{"k": "v"}`)

	if err := execute(c, "convert", "--indent", "99"); !errors.Is(err, ErrReported) {
		t.Fatalf("convert error = %v, want ErrReported", err)
	}
	if !strings.Contains(out.String(), "indent must be between 0 and 16") {
		t.Errorf("diagnostic = %q", out.String())
	}
}

func TestConvertTooManyArgs(t *testing.T) {
	c, _, _ := testCLI(t)
	if err := execute(c, "convert", "a", "b", "c"); err == nil {
		t.Error("convert with three args should fail")
	}
}

func TestConvertVerboseConfigLogsDebug(t *testing.T) {
	c, _, logs := testCLI(t)
	writeFile(t, c.Fs, "/config/jsoninvert/config.toml", "verbose = true\n")
	writeFile(t, c.Fs, "lables.json", `{"k": "v"}`)

	if err := execute(c, "convert"); err != nil {
		t.Fatalf("convert error: %v", err)
	}
	if !strings.Contains(logs.String(), "Converted 1 entries into 1 keys") {
		t.Errorf("logs = %q, should contain progress line", logs.String())
	}
}

func TestConfigPath(t *testing.T) {
	c, out, _ := testCLI(t)

	if err := execute(c, "config", "path"); err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "/config/jsoninvert/config.toml" {
		t.Errorf("config path = %q", got)
	}
}

func TestConfigShow(t *testing.T) {
	c, out, _ := testCLI(t)
	writeFile(t, c.Fs, "/config/jsoninvert/config.toml", "indent = 2\n")

	if err := execute(c, "config", "show"); err != nil {
		t.Fatalf("config show error: %v", err)
	}
	for _, want := range []string{"input", "lables.json", "reversed.json", "2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("config show = %q, should contain %q", out.String(), want)
		}
	}
}

func TestConfigShowTOML(t *testing.T) {
	c, out, _ := testCLI(t)

	if err := execute(c, "config", "show", "--toml"); err != nil {
		t.Fatalf("config show error: %v", err)
	}
	for _, want := range []string{`input = "lables.json"`, `output = "reversed.json"`, "indent = 4", "verbose = false"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("config show --toml = %q, should contain %q", out.String(), want)
		}
	}
}

func TestVersion(t *testing.T) {
	c, out, _ := testCLI(t)

	if err := execute(c, "--version"); err != nil {
		t.Fatalf("--version error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "jsoninvert version ") {
		t.Errorf("--version = %q", out.String())
	}
}

func TestCompletion(t *testing.T) {
	c, out, _ := testCLI(t)

	if err := execute(c, "completion", "bash"); err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out.String(), "jsoninvert") {
		t.Error("bash completion should mention the command name")
	}

	if err := execute(c, "completion", "tcsh"); err == nil {
		t.Error("completion for unsupported shell should fail")
	}
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", errs.New(errs.ErrCodeFileNotFound, "file not found: in.json"), "File not found: in.json"},
		{"parse", errs.New(errs.ErrCodeInvalidJSON, "input is not valid JSON"), "in.json is not valid JSON"},
		{"shape", errs.New(errs.ErrCodeInvalidShape, "top-level JSON value must be an object, got array"),
			"Type mismatch in in.json: top-level JSON value must be an object, got array"},
		{"wrapped cause", errs.Wrap(errs.ErrCodeInternal, errors.New("disk full"), "write out.json"),
			"Conversion failed for in.json: write out.json: disk full"},
		{"plain", errors.New("boom"), "Conversion failed for in.json: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failureMessage(tt.err, "in.json"); got != tt.want {
				t.Errorf("failureMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuoteList(t *testing.T) {
	if got := quoteList([]string{"1", "a b"}); got != `"1", "a b"` {
		t.Errorf("quoteList() = %q", got)
	}
	if got := quoteList(nil); got != "" {
		t.Errorf("quoteList(nil) = %q, want empty", got)
	}
}
