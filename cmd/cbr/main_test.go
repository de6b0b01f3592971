package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/cbr/internal/config"
	"github.com/you-not-fish/cbr/internal/interp"
)

func TestRunFile(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		stdin  string
		code   int
		stdout string
	}{
		{
			name:   "hello",
			src:    "fn main(): i32 {\n\tstd.print(\"hello\\n\");\n\treturn 0;\n}\n",
			stdout: "hello\n",
		},
		{
			name:   "echo_sum",
			src:    "fn main(): i32 {\n\ti32 a;\n\ti32 b;\n\tstd.readTo(a, b);\n\tstd.print(a + b, \"\\n\");\n\treturn 0;\n}\n",
			stdin:  "40 2\n",
			stdout: "42\n",
		},
		{
			name:   "bounds",
			src:    "fn main(): i32 {\n\ti32 a[2];\n\ta[2] = 1;\n\treturn 0;\n}\n",
			code:   interp.ExitBounds,
			stdout: "input.cbr:3:2 array index 2 is out of range [0;2) for 'a'\n",
		},
		{
			name:   "no_main",
			src:    "fn f(): i32 { return 0; }\n",
			code:   interp.ExitEntry,
			stdout: "could not find entry point 'fn main'\n",
		},
		{
			name:   "lexical",
			src:    "fn main(): i32 {\n\tstd.print(\"oops);",
			code:   interp.ExitError,
			stdout: "input.cbr:2:12 unterminated string literal '\"oops);'\n",
		},
		{
			name:   "output_before_error",
			src:    "fn main(): i32 {\n\tstd.print(\"a\");\n\tfoo();\n\treturn 0;\n}\n",
			code:   interp.ExitError,
			stdout: "ainput.cbr:3:2 unknown function 'foo'\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := writeTempCbrFile(t, tt.src)
			conf := config.Default()
			code, out, errOut := captureOutput(t, func() int {
				return runFile(context.Background(), filename, conf, newLogger(os.Stderr, false), strings.NewReader(tt.stdin))
			})
			// Diagnostics carry the path the file was opened with.
			out = strings.ReplaceAll(out, filename, "input.cbr")
			if code != tt.code {
				t.Errorf("exit = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tt.code, out, errOut)
			}
			if out != tt.stdout {
				t.Errorf("stdout = %q, want %q", out, tt.stdout)
			}
			if errOut != "" {
				t.Errorf("unexpected stderr:\n%s", errOut)
			}
		})
	}
}

func TestRunFileVerboseHint(t *testing.T) {
	filename := writeTempCbrFile(t, "fn main(): i32 {\n\ti8 x = 200;\n\treturn 0;\n}\n")
	conf := config.Default()
	conf.Verbose = true
	code, out, errOut := captureOutput(t, func() int {
		return runFile(context.Background(), filename, conf, newLogger(os.Stderr, true), strings.NewReader(""))
	})
	if code != interp.ExitError {
		t.Fatalf("exit = %d, want %d", code, interp.ExitError)
	}
	if !strings.Contains(out, "Error on assignation, i8 overflow, tried assigning 200 to 'x'") {
		t.Errorf("missing range diagnostic:\n%s", out)
	}
	if !strings.Contains(out, "Type i8 value range is [-128;127]") {
		t.Errorf("missing range hint:\n%s", out)
	}
	if !strings.Contains(errOut, "level=DEBUG") || !strings.Contains(errOut, "msg=\"register function\"") {
		t.Errorf("verbose run did not log registration:\n%s", errOut)
	}
}

func TestRunFileMissing(t *testing.T) {
	code, out, errOut := captureOutput(t, func() int {
		return runFile(context.Background(), filepath.Join(t.TempDir(), "none.cbr"),
			config.Default(), newLogger(io.Discard, false), strings.NewReader(""))
	})
	if code != interp.ExitError || out != "" || !strings.HasPrefix(errOut, "error: open ") {
		t.Errorf("exit=%d stdout=%q stderr=%q", code, out, errOut)
	}
}

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code int
		want string
	}{
		{"ok", "fn main(): i32 { std.print(\"side effect\"); return 0; }", interp.ExitOK, ""},
		{"unknown_func", "fn main(): i32 {\n\tif (true) { i32 x = nope(1); }\n\treturn 0;\n}", interp.ExitError, "unknown function 'nope'"},
		{"unknown_std", "fn main(): i32 { std.prnt(1); return 0; }", interp.ExitError, "unknown standard function 'prnt'"},
		{"bad_body", "fn f(): void { x = ; }\nfn main(): i32 { return 0; }", interp.ExitError, "expected expression, got ';'"},
		{"no_main", "fn f(): void { }", interp.ExitEntry, "could not find entry point"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := writeTempCbrFile(t, tt.src)
			code, out, _ := captureOutput(t, func() int {
				return runCheck(filename, config.Default(), newLogger(io.Discard, false))
			})
			if code != tt.code {
				t.Errorf("exit = %d, want %d (%s)", code, tt.code, out)
			}
			if tt.want == "" && out != "" {
				t.Errorf("check produced output %q", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

const emitSrc = `fn add(i32 a, i32 b): i32 {
	return a + b;
}

fn main(): i32 {
	return add(1, 2);
}
`

func TestRunEmitAST(t *testing.T) {
	filename := writeTempCbrFile(t, emitSrc)

	code, out, errOut := captureOutput(t, func() int { return runEmitAST(filename, "text") })
	if code != 0 || errOut != "" {
		t.Fatalf("text: exit=%d stderr=%s", code, errOut)
	}
	for _, want := range []string{"FuncDecl", "ReturnStmt", "CallExpr"} {
		if !strings.Contains(out, want) {
			t.Errorf("text AST missing %s:\n%s", want, out)
		}
	}

	code, out, _ = captureOutput(t, func() int { return runEmitAST(filename, "json") })
	if code != 0 {
		t.Fatalf("json: exit=%d", code)
	}
	var js map[string]interface{}
	if err := json.Unmarshal([]byte(out), &js); err != nil {
		t.Fatalf("json output does not decode: %v\n%s", err, out)
	}

	code, out, _ = captureOutput(t, func() int { return runEmitAST(filename, "yaml") })
	if code != 0 {
		t.Fatalf("yaml: exit=%d", code)
	}
	var ym map[string]interface{}
	if err := yaml.Unmarshal([]byte(out), &ym); err != nil {
		t.Fatalf("yaml output does not decode: %v\n%s", err, out)
	}
	if !strings.Contains(out, "add") {
		t.Errorf("yaml AST missing function name:\n%s", out)
	}

	code, _, errOut = captureOutput(t, func() int { return runEmitAST(filename, "xml") })
	if code != interp.ExitUsage || !strings.Contains(errOut, "unknown AST format") {
		t.Errorf("xml: exit=%d stderr=%q", code, errOut)
	}
}

func TestRunEmitTokens(t *testing.T) {
	filename := writeTempCbrFile(t, "fn main(): i32 { std.print(\"a\\tb\"); }")
	code, out, _ := captureOutput(t, func() int { return runEmitTokens(filename) })
	if code != 0 {
		t.Fatalf("exit = %d\n%s", code, out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "POSITION") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(out, `"a\tb"`) {
		t.Errorf("string literal not escaped:\n%s", out)
	}
	if last := lines[len(lines)-1]; !strings.Contains(last, "EOF") {
		t.Errorf("last line %q is not EOF", last)
	}

	bad := writeTempCbrFile(t, "fn @")
	code, out, _ = captureOutput(t, func() int { return runEmitTokens(bad) })
	if code != interp.ExitError || !strings.Contains(out, "unexpected character '@'") {
		t.Errorf("exit=%d output:\n%s", code, out)
	}
}

func TestApplyFlags(t *testing.T) {
	conf := config.Default()
	if err := applyFlags(conf, true, 7, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if !conf.Verbose || conf.Seed != 7 || conf.SleepUnit != time.Millisecond {
		t.Errorf("flags not applied: %+v", conf)
	}

	conf = config.Default()
	conf.Seed = 3
	if err := applyFlags(conf, false, 0, 0); err != nil {
		t.Fatal(err)
	}
	if conf.Verbose || conf.Seed != 3 || conf.SleepUnit != time.Second {
		t.Errorf("unset flags changed the configuration: %+v", conf)
	}

	err := applyFlags(config.Default(), false, 0, -time.Second)
	var ve *config.ValidationError
	if !errors.As(err, &ve) || len(ve.Issues) != 1 {
		t.Fatalf("negative sleep unit: err = %v, want one validation issue", err)
	}
}

func TestLoadConfig(t *testing.T) {
	filename := writeTempCbrFile(t, emitSrc)
	conf, err := loadConfig("", filename)
	if err != nil {
		t.Fatal(err)
	}
	if conf.MaxDepth != config.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d without cbr.yml", conf.MaxDepth)
	}

	side := filepath.Join(filepath.Dir(filename), config.FileName)
	if err := os.WriteFile(side, []byte("max_call_depth: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	conf, err = loadConfig("", filename)
	if err != nil {
		t.Fatal(err)
	}
	if conf.MaxCallDepth != 3 {
		t.Errorf("MaxCallDepth = %d, want 3 from cbr.yml", conf.MaxCallDepth)
	}

	explicit := filepath.Join(t.TempDir(), "run.yml")
	if err := os.WriteFile(explicit, []byte("seed: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	conf, err = loadConfig(explicit, filename)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Seed != 9 || conf.MaxCallDepth != config.DefaultMaxCallDepth {
		t.Errorf("-config file not used: %+v", conf)
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", `""`},
		{"abc", `"abc"`},
		{"a\nb", `"a\nb"`},
		{`q"`, `"q\""`},
	}
	for _, tt := range tests {
		if got := formatLiteral(tt.in); got != tt.want {
			t.Errorf("formatLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func writeTempCbrFile(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.cbr")
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
