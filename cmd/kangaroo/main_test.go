package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type run struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) run {
	t.Helper()
	var out, errOut bytes.Buffer
	code := execute(args, strings.NewReader(stdin), &out, &errOut)
	return run{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTooManyArguments(t *testing.T) {
	r := runCLI(t, "", "a.kg", "b.kg")
	if r.code == 0 {
		t.Fatal("expected non-zero exit code")
	}
	if r.stderr != "Problem passing arguments: Too many arguments\n" {
		t.Fatalf("stderr = %q", r.stderr)
	}
}

func TestBatchFile(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "bands.kg", "# a = 1;\nb = 2;\n\n# c(x) = x\n")
	r := runCLI(t, "", path)
	if r.code != 1 {
		t.Fatalf("exit code = %d, stderr:\n%s", r.code, r.stderr)
	}
	want := "start>( ( # a () = 1 ), ) \n" +
		"start>( ( # c ( x ) = x ), ) \n"
	if diff := cmp.Diff(want, r.stdout); diff != "" {
		t.Fatalf("stdout mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(r.stderr, ":2:1: ERROR SYN2001: missing '#'!") {
		t.Fatalf("stderr lacks the line 2 diagnostic:\n%s", r.stderr)
	}
}

func TestBatchCleanFileExitsZero(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "ok.kg", "# a = 1;\n")
	if r := runCLI(t, "", path); r.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", r.code, r.stderr)
	}
}

func TestBatchMissingFile(t *testing.T) {
	r := runCLI(t, "", filepath.Join(t.TempDir(), "missing.kg"))
	if r.code != 1 || !strings.Contains(r.stderr, "parsing failed") {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestBatchQuietShortDiagnostics(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "q.kg", "b = 2;\n")
	r := runCLI(t, "", "--quiet", path)
	if r.code != 1 {
		t.Fatalf("exit code = %d", r.code)
	}
	if !strings.HasPrefix(r.stderr, "error SYN2001 ") || !strings.HasSuffix(r.stderr, "q.kg:1:1 missing '#'!\n") {
		t.Fatalf("unexpected stderr %q", r.stderr)
	}
}

func TestInteractiveSession(t *testing.T) {
	r := runCLI(t, "# a = 1\nnope\n")
	want := "Kangaroo v0.0.1\n" +
		"Welcome!\n" +
		">>> start>( ( # a () = 1 ), ) \n" +
		">>> SYN2001 missing '#'!\n" +
		">>> \n"
	if diff := cmp.Diff(want, r.stdout); diff != "" {
		t.Fatalf("stdout mismatch (-want +got):\n%s", diff)
	}
	if r.code != 0 {
		t.Fatalf("exit code = %d", r.code)
	}
}

func TestReplSubcommandCompat(t *testing.T) {
	r := runCLI(t, "# a(x) = x + ;\n", "repl", "--mode", "compat")
	if !strings.Contains(r.stdout, ">>> start>( ( # a () =  ), ) \n") {
		t.Fatalf("unexpected stdout:\n%s", r.stdout)
	}
}

func TestParseTreeFormat(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "a.kg", "# a = 1;\n")
	r := runCLI(t, "", "parse", "--format", "tree", path)
	if r.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", r.code, r.stderr)
	}
	if !strings.HasPrefix(r.stdout, "line 1:\n") {
		t.Fatalf("unexpected stdout:\n%s", r.stdout)
	}
}

func TestParseDirJSON(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "b.kg", "# b = 2;\n")
	writeTemp(t, dir, "a.kg", "oops;\n")

	r := runCLI(t, "", "parse", "--format", "json", "--jobs", "2", dir)
	if r.code != 1 {
		t.Fatalf("exit code = %d, stderr:\n%s", r.code, r.stderr)
	}
	var files []struct {
		Path  string `json:"path"`
		Lines []struct {
			Line        int             `json:"line"`
			AST         json.RawMessage `json:"ast"`
			Diagnostics []struct {
				Code string `json:"code"`
			} `json:"diagnostics"`
		} `json:"lines"`
	}
	if err := json.Unmarshal([]byte(r.stdout), &files); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, r.stdout)
	}
	if len(files) != 2 || filepath.Base(files[0].Path) != "a.kg" || filepath.Base(files[1].Path) != "b.kg" {
		t.Fatalf("unexpected files %+v", files)
	}
	if got := files[0].Lines[0].Diagnostics[0].Code; got != "SYN2001" {
		t.Fatalf("a.kg diagnostic = %s", got)
	}
	if len(files[1].Lines[0].AST) == 0 {
		t.Fatal("b.kg must carry an AST")
	}
}

func TestParseCacheRequiresDisplay(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "a.kg", "# a = 1;\n")
	r := runCLI(t, "", "parse", "--cache", "--format", "tree", path)
	if r.code == 0 || !strings.Contains(r.stderr, "--cache requires --format display") {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestParseWithCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeTemp(t, t.TempDir(), "a.kg", "# a = 1;\n")
	for i := 0; i < 2; i++ {
		r := runCLI(t, "", "parse", "--cache", "--timings", path)
		if r.code != 0 || r.stdout != "start>( ( # a () = 1 ), ) \n" {
			t.Fatalf("run %d: unexpected result %+v", i, r)
		}
		if i == 1 && !strings.Contains(r.stderr, "cached") {
			t.Fatalf("second run must report a cache hit:\n%s", r.stderr)
		}
	}
}

func TestParseCacheClear(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeTemp(t, t.TempDir(), "a.kg", "# a = 1;\n")
	for i := 0; i < 2; i++ {
		if r := runCLI(t, "", "parse", "--cache", path); r.code != 0 {
			t.Fatalf("warm-up run %d: %+v", i, r)
		}
	}

	r := runCLI(t, "", "parse", "--cache-clear", "--cache", "--timings", path)
	if r.code != 0 || r.stdout != "start>( ( # a () = 1 ), ) \n" {
		t.Fatalf("unexpected result %+v", r)
	}
	if strings.Contains(r.stderr, "cached") {
		t.Fatalf("cleared cache must not report a hit:\n%s", r.stderr)
	}

	r = runCLI(t, "", "parse", "--cache", "--timings", path)
	if !strings.Contains(r.stderr, "cached") {
		t.Fatalf("cache must refill after a clear:\n%s", r.stderr)
	}
}

func TestManifestSettings(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTemp(t, dir, "kangaroo.toml", "[parse]\nmode = \"compat\"\nterminator = \"none\"\n\n[repl]\nprompt = \"kg> \"\n")
	src := writeTemp(t, dir, "a.kg", "# a = 1\n")

	r := runCLI(t, "", "--config", cfg, src)
	if r.code != 1 || !strings.Contains(r.stderr, "SYN2004") {
		t.Fatalf("manifest terminator=none must leave the line open: %+v", r)
	}

	r = runCLI(t, "", "--config", cfg, "--terminator", "auto", src)
	if r.code != 0 || r.stdout != "start>( ( # a () =  ), ) \n" {
		t.Fatalf("flag must override the manifest: %+v", r)
	}

	r = runCLI(t, "", "--config", cfg)
	if !strings.Contains(r.stdout, "kg> ") {
		t.Fatalf("manifest prompt not used:\n%s", r.stdout)
	}
}

func TestManifestRejectsUnknownKeys(t *testing.T) {
	cfg := writeTemp(t, t.TempDir(), "kangaroo.toml", "[parse]\nmod = \"compat\"\n")
	r := runCLI(t, "", "--config", cfg, "version")
	if r.code != 0 {
		t.Fatalf("version must not read the manifest: %+v", r)
	}
	r = runCLI(t, "", "--config", cfg, "repl")
	if r.code == 0 || !strings.Contains(r.stderr, "unknown keys: parse.mod") {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestManifestRejectsBadValues(t *testing.T) {
	cfg := writeTemp(t, t.TempDir(), "kangaroo.toml", "[parse]\nterminator = \"sometimes\"\n")
	if _, err := loadManifestFile(cfg); err == nil || !strings.Contains(err.Error(), "[parse].terminator") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeTemp(t, root, "kangaroo.toml", "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := findManifest(nested)
	if err != nil || !ok {
		t.Fatalf("findManifest = %q, %v, %v", path, ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %q, want it in %q", path, root)
	}
}

func TestTokenizeCommand(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "a.kg", "# a = 1;")
	r := runCLI(t, "", "tokenize", "--terminator", "none", path)
	if r.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", r.code, r.stderr)
	}
	lines := strings.Split(strings.TrimSuffix(r.stdout, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 tokens, got:\n%s", r.stdout)
	}
	if lines[0] != `  1: HASH            "#" at 1:1-1:2` {
		t.Fatalf("first token line %q", lines[0])
	}
}

func TestTokenizeDiagnosticsOnlyOnErrors(t *testing.T) {
	dir := t.TempDir()
	clean := runCLI(t, "", "tokenize", writeTemp(t, dir, "ok.kg", "# a = 1;"))
	if clean.stderr != "" {
		t.Fatalf("clean file printed diagnostics:\n%s", clean.stderr)
	}
	bad := runCLI(t, "", "tokenize", writeTemp(t, dir, "bad.kg", "# a = @;"))
	if !strings.Contains(bad.stderr, "ERROR LEX1001: undefined character '@'") {
		t.Fatalf("expected LEX1001 on stderr, got:\n%s", bad.stderr)
	}
}

func TestVersionJSON(t *testing.T) {
	r := runCLI(t, "", "version", "--format", "json")
	var payload versionPayload
	if err := json.Unmarshal([]byte(r.stdout), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", r.stdout, err)
	}
	if payload.Tool != "kangaroo" || payload.Version != "0.0.1" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestTraceToStderr(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "a.kg", "# a = 1;\n")
	r := runCLI(t, "", "--trace", "-", "--trace-level", "detail", "parse", path)
	if r.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", r.code, r.stderr)
	}
	for _, want := range []string{"→ kangaroo parse", "→ parse-lines", "← unit:"} {
		if !strings.Contains(r.stderr, want) {
			t.Fatalf("trace lacks %q:\n%s", want, r.stderr)
		}
	}
}

func TestInvalidFlagValues(t *testing.T) {
	tests := [][]string{
		{"--mode", "strict", "repl"},
		{"--terminator", "never", "repl"},
		{"--ui", "maybe", "repl"},
		{"--color", "rainbow", "repl"},
		{"--trace-level", "loud", "version"},
	}
	for _, args := range tests {
		if r := runCLI(t, "", args...); r.code == 0 {
			t.Errorf("%v: expected failure", args)
		}
	}
}

func TestProfilesWritten(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "a.kg", "# a = 1;\n")
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	r := runCLI(t, "", "--cpu-profile", cpu, "--mem-profile", mem, src)
	if r.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", r.code, r.stderr)
	}
	for _, path := range []string{cpu, mem} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("profile %s not written: %v", path, err)
		}
	}
}
