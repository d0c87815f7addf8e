package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/livetree/internal/errors"
)

const script = `{"kind":"set_draft","text":"milk"}
{"kind":"add"}
{"kind":"set_draft","text":"eggs"}
{"kind":"add"}
{"kind":"toggle","id":1}
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if out != "dev\n" {
		t.Errorf("output = %q, want %q", out, "dev\n")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Version:    dev", "Go version:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	out, err := execute(t, "", "render", "--log-level", "error")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, `<section class="todoapp" id="todoapp">`) {
		t.Errorf("output = %s", out)
	}
	if !strings.Contains(out, `<span id="count">0 items left</span>`) {
		t.Errorf("output missing count:\n%s", out)
	}
}

func TestRenderScriptFromStdin(t *testing.T) {
	out, err := execute(t, script, "render", "--events", "-", "--log-level", "error")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`<li id="todo-1" style="text-decoration: line-through;"><input checked type="checkbox"><span>milk</span>`,
		`<span>eggs</span>`,
		`1 item left`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderToFileWithSnapshots(t *testing.T) {
	dir := t.TempDir()
	events := writeFile(t, dir, "script.jsonl", script)
	outPath := filepath.Join(dir, "todo.html")
	snaps := filepath.Join(dir, "snaps")

	out, err := execute(t, "", "render", "--events", events, "--out", outPath, "--snapshot-dir", snaps, "--log-level", "error")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	html, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "<span>eggs</span>") {
		t.Errorf("file = %s", html)
	}

	entries, err := os.ReadDir(snaps)
	if err != nil {
		t.Fatal(err)
	}
	// One for the mount plus one per message.
	if len(entries) != 6 {
		t.Errorf("wrote %d snapshots, want 6", len(entries))
	}
}

func TestRecordAndReplay(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "journal.db")
	cfg := writeFile(t, dir, "livetree.json", `{"logLevel":"error","journal":{"path":"`+filepath.ToSlash(db)+`"}}`)

	rendered, err := execute(t, script, "render", "--config", cfg, "--events", "-", "--record")
	if err != nil {
		t.Fatal(err)
	}
	replayed, err := execute(t, "", "replay", "--config", cfg, db)
	if err != nil {
		t.Fatal(err)
	}
	if replayed != rendered {
		t.Errorf("replay differs:\n got %s\nwant %s", replayed, rendered)
	}

	partial, err := execute(t, "", "replay", "--config", cfg, "--from", "3", db)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(partial, "milk") || !strings.Contains(partial, "<span>eggs</span>") {
		t.Errorf("partial replay = %s", partial)
	}
}

func TestConfigErrors(t *testing.T) {
	_, err := execute(t, "", "render", "--log-level", "loud")
	if !errors.HasCode(err, "E012") {
		t.Errorf("error = %v, want E012", err)
	}

	_, err = execute(t, "", "render", "--config", filepath.Join(t.TempDir(), "missing.json"))
	if !errors.HasCode(err, "E010") {
		t.Errorf("error = %v, want E010", err)
	}

	_, err = execute(t, "", "replay")
	if err == nil {
		t.Error("replay without a journal succeeded")
	}
}

func TestRenderBadScript(t *testing.T) {
	_, err := execute(t, `{"kind":"dance"}`, "render", "--events", "-", "--log-level", "error")
	if err == nil || !strings.Contains(err.Error(), "unknown message kind") {
		t.Errorf("error = %v", err)
	}
}
