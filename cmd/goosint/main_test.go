package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/dkoosis/goosint/internal/console"
	"github.com/dkoosis/goosint/internal/ghunt"
)

const fakeGHunt = `#!/bin/sh
if [ "$1" != "email" ]; then
  exit 0
fi
case "$2" in
  broken@*)
    echo "not logged in" >&2
    exit 1
    ;;
  empty@*)
    echo "GHunt banner"
    exit 0
    ;;
esac
cat <<OUT
GHunt banner
[+] Custom profile picture !
=> https://lh3.googleusercontent.com/a/pic
Email : $2
Gaia ID : 1234567890
OUT
`

// isolate runs the test in a scratch working directory with no config file
// or goosint environment in effect.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	for _, k := range []string{"GOOSINT_NO_COLOR", "NO_COLOR", "GOOSINT_DEBUG", "GOOSINT_GHUNT_PATH", "GOOSINT_RESULTS_DIR"} {
		t.Setenv(k, "")
	}
	return dir
}

// installFakeGHunt writes a shell script that stands in for GHunt and points
// goosint at it.
func installFakeGHunt(t *testing.T, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	path := filepath.Join(dir, "ghunt")
	if err := os.WriteFile(path, []byte(fakeGHunt), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GOOSINT_GHUNT_PATH", path)
}

func readSession(t *testing.T, dir string) map[string]any {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "investigation_*.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one session file in %s, got %v (%v)", dir, matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("session file is not JSON: %v", err)
	}
	return doc
}

func TestJTBD_VersionFlagPrintsVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--version"}, strings.NewReader(""), &stdout, &stderr)

	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "goosint ") {
		t.Errorf("unexpected version output: %q", stdout.String())
	}
}

func TestJTBD_UnknownFlagExitTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--bogus"}, strings.NewReader(""), &stdout, &stderr)

	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "bogus") {
		t.Errorf("stderr should name the bad flag; got %q", stderr.String())
	}
}

func TestJTBD_StrayArgumentExitTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"target@gmail.com"}, strings.NewReader(""), &stdout, &stderr)

	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestJTBD_NoArgsShowsBannerAndHelp(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(""), &stdout, &stderr)

	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	out := stdout.String()
	if !strings.Contains(out, console.Tagline) {
		t.Error("missing banner tagline")
	}
	if !strings.Contains(out, "GoOsint Help") {
		t.Error("missing help text")
	}
	if strings.Contains(out, "\033[") {
		t.Error("output to a buffer should carry no ANSI escape codes")
	}
}

func TestJTBD_NoBannerSuppressesBanner(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	run([]string{"--no-banner"}, strings.NewReader(""), &stdout, &stderr)

	if strings.Contains(stdout.String(), console.Tagline) {
		t.Error("banner printed despite --no-banner")
	}
	if !strings.Contains(stdout.String(), "GoOsint Help") {
		t.Error("missing help text")
	}
}

func TestJTBD_InvestigateSingleEmail(t *testing.T) {
	dir := isolate(t)
	installFakeGHunt(t, dir)
	results := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-banner", "-e", "target@gmail.com", "--results-dir", results},
		strings.NewReader(""), &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr:\n%s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "GHunt is installed and ready") {
		t.Errorf("missing install check; got:\n%s", out)
	}
	if !strings.Contains(out, "Gaia ID : 1234567890") {
		t.Errorf("GHunt output not echoed; got:\n%s", out)
	}
	if strings.Contains(out, "GHunt banner") {
		t.Error("GHunt banner should be filtered from the echo")
	}

	doc := readSession(t, results)
	invs := doc["investigations"].([]any)
	if len(invs) != 1 {
		t.Fatalf("expected 1 investigation, got %d", len(invs))
	}
	rec := invs[0].(map[string]any)
	if rec["status"] != "success" {
		t.Errorf("expected success, got %v", rec["status"])
	}
	profile := rec["profile"].(map[string]any)
	if profile["gaia_id"] != "1234567890" {
		t.Errorf("expected gaia_id 1234567890, got %v", profile["gaia_id"])
	}
}

func TestJTBD_InvalidEmailRejected(t *testing.T) {
	dir := isolate(t)
	installFakeGHunt(t, dir)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-banner", "-e", "not-an-email"}, strings.NewReader(""), &stdout, &stderr)

	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "Invalid email format: not-an-email") {
		t.Errorf("missing rejection; got:\n%s", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "results")); !os.IsNotExist(err) {
		t.Error("no results folder should be created for a rejected email")
	}
}

func TestJTBD_BatchInvestigation(t *testing.T) {
	dir := isolate(t)
	installFakeGHunt(t, dir)

	list := filepath.Join(dir, "emails.txt")
	content := "target@gmail.com\n\nnot an address\nbroken@gmail.com\n  empty@gmail.com  \n"
	if err := os.WriteFile(list, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-banner", "--file", list}, strings.NewReader(""), &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr:\n%s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "Found 3 email(s) to investigate") {
		t.Errorf("missing batch count; got:\n%s", out)
	}
	if !strings.Contains(out, "Success: 1  No Data: 1  Failed: 1") {
		t.Errorf("missing run summary; got:\n%s", out)
	}

	doc := readSession(t, filepath.Join(dir, "results"))
	info := doc["session_info"].(map[string]any)
	if info["total_investigations"] != float64(3) {
		t.Errorf("expected 3 investigations, got %v", info["total_investigations"])
	}
	want := map[string]string{
		"target@gmail.com": "success",
		"broken@gmail.com": "failed",
		"empty@gmail.com":  "no_data",
	}
	for _, v := range doc["investigations"].([]any) {
		rec := v.(map[string]any)
		email := rec["email"].(string)
		if rec["status"] != want[email] {
			t.Errorf("%s: expected %s, got %v", email, want[email], rec["status"])
		}
		if email == "broken@gmail.com" && rec["error"] != "not logged in" {
			t.Errorf("expected stderr as error, got %v", rec["error"])
		}
	}
}

func TestJTBD_MissingGHuntDeclinedInstall(t *testing.T) {
	dir := isolate(t)
	t.Setenv("GOOSINT_GHUNT_PATH", filepath.Join(dir, "no-such-ghunt"))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-banner", "-e", "target@gmail.com"}, strings.NewReader("n\n"), &stdout, &stderr)

	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	out := stdout.String()
	for _, want := range []string{"GHunt not found", "Would you like to install it now? (y/n)", "GHunt is required"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q; got:\n%s", want, out)
		}
	}
}

func TestParseFlags_TracksExplicitOverrides(t *testing.T) {
	o, err := parseFlags([]string{"-e", "a@b.com", "--timeout", "90s", "--no-color"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if o.email != "a@b.com" {
		t.Errorf("expected email a@b.com, got %q", o.email)
	}
	if !o.flags.TimeoutSet || o.flags.Timeout.Seconds() != 90 {
		t.Errorf("timeout not tracked: %+v", o.flags)
	}
	if !o.flags.NoColorSet || o.flags.ResultsDirSet || o.flags.DebugSet {
		t.Errorf("unexpected Set flags: %+v", o.flags)
	}
}

func TestEnsureInstalled_ReturnsCanceled_When_InterruptedAtPrompt(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var stdout bytes.Buffer
	r := console.NewRenderer(&stdout, true)
	a := &app{
		con:   console.New(&stdout, console.MonoTheme(r), 0),
		stdin: pr,
		tool:  &ghunt.Tool{Path: filepath.Join(t.TempDir(), "no-such-ghunt")},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		_, err := a.ensureInstalled(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ensureInstalled still waiting on stdin after interrupt")
	}
}
