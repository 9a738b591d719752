//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	modulePath = "github.com/dkoosis/goosint"
	binPath    = "./bin/goosint"
)

// Default target - build the binary
var Default = Build

// Build builds the goosint binary
func Build() error {
	header("Build")
	if err := os.MkdirAll("bin", 0o750); err != nil {
		return err
	}
	if err := sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binPath, "./cmd/goosint"); err != nil {
		fmt.Println("❌ Build failed")
		return err
	}
	fmt.Printf("✅ Built: %s\n", binPath)
	return nil
}

// Clean removes build artifacts
func Clean() error {
	header("Clean")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	_ = sh.Rm("coverage.out")
	fmt.Println("✅ Cleaned build artifacts")
	return nil
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	header("Tests")
	return sh.RunV("go", "test", "./...")
}

// Race runs tests with race detector
func (Test) Race() error {
	header("Race Detector")
	return sh.RunV("go", "test", "-race", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	header("Test Coverage")
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	_ = sh.RunV("go", "tool", "cover", "-func=coverage.out")
	return nil
}

// Lint namespace for linting commands
type Lint mg.Namespace

// All runs go vet and, when installed, golangci-lint
func (Lint) All() error {
	mg.SerialDeps(Lint.Vet)
	err := Lint{}.Golangci()
	if isCommandNotFound(err) {
		fmt.Println("⚠️  golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	return err
}

// Vet runs go vet
func (Lint) Vet() error {
	header("Go Vet")
	return sh.RunV("go", "vet", "./...")
}

// Golangci runs golangci-lint
func (Lint) Golangci() error {
	header("Golangci-lint")
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

func header(title string) {
	fmt.Printf("\n=== %s ===\n\n", title)
}

// ldflags stamps internal/version. Version keeps its source default unless
// HEAD carries a v* tag.
func ldflags() string {
	flags := []string{
		"-s", "-w",
		fmt.Sprintf("-X '%s/internal/version.CommitHash=%s'", modulePath, gitOutput("rev-parse", "--short", "HEAD")),
		fmt.Sprintf("-X '%s/internal/version.BuildDate=%s'", modulePath, time.Now().UTC().Format(time.RFC3339)),
	}
	if tag := gitOutput("describe", "--tags", "--exact-match", "--match=v*"); tag != "unknown" {
		flags = append(flags, fmt.Sprintf("-X '%s/internal/version.Version=%s'", modulePath, strings.TrimPrefix(tag, "v")))
	}
	return strings.Join(flags, " ")
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || out == "" {
		return "unknown"
	}
	return strings.TrimSpace(out)
}

func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) || strings.Contains(err.Error(), "executable file not found")
}
