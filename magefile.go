//go:build mage

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default is what plain `mage` runs.
var Default = CI

// CI formats, vets, tests, and builds the whole module.
func CI() {
	mg.SerialDeps(Format, Lint, Test, Build)
}

// Format runs gofmt over the module.
func Format() error {
	return run("go", "fmt", "./...")
}

// Lint vets the module. No external linter is required.
func Lint() error {
	return run("go", "vet", "./...")
}

// Test runs every package's test suite.
func Test() error {
	return run("go", "test", "./...")
}

// Build compiles the module and produces the genstudio binary with its
// version stamped in from the nearest git tag.
func Build() error {
	if err := run("go", "build", "./..."); err != nil {
		return err
	}

	ldflags := fmt.Sprintf("-X main.version=%s", version())
	return run("go", "build", "-ldflags", ldflags, "-o", "genstudio", "./cmd/genstudio")
}

func run(cmd string, args ...string) error {
	if err := sh.RunV(cmd, args...); err != nil {
		return fmt.Errorf("%s %s: %w", cmd, strings.Join(args, " "), err)
	}
	return nil
}

// version derives the binary version from git: the most recent tag, with a
// -dirty suffix when the tree has uncommitted changes or has moved past the
// tag. Outside a repo, or before any tag exists, it falls back to v0.0.0.
func version() string {
	tag, err := sh.Output("git", "describe", "--tags", "--abbrev=0")
	if err != nil || strings.TrimSpace(tag) == "" {
		return "v0.0.0"
	}
	tag = strings.TrimSpace(tag)

	status, err := sh.Output("git", "status", "--porcelain")
	dirty := err == nil && strings.TrimSpace(status) != ""

	// An exact-match describe fails when HEAD has commits after the tag.
	if _, err := sh.Output("git", "describe", "--tags", "--exact-match"); err != nil {
		dirty = true
	}

	if dirty {
		return tag + "-dirty"
	}
	return tag
}
