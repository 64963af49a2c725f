// Package output writes a generated binding file next to the package it binds.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/toejough/go-reorder"
)

// Writer interface for writing generated code.
type Writer interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Filename returns the name of the binding file for base. The file is always a test file, so the
// bindings never reach a production build.
func Filename(base string) string {
	base = strings.TrimSuffix(base, ".go")
	base = strings.TrimSuffix(base, "_test")

	return "generated_pry_" + base + "_test.go"
}

// WriteGeneratedCode writes code to Filename(base) and returns the name it wrote.
func WriteGeneratedCode(code, base string, fileWriter Writer, logger *log.Logger) (string, error) {
	const generatedFilePermissions = 0o600

	filename := Filename(base)

	reordered, err := reorder.Source(code)
	if err != nil {
		logger.Warn("failed to reorder, writing as generated", "file", filename, "err", err)

		reordered = code
	}

	err = fileWriter.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return "", fmt.Errorf("error writing %s: %w", filename, err)
	}

	logger.Info("written", "file", filename)

	return filename, nil
}
