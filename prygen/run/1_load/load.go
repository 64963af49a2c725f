// Package load parses the Go files of a package directory into dst syntax trees.
package load

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// ErrNoGoFiles is returned when a directory holds no parseable Go files.
var ErrNoGoFiles = errors.New("no Go files")

// Package is the parsed content of a package directory.
type Package struct {
	Files []*dst.File
	// Skipped holds the parse error of every file that could not be parsed.
	Skipped []error
}

// PackageDir parses every .go file in dir, test files included, so that both the
// package and its in-package tests are visible. Files that fail to parse are skipped
// and reported in Skipped.
func PackageDir(dir string) (Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Package{}, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	dec := decorator.NewDecorator(token.NewFileSet())
	pkg := Package{Files: make([]*dst.File, 0, len(entries))}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}

		file, err := dec.ParseFile(filepath.Join(dir, name), nil, 0)
		if err != nil {
			pkg.Skipped = append(pkg.Skipped, err)

			continue
		}

		pkg.Files = append(pkg.Files, file)
	}

	if len(pkg.Files) == 0 && len(pkg.Skipped) > 0 {
		return Package{}, fmt.Errorf("%w: %s: %w", ErrNoGoFiles, dir, errors.Join(pkg.Skipped...))
	}

	if len(pkg.Files) == 0 {
		return Package{}, fmt.Errorf("%w: %s", ErrNoGoFiles, dir)
	}

	return pkg, nil
}

// InPackage keeps the files that declare package pkgName.
func InPackage(files []*dst.File, pkgName string) []*dst.File {
	kept := make([]*dst.File, 0, len(files))

	for _, file := range files {
		if file.Name != nil && file.Name.Name == pkgName {
			kept = append(kept, file)
		}
	}

	return kept
}
