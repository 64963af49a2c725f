// prygen generates the bindings pry needs to call a type's unexported methods.
// Install it with `go install github.com/toejough/pry/prygen@latest` and add
//
//	//go:generate prygen Calculator --static newCalculator
//
// to a test file of the package. It writes generated_pry_Calculator_test.go, which registers every
// unexported method of Calculator (and each --static function) with pry when the tests start.
package main

import (
	"fmt"
	"os"

	"github.com/toejough/pry/prygen/run"
	load "github.com/toejough/pry/prygen/run/1_load"
)

func main() {
	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements run.PackageLoader by parsing the directory with dst.
type realPackageLoader struct{}

// Load parses every Go file in dir.
func (pl *realPackageLoader) Load(dir string) (load.Package, error) {
	pkg, err := load.PackageDir(dir)
	if err != nil {
		return load.Package{}, fmt.Errorf("failed to load %s: %w", dir, err)
	}

	return pkg, nil
}
