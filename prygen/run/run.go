// Package run implements the main logic for the prygen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/charmbracelet/log"
	load "github.com/toejough/pry/prygen/run/1_load"
	detect "github.com/toejough/pry/prygen/run/2_detect"
	generate "github.com/toejough/pry/prygen/run/3_generate"
	output "github.com/toejough/pry/prygen/run/4_output"
)

// ErrNoPackage is returned when prygen runs outside go generate.
var ErrNoPackage = errors.New("GOPACKAGE is not set; run prygen through go generate")

// FileSystem interface for mocking.
type FileSystem interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// PackageLoader parses the Go files of a package directory.
type PackageLoader interface {
	Load(dir string) (load.Package, error)
}

// Run executes the prygen tool logic. It parses args, reads GOPACKAGE and GOFILE through getEnv, loads
// the package in the current directory, and writes a test file that binds the named type's unexported
// methods and the requested functions. Progress is logged to out.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(out, log.Options{Prefix: "prygen", Level: log.InfoLevel})
	if parsed.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	goPackage := getEnv("GOPACKAGE")
	if goPackage == "" {
		return ErrNoPackage
	}

	// Unexported members are only reachable from inside the package, even when the
	// directive sits in an external test file.
	pkgName := strings.TrimSuffix(goPackage, "_test")

	logger.Debug("loading package", "package", pkgName, "file", getEnv("GOFILE"))

	pkg, err := pkgLoader.Load(".")
	if err != nil {
		return fmt.Errorf("failed to load package %s: %w", pkgName, err)
	}

	for _, skipped := range pkg.Skipped {
		logger.Warn("skipping unparseable file", "err", skipped)
	}

	target, err := detect.Find(load.InPackage(pkg.Files, pkgName), parsed.Type, parsed.Static)
	if err != nil {
		if len(pkg.Skipped) > 0 {
			return fmt.Errorf("%w; %d file(s) could not be parsed: %w", err, len(pkg.Skipped), errors.Join(pkg.Skipped...))
		}

		return err
	}

	for _, method := range target.Methods {
		logger.Debug("binding method", "type", target.TypeName, "method", method.Name, "pointer", method.PointerReceiver)
	}

	for _, static := range target.Statics {
		logger.Debug("binding function", "type", target.TypeName, "func", static)
	}

	code, err := generate.Source(pkgName, target)
	if err != nil {
		return err
	}

	base := parsed.Name
	if base == "" {
		base = target.TypeName
	}

	_, err = output.WriteGeneratedCode(code, base, fileSys, logger)

	return err
}

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Type    string   `arg:"positional,required" help:"type whose unexported methods are bound"`
	Static  []string `arg:"--static,separate"   help:"package-level function to bind as a static member of the type (repeatable)"`
	Name    string   `arg:"--name"              help:"base name for the generated file (defaults to <Type>)"`
	Verbose bool     `arg:"-v,--verbose"        help:"log each binding"`
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "prygen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}
