//nolint:paralleltest // each test writes its own temp directory
package load_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	load "github.com/toejough/pry/prygen/run/1_load"
)

func TestPackageDir_IncludesTestFiles(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	writeFile(t, dir, "calc.go", "package calc\n\ntype Calculator struct{}\n")
	writeFile(t, dir, "calc_test.go", "package calc\n\nfunc helper() {}\n")
	writeFile(t, dir, "calc_ext_test.go", "package calc_test\n")
	writeFile(t, dir, "notes.txt", "package calc\n")

	pkg, err := load.PackageDir(dir)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pkg.Files).To(HaveLen(3))
	g.Expect(pkg.Skipped).To(BeEmpty())
	g.Expect(load.InPackage(pkg.Files, "calc")).To(HaveLen(2))
	g.Expect(load.InPackage(pkg.Files, "calc_test")).To(HaveLen(1))
}

func TestPackageDir_ReportsUnparseableFiles(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	writeFile(t, dir, "good.go", "package calc\n")
	writeFile(t, dir, "bad.go", "package calc\n\nfunc {\n")

	pkg, err := load.PackageDir(dir)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pkg.Files).To(HaveLen(1))
	g.Expect(pkg.Skipped).To(HaveLen(1))
	g.Expect(pkg.Skipped[0].Error()).To(ContainSubstring("bad.go"))
}

func TestPackageDir_Errors(t *testing.T) {
	g := NewWithT(t)

	_, err := load.PackageDir(filepath.Join(t.TempDir(), "missing"))
	g.Expect(err).To(HaveOccurred())

	empty := t.TempDir()
	writeFile(t, empty, "bad.go", "not go at all")

	_, err = load.PackageDir(empty)
	g.Expect(err).To(MatchError(load.ErrNoGoFiles))
	g.Expect(err.Error()).To(ContainSubstring("bad.go"), "the parse error explains why nothing loaded")

	_, err = load.PackageDir(t.TempDir())
	g.Expect(err).To(MatchError(load.ErrNoGoFiles))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600)
	if err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
