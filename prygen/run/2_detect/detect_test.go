package detect_test

import (
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	. "github.com/onsi/gomega"
	detect "github.com/toejough/pry/prygen/run/2_detect"
)

const calculatorSrc = `package calc

type Calculator struct{ base int }

func NewCalculator() *Calculator { return &Calculator{} }

func (c *Calculator) add(a, b int) int { return c.base + a + b }

func (c Calculator) scale(n int) int { return c.base * n }

func (c *Calculator) Total() int { return c.base }

func (c *Calculator) _() {}

func newDefault() *Calculator { return &Calculator{base: 1} }

func mapKeys[K comparable, V any](m map[K]V) []K { return nil }

type Box[T any] struct{ item T }

func (b *Box[T]) get() T { return b.item }

func init() {}
`

const helpersSrc = `package calc

func (c *Calculator) clear() { c.base = 0 }

type other struct{}

func (other) hidden() {}
`

func TestFind_CollectsUnexportedMethodsSorted(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	target, err := detect.Find(parse(t, calculatorSrc, helpersSrc), "Calculator", []string{"newDefault", "newDefault"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(target).To(Equal(detect.Target{
		TypeName: "Calculator",
		Methods: []detect.Method{
			{Name: "add", PointerReceiver: true},
			{Name: "clear", PointerReceiver: true},
			{Name: "scale", PointerReceiver: false},
		},
		Statics: []string{"newDefault"},
	}))
}

func TestFind_ValueReceiverWithoutStatics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	target, err := detect.Find(parse(t, helpersSrc), "other", nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(target.Methods).To(ConsistOf(detect.Method{Name: "hidden"}))
	g.Expect(target.Statics).To(BeEmpty())
}

func TestFind_Errors(t *testing.T) {
	t.Parallel()

	files := parse(t, calculatorSrc)

	tests := []struct {
		name     string
		typeName string
		statics  []string
		wantErr  error
	}{
		{name: "missing type", typeName: "Missing", wantErr: detect.ErrTypeNotFound},
		{name: "generic type", typeName: "Box", wantErr: detect.ErrGenericType},
		{name: "missing function", typeName: "Calculator", statics: []string{"nope"}, wantErr: detect.ErrFuncNotFound},
		{name: "method is not a function", typeName: "Calculator", statics: []string{"add"}, wantErr: detect.ErrFuncNotFound},
		{name: "generic function", typeName: "Calculator", statics: []string{"mapKeys"}, wantErr: detect.ErrGenericType},
		{name: "init", typeName: "Calculator", statics: []string{"init"}, wantErr: detect.ErrFuncNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			_, err := detect.Find(files, tt.typeName, tt.statics)
			g.Expect(err).To(MatchError(tt.wantErr))
		})
	}
}

func TestFind_NothingToBind(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	files := parse(t, "package calc\n\ntype plain struct{}\n\nfunc (plain) Exported() {}\n")

	_, err := detect.Find(files, "plain", nil)
	g.Expect(err).To(MatchError(detect.ErrNothingToBind))
}

func parse(t *testing.T, sources ...string) []*dst.File {
	t.Helper()

	files := make([]*dst.File, 0, len(sources))

	for _, src := range sources {
		file, err := decorator.Parse(src)
		if err != nil {
			t.Fatalf("failed to parse source: %v", err)
		}

		files = append(files, file)
	}

	return files
}
