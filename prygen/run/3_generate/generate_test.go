package generate_test

import (
	"go/token"
	"strings"
	"testing"

	"github.com/akedrou/textdiff"
	detect "github.com/toejough/pry/prygen/run/2_detect"
	generate "github.com/toejough/pry/prygen/run/3_generate"
	"pgregory.net/rapid"
)

func TestSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pkg    string
		target detect.Target
		want   string
	}{
		{
			name: "methods and statics",
			pkg:  "calc",
			target: detect.Target{
				TypeName: "Calculator",
				Methods: []detect.Method{
					{Name: "add", PointerReceiver: true},
					{Name: "scale"},
				},
				Statics: []string{"newDefault"},
			},
			want: `// Code generated by prygen. DO NOT EDIT.

package calc

import "github.com/toejough/pry"

//nolint:gochecknoinits // bindings must be registered before any test runs
func init() {
	pry.Bind[*Calculator]("add", (*Calculator).add)
	pry.Bind[Calculator]("scale", Calculator.scale)
	pry.BindStatic[Calculator]("newDefault", newDefault)
}
`,
		},
		{
			name:   "statics only",
			pkg:    "store",
			target: detect.Target{TypeName: "cache", Statics: []string{"newCache", "defaultTTL"}},
			want: `// Code generated by prygen. DO NOT EDIT.

package store

import "github.com/toejough/pry"

//nolint:gochecknoinits // bindings must be registered before any test runs
func init() {
	pry.BindStatic[cache]("newCache", newCache)
	pry.BindStatic[cache]("defaultTTL", defaultTTL)
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := generate.Source(tt.pkg, tt.target)
			if err != nil {
				t.Fatalf("Source() error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Source() mismatch:\n%s", textdiff.Unified("want", "got", tt.want, got))
			}
		})
	}
}

func TestSource_InvalidPackageName(t *testing.T) {
	t.Parallel()

	_, err := generate.Source("not a name", detect.Target{TypeName: "T", Statics: []string{"f"}})
	if err == nil {
		t.Fatal("Source() with an invalid package name should fail to format")
	}
}

// TestSource_OneLinePerBinding_Property proves every method and static gets exactly one registration.
func TestSource_OneLinePerBinding_Property(t *testing.T) {
	t.Parallel()

	ident := rapid.StringMatching(`[a-z][a-zA-Z0-9]{0,10}`).Filter(func(name string) bool {
		return !token.IsKeyword(name)
	})

	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOfNDistinct(ident, 1, 8, func(s string) string { return s }).Draw(rt, "names")
		split := rapid.IntRange(0, len(names)).Draw(rt, "split")

		target := detect.Target{TypeName: "Thing"}
		for _, name := range names[:split] {
			target.Methods = append(target.Methods, detect.Method{Name: name, PointerReceiver: rapid.Bool().Draw(rt, "ptr")})
		}

		target.Statics = names[split:]

		got, err := generate.Source("pkg", target)
		if err != nil {
			rt.Fatalf("Source() error: %v", err)
		}

		if n := strings.Count(got, "pry.Bind["); n != split {
			rt.Fatalf("got %d instance bindings, want %d:\n%s", n, split, got)
		}

		if n := strings.Count(got, "pry.BindStatic["); n != len(names)-split {
			rt.Fatalf("got %d static bindings, want %d:\n%s", n, len(names)-split, got)
		}
	})
}
