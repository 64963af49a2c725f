// Package generate renders the binding file for a detected target.
package generate

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	detect "github.com/toejough/pry/prygen/run/2_detect"
)

// bindingsTmpl is parsed once; it is a constant, so parsing cannot fail at runtime.
//
//nolint:gochecknoglobals // parsed template
var bindingsTmpl = template.Must(template.New("bindings").Parse(`// Code generated by prygen. DO NOT EDIT.

package {{.Package}}

import "github.com/toejough/pry"

//nolint:gochecknoinits // bindings must be registered before any test runs
func init() {
{{- range .Target.Methods}}
	pry.Bind[{{if .PointerReceiver}}*{{end}}{{$.Target.TypeName}}]("{{.Name}}", {{if .PointerReceiver}}(*{{$.Target.TypeName}}){{else}}{{$.Target.TypeName}}{{end}}.{{.Name}})
{{- end}}
{{- range .Target.Statics}}
	pry.BindStatic[{{$.Target.TypeName}}]("{{.}}", {{.}})
{{- end}}
}
`))

type templateData struct {
	Package string
	Target  detect.Target
}

// Source returns the formatted binding file for target, declared in package pkgName.
func Source(pkgName string, target detect.Target) (string, error) {
	var buf bytes.Buffer

	err := bindingsTmpl.Execute(&buf, templateData{Package: pkgName, Target: target})
	if err != nil {
		return "", fmt.Errorf("failed to render bindings for %s: %w", target.TypeName, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("error formatting generated code: %w", err)
	}

	return string(formatted), nil
}
