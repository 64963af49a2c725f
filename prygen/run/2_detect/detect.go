// Package detect finds the type and functions prygen binds in a parsed package.
package detect

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/dave/dst"
)

// Exported variables.
var (
	ErrFuncNotFound  = errors.New("function not found")
	ErrGenericType   = errors.New("generic declarations cannot be bound")
	ErrNothingToBind = errors.New("nothing to bind")
	ErrTypeNotFound  = errors.New("type not found")
)

// Method is an unexported method of the target type.
type Method struct {
	Name            string
	PointerReceiver bool
}

// Target is everything prygen binds for one type.
type Target struct {
	TypeName string
	Methods  []Method
	Statics  []string
}

// Find locates typeName in files and collects its unexported methods, sorted by name, along with
// the package-level functions named in statics.
func Find(files []*dst.File, typeName string, statics []string) (Target, error) {
	spec := findType(files, typeName)
	if spec == nil {
		return Target{}, fmt.Errorf("%w: %s", ErrTypeNotFound, typeName)
	}

	if isGeneric(spec.TypeParams) {
		return Target{}, fmt.Errorf("%w: type %s", ErrGenericType, typeName)
	}

	target := Target{TypeName: typeName, Methods: findMethods(files, typeName)}

	for _, name := range statics {
		err := checkStatic(files, name)
		if err != nil {
			return Target{}, err
		}

		if !slices.Contains(target.Statics, name) {
			target.Statics = append(target.Statics, name)
		}
	}

	if len(target.Methods) == 0 && len(target.Statics) == 0 {
		return Target{}, fmt.Errorf("%w: %s has no unexported methods and no functions were named", ErrNothingToBind, typeName)
	}

	return target, nil
}

func checkStatic(files []*dst.File, name string) error {
	// init can never be referenced, and blank functions have no name to reference.
	if name == "init" || name == "_" {
		return fmt.Errorf("%w: %s cannot be referenced", ErrFuncNotFound, name)
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*dst.FuncDecl)
			if !ok || fn.Recv != nil || fn.Name.Name != name {
				continue
			}

			if isGeneric(fn.Type.TypeParams) {
				return fmt.Errorf("%w: function %s", ErrGenericType, name)
			}

			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrFuncNotFound, name)
}

func findMethods(files []*dst.File, typeName string) []Method {
	var methods []Method

	for _, file := range files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*dst.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
				continue
			}

			name := fn.Name.Name
			if token.IsExported(name) || name == "_" {
				continue
			}

			recv, pointer := receiverName(fn.Recv.List[0].Type)
			if recv != typeName {
				continue
			}

			methods = append(methods, Method{Name: name, PointerReceiver: pointer})
		}
	}

	slices.SortFunc(methods, func(a, b Method) int { return strings.Compare(a.Name, b.Name) })

	return methods
}

func findType(files []*dst.File, typeName string) *dst.TypeSpec {
	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*dst.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if ok && typeSpec.Name.Name == typeName {
					return typeSpec
				}
			}
		}
	}

	return nil
}

func isGeneric(params *dst.FieldList) bool {
	return params != nil && len(params.List) > 0
}

// receiverName returns the base type name of a receiver expression and whether it is a pointer.
func receiverName(expr dst.Expr) (string, bool) {
	pointer := false

	if star, ok := expr.(*dst.StarExpr); ok {
		pointer = true
		expr = star.X
	}

	switch typed := expr.(type) {
	case *dst.Ident:
		return typed.Name, pointer
	case *dst.IndexExpr:
		if ident, ok := typed.X.(*dst.Ident); ok {
			return ident.Name, pointer
		}
	case *dst.IndexListExpr:
		if ident, ok := typed.X.(*dst.Ident); ok {
			return ident.Name, pointer
		}
	}

	return "", pointer
}
