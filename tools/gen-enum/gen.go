package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/constant"
	"go/format"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/scylladb/go-set/strset"
	"golang.org/x/tools/go/packages"
)

var funcMap = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
}

type GeneratorOptions struct {
	Args         []string
	BuildTags    string
	Dir          string
	GenerateFlag bool
	GenerateText bool
	Output       string
	Type         string
	Pointer      bool
}

type Generator struct {
	err            error
	generateIDs    bool
	options        GeneratorOptions
	pkgDefs        map[*ast.Ident]types.Object
	pkgDir         string
	pkgName        string
	underlyingType string
	values         []Value
}

type Value struct {
	ID           string
	Name         string
	OriginalName string
	Value        int64
	String       string
}

func NewGenerator(options GeneratorOptions) *Generator {
	if options.Dir == "" {
		options.Dir = "."
	}
	return &Generator{options: options}
}

// Run loads the package in the configured directory, collects the constants
// of the configured type and writes the generated source. The formatted
// source is returned even when writing fails; unformatted source is returned
// when formatting fails.
func (g *Generator) Run() ([]byte, error) {
	var tags []string

	if g.options.BuildTags != "" {
		tags = strings.Split(g.options.BuildTags, ",")
	}

	cfg := &packages.Config{
		Mode:       packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:        g.options.Dir,
		Tests:      false,
		BuildFlags: []string{fmt.Sprintf("-tags=%s", strings.Join(tags, " "))},
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, err
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("%d packages found", len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, pkg.Errors[0]
	}

	g.pkgName = pkg.Name
	g.pkgDefs = pkg.TypesInfo.Defs

	if len(pkg.GoFiles) > 0 {
		g.pkgDir = filepath.Dir(pkg.GoFiles[0])
	} else {
		g.pkgDir = g.options.Dir
	}

	for _, file := range pkg.Syntax {
		ast.Inspect(file, g.findType)
		if g.err != nil {
			return nil, g.err
		}
	}

	if len(g.values) == 0 {
		return nil, fmt.Errorf("no constants of type %s found", g.options.Type)
	}

	data := struct {
		Args           []string
		GenerateFlag   bool
		GenerateIDs    bool
		GenerateText   bool
		PackageName    string
		Pointer        bool
		Type           string
		UnderlyingType string
		Values         []Value
	}{
		Args:           g.options.Args,
		GenerateFlag:   g.options.GenerateFlag,
		GenerateIDs:    g.generateIDs,
		GenerateText:   g.options.GenerateText,
		PackageName:    g.pkgName,
		Pointer:        g.options.Pointer,
		Type:           g.options.Type,
		UnderlyingType: g.underlyingType,
		Values:         g.values,
	}

	var buf bytes.Buffer

	if err := _tmpl.Execute(&buf, data); err != nil {
		return buf.Bytes(), err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), err
	}

	if err := os.WriteFile(g.outputPath(), src, 0o644); err != nil {
		return src, err
	}

	return src, nil
}

func (g *Generator) outputPath() string {
	if g.options.Output != "" {
		return g.options.Output
	}
	return filepath.Join(g.pkgDir, fmt.Sprintf("%s_enum.go", strings.ToLower(g.options.Type)))
}

func (g *Generator) fail(format string, args ...any) bool {
	if g.err == nil {
		g.err = fmt.Errorf(format, args...)
	}
	return false
}

func (g *Generator) findType(node ast.Node) bool {
	if g.err != nil {
		return false
	}

	decl, ok := node.(*ast.GenDecl)
	if !ok || decl.Tok != token.CONST {
		// Enum declarations need to be const.
		return true
	}

	typ := "" // name of the constant's type

	for _, spec := range decl.Specs {
		vspec := spec.(*ast.ValueSpec) // we've already determined this is a const
		if vspec.Type != nil {
			ident, ok := vspec.Type.(*ast.Ident)
			if !ok {
				continue
			}

			typ = ident.Name
		}

		if g.options.Type != typ {
			// Not the type we want.
			continue
		}

		for _, name := range vspec.Names {
			if name.Name == "_" {
				continue // ignore
			}

			obj, ok := g.pkgDefs[name]
			if !ok {
				return g.fail("no value for constant %q", name.Name)
			}

			info, ok := obj.Type().Underlying().(*types.Basic)
			if !ok || info.Info()&types.IsInteger == 0 {
				return g.fail("%q must be an integer type", typ)
			}

			g.underlyingType = info.String()

			value := obj.(*types.Const).Val()
			if value.Kind() != constant.Int {
				return g.fail("%q constant is not an integer", name.Name)
			}

			i64, _ := constant.Int64Val(value)
			u64, _ := constant.Uint64Val(value)

			v := Value{
				OriginalName: name.Name,
				Value:        i64,
				String:       value.String(),
			}

			if info.Info()&types.IsUnsigned != 0 {
				v.Value = int64(u64)
			}

			v.Name = strings.ToLower(strings.TrimSpace(name.Name))
			v.Name = strings.ReplaceAll(v.Name, "_", "-")

			comment := vspec.Comment
			if comment != nil && len(comment.List) == 1 {
				if err := g.parseComment(strings.TrimSpace(comment.Text()), &v); err != nil {
					return g.fail("%s: %w", name.Name, err)
				}
			}

			g.values = append(g.values, v)
		}
	}

	return false
}

// parseComment applies "name=...", "id=..." fields from a constant's line
// comment. Names may be quoted.
func (g *Generator) parseComment(text string, v *Value) error {
	var err error

	fields := strset.New(strings.Split(text, ", ")...)

	fields.Each(func(field string) bool {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return true
		}

		switch key {
		case "name":
			if strings.HasPrefix(value, `"`) {
				value, err = strconv.Unquote(value)
				if err != nil {
					return false
				}
			}
			v.Name = value
		case "id":
			v.ID = value
			g.generateIDs = true
		}

		return true
	})

	return err
}

var _tmpl = template.Must(template.New("").Funcs(funcMap).Parse(`// Code generated by "gen-enum {{ join .Args " " }}"; DO NOT EDIT.

package {{ .PackageName }}

import (
	"errors"
	"fmt"
)

func _() {
	// An "invalid array index" compiler error signifies that the constant
	// values have changed. Run the generator again.
	var x [1]struct{}
        {{- range .Values }}
	_ = x[{{ .OriginalName }}-{{ .Value }}]
        {{- end }}
}

var _{{ .Type }}_string_to_type = map[string]{{ .Type }}{
	{{- range $i, $value := .Values }}
	"{{ $value.Name }}": {{ $value.OriginalName }},
	{{- end }}
}

var _{{ .Type }}_type_to_string = map[{{ .Type }}]string{
	{{- range $i, $value := .Values }}
	{{ $value.OriginalName }}: "{{ $value.Name }}",
	{{- end }}
}

{{ if .GenerateIDs }}
var _{{ .Type }}_id_to_type = map[{{ .UnderlyingType }}]{{ .Type }}{
	{{- range $i, $value := .Values }}
	{{ $value.ID }}: {{ $value.OriginalName }},
	{{- end }}
}

var _{{ .Type }}_type_to_id = map[{{ .Type }}]{{ .UnderlyingType }}{
	{{- range $i, $value := .Values }}
	{{ $value.OriginalName }}: {{ $value.ID }},
	{{- end }}
}
{{ end }}

var ErrInvalid{{ .Type }} = errors.New("invalid {{ .Type }}")

{{ if .GenerateIDs }}
{{ if .Pointer }}
func (i *{{ .Type }}) ID() {{ .UnderlyingType }} {
	return _{{ .Type }}_type_to_id[*i]
}
{{ else }}
func (i {{ .Type }}) ID() {{ .UnderlyingType }} {
	return _{{ .Type }}_type_to_id[i]
}
{{ end }}
{{ end }}

{{ if .Pointer }}
func (i *{{ .Type }}) String() string {
	return _{{ .Type }}_type_to_string[*i]
}
{{ else }}
func (i {{ .Type }}) String() string {
	return _{{ .Type }}_type_to_string[i]
}
{{ end }}

{{ if .GenerateFlag }}
func (i *{{ .Type }}) Set(s string) error {
	if t, ok := _{{ .Type }}_string_to_type[s]; ok {
		*i = t
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalid{{ .Type }}, s)
}

func (i *{{ .Type }}) Type() string {
	return "{{ .Type }}"
}
{{ end }}

{{ if .GenerateText }}
func (i {{ .Type }}) MarshalText() ([]byte, error) {
	if s, ok := _{{ .Type }}_type_to_string[i]; ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalid{{ .Type }}, {{ .UnderlyingType }}(i))
}

func (i *{{ .Type }}) UnmarshalText(text []byte) error {
	if t, ok := _{{ .Type }}_string_to_type[string(text)]; ok {
		*i = t
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalid{{ .Type }}, text)
}
{{ end }}

{{ if .GenerateIDs }}
{{ if .Pointer }}
func IDTo{{ .Type }}(i {{ .UnderlyingType }}) *{{ .Type }} {
	if t, ok := _{{ .Type }}_id_to_type[i]; ok {
		return &t
	}
	return nil
}
{{ else }}
func IDTo{{ .Type }}(i {{ .UnderlyingType }}) {{ .Type }} {
	if t, ok := _{{ .Type }}_id_to_type[i]; ok {
		return t
	}
	return 0
}
{{ end }}
{{ end }}

{{ if .Pointer }}
func StringTo{{ .Type }}(s string) *{{ .Type }} {
	if t, ok := _{{ .Type }}_string_to_type[s]; ok {
		return &t
	}
	return nil
}
{{ else }}
func StringTo{{ .Type }}(s string) {{ .Type }} {
	if t, ok := _{{ .Type }}_string_to_type[s]; ok {
		return t
	}
	return 0
}
{{ end }}

func Is{{ .Type }}(s string) bool {
	if _, ok := _{{ .Type }}_string_to_type[s]; ok {
		return true
	}
	return false
}

func {{ .Type }}List() []{{ .Type }} {
	return []{{ .Type }}{
		{{- range $i, $value := .Values }}
		{{ $value.OriginalName }},
		{{- end }}
	}
}
`))
