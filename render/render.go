// Package render fills Venn diagram templates with computed sections.
//
// Templates exist for one to five sets. A template references each set label
// as {{.A}} through {{.E}} and each section by its key, e.g. {{.IOI}}.
package render

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"slices"
	"strings"
	"text/template"
	"text/template/parse"

	"github.com/scylladb/go-set/strset"
	"go.uber.org/zap"

	"github.com/rdeusser/venn/errsync"
	"github.com/rdeusser/venn/safepool"
	"github.com/rdeusser/venn/venn"
)

// MaxSets is the largest diagram a template exists for.
const MaxSets = 5

const defaultLabels = "ABCDE"

//go:embed templates/*.svg
var templateFS embed.FS

var defaultRenderer = New()

var bufferPool = safepool.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

// Renderer draws diagrams from the embedded templates. Templates are parsed
// and checked on first use. A Renderer is safe for concurrent use.
type Renderer struct {
	mode   venn.Mode
	logger *zap.Logger

	once errsync.Once
	tmpl *template.Template
}

type Option func(*Renderer)

// WithMode sets how sections are reported in the diagram. The default is
// venn.ModeCount.
func WithMode(mode venn.Mode) Option {
	return func(r *Renderer) {
		r.mode = mode
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{
		mode:   venn.ModeCount,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Draw computes the sections of data and renders them with the template for
// len(data) sets. Labels name the sets in input order; nil selects A, B, C...
// A nil Renderer uses the defaults.
func Draw[T comparable](r *Renderer, data [][]T, labels []string) ([]byte, error) {
	if r == nil {
		r = defaultRenderer
	}

	n := len(data)
	if n > MaxSets {
		return nil, &venn.ConfigurationError{
			Reason: fmt.Sprintf("%d sets given, diagrams exist for at most %d", n, MaxSets),
		}
	}

	sections, err := venn.Compute(data, r.mode)
	if err != nil {
		return nil, err
	}

	dict, err := LabelDict(labels, n)
	if err != nil {
		return nil, err
	}

	for key, value := range sections {
		dict[key.String()] = escape(value.String())
	}

	r.logger.Debug("drawing diagram",
		zap.Int("sets", n),
		zap.Stringer("mode", r.mode),
		zap.Strings("labels", labelValues(dict, n)),
	)

	return r.Render(n, dict)
}

// Render executes the template for n sets with dict, which must hold every
// label and section placeholder of that template.
func (r *Renderer) Render(n int, dict map[string]string) ([]byte, error) {
	if n < 1 || n > MaxSets {
		return nil, &venn.ConfigurationError{
			Reason: fmt.Sprintf("no diagram template for %d sets", n),
		}
	}

	tmpl, err := r.templates()
	if err != nil {
		return nil, err
	}

	buf := bufferPool.Get()
	defer bufferPool.Put(buf)

	if err := tmpl.ExecuteTemplate(buf, templateName(n), dict); err != nil {
		return nil, err
	}

	return bytes.Clone(buf.Bytes()), nil
}

// LabelDict returns the label entries of a template dictionary for n sets.
// Labels are XML-escaped. When labels is nil the sets are named A, B, C...
func LabelDict(labels []string, n int) (map[string]string, error) {
	if n < 1 || n > MaxSets {
		return nil, &venn.ConfigurationError{
			Reason: fmt.Sprintf("no diagram template for %d sets", n),
		}
	}

	if labels != nil && len(labels) != n {
		return nil, &venn.ConfigurationError{
			Reason: fmt.Sprintf("%d labels given for %d sets", len(labels), n),
		}
	}

	dict := make(map[string]string, 1<<n+n)

	for i := 0; i < n; i++ {
		name := defaultLabels[i : i+1]
		if labels == nil {
			dict[name] = name
		} else {
			dict[name] = escape(labels[i])
		}
	}

	return dict, nil
}

func (r *Renderer) templates() (*template.Template, error) {
	err := r.once.Do(func() error {
		tmpl, err := template.New("diagrams").
			Option("missingkey=error").
			ParseFS(templateFS, "templates/*.svg")
		if err != nil {
			return err
		}

		for n := 1; n <= MaxSets; n++ {
			if err := checkPlaceholders(tmpl.Lookup(templateName(n)), n); err != nil {
				return err
			}
		}

		r.tmpl = tmpl
		r.logger.Debug("parsed diagram templates", zap.Int("count", MaxSets))

		return nil
	})

	return r.tmpl, err
}

func templateName(n int) string {
	return fmt.Sprintf("%d_set.svg", n)
}

// checkPlaceholders verifies that the template for n sets references exactly
// the labels and sections of an n-set diagram.
func checkPlaceholders(tmpl *template.Template, n int) error {
	if tmpl == nil || tmpl.Tree == nil {
		return &venn.ConfigurationError{Reason: fmt.Sprintf("missing template %s", templateName(n))}
	}

	want := Placeholders(n)
	got := strset.New()
	collectFields(tmpl.Tree.Root, got)

	missing := strset.Difference(want, got)
	unknown := strset.Difference(got, want)

	if missing.IsEmpty() && unknown.IsEmpty() {
		return nil
	}

	return &venn.ConfigurationError{
		Reason: fmt.Sprintf("template %s: missing placeholders %v, unknown placeholders %v",
			tmpl.Name(), sorted(missing), sorted(unknown)),
	}
}

// Placeholders returns the names a template for n sets must reference.
func Placeholders(n int) *strset.Set {
	names := strset.New()

	for i := 0; i < n && i < MaxSets; i++ {
		names.Add(defaultLabels[i : i+1])
	}

	for key := range venn.Keys(n) {
		names.Add(key.String())
	}

	return names
}

func collectFields(node parse.Node, fields *strset.Set) {
	switch node := node.(type) {
	case *parse.ListNode:
		if node == nil {
			return
		}
		for _, n := range node.Nodes {
			collectFields(n, fields)
		}
	case *parse.ActionNode:
		collectFields(node.Pipe, fields)
	case *parse.PipeNode:
		if node == nil {
			return
		}
		for _, cmd := range node.Cmds {
			for _, arg := range cmd.Args {
				collectFields(arg, fields)
			}
		}
	case *parse.FieldNode:
		if len(node.Ident) > 0 {
			fields.Add(node.Ident[0])
		}
	case *parse.IfNode:
		collectFields(node.Pipe, fields)
		collectFields(node.List, fields)
		collectFields(node.ElseList, fields)
	case *parse.RangeNode:
		collectFields(node.Pipe, fields)
		collectFields(node.List, fields)
		collectFields(node.ElseList, fields)
	case *parse.WithNode:
		collectFields(node.Pipe, fields)
		collectFields(node.List, fields)
		collectFields(node.ElseList, fields)
	}
}

func escape(s string) string {
	var sb strings.Builder
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func labelValues(dict map[string]string, n int) []string {
	values := make([]string, 0, n)
	for i := 0; i < n; i++ {
		values = append(values, dict[defaultLabels[i:i+1]])
	}
	return values
}

func sorted(s *strset.Set) []string {
	list := s.List()
	slices.Sort(list)
	return list
}
