// Package render draws the exception taxonomy for terminals.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/throwables/pkg/taxonomy"
)

// Options controls rendering
type Options struct {
	// Plain disables all styling
	Plain bool

	// Describe returns an optional description shown after an id
	Describe func(id string) (string, bool)
}

var builtinIDs = func() map[string]bool {
	m := make(map[string]bool, len(taxonomy.Builtins()))
	for _, d := range taxonomy.Builtins() {
		m[d.ID] = true
	}
	return m
}()

// Tree renders the subtree rooted at id. An empty id means the root.
func Tree(reg *taxonomy.Registry, id string, opts Options) (string, error) {
	if id == "" {
		root := reg.Root()
		if root == nil {
			return "", nil
		}
		id = root.ID()
	}
	top, err := reg.Lookup(id)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(opts.label(top))
	b.WriteByte('\n')
	if err := writeChildren(&b, reg, top, "", opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeChildren(b *strings.Builder, reg *taxonomy.Registry, et *taxonomy.ExceptionType, prefix string, opts Options) error {
	children, err := reg.Children(et.ID())
	if err != nil {
		return err
	}
	for i, c := range children {
		branch, indent := "├── ", "│   "
		if i == len(children)-1 {
			branch, indent = "└── ", "    "
		}
		b.WriteString(opts.style(BranchStyle, prefix+branch))
		b.WriteString(opts.label(c))
		b.WriteByte('\n')
		if err := writeChildren(b, reg, c, prefix+indent, opts); err != nil {
			return err
		}
	}
	return nil
}

func (o Options) label(et *taxonomy.ExceptionType) string {
	style := DeclaredStyle
	if builtinIDs[et.ID()] {
		style = BuiltinStyle
	}
	out := o.style(style, et.ID())
	if o.Describe != nil {
		if d, ok := o.Describe(et.ID()); ok && d != "" {
			out += " " + o.style(DescriptionStyle, "- "+d)
		}
	}
	return out
}

func (o Options) style(s lipgloss.Style, text string) string {
	if o.Plain {
		return text
	}
	return s.Render(text)
}

// Match renders the result of checking thrown against filters in order.
// matched is the index of the catching filter, or -1.
func Match(thrown string, filters []string, matched int, opts Options) string {
	var b strings.Builder
	b.WriteString(opts.style(TitleStyle, "throw "+thrown))
	b.WriteByte('\n')
	for i, f := range filters {
		switch {
		case i == matched:
			b.WriteString(opts.style(MatchStyle, fmt.Sprintf("  ✓ catch %s", f)))
		case matched >= 0 && i > matched:
			b.WriteString(opts.style(BranchStyle, fmt.Sprintf("  - catch %s (not reached)", f)))
		default:
			b.WriteString(opts.style(NoMatchStyle, fmt.Sprintf("  ✗ catch %s", f)))
		}
		b.WriteByte('\n')
	}
	if matched < 0 {
		b.WriteString(opts.style(NoMatchStyle, "  uncaught"))
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary renders a boxed count of built-in and declared types
func Summary(reg *taxonomy.Registry, opts Options) string {
	total := reg.Len()
	builtin := 0
	for _, id := range reg.IDs() {
		if builtinIDs[id] {
			builtin++
		}
	}
	text := fmt.Sprintf("%d exception types (%d built-in, %d declared)", total, builtin, total-builtin)
	if opts.Plain {
		return text
	}
	return BoxStyle.Render(text)
}
