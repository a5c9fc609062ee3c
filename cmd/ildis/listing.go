package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/xlab/treeprint"
	"golang.org/x/term"

	"github.com/rhinobytesoftware/ilreader/il"
	"github.com/rhinobytesoftware/ilreader/methodbody"
	"github.com/rhinobytesoftware/ilreader/opcode"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// formatterFor picks the plain or styled listing formatter for w.
func formatterFor(w io.Writer, opts *options) il.Formatter {
	if !useColor(w, opts.color) {
		return il.DefaultFormatter{Descriptions: opts.descriptions}
	}
	r := lipgloss.NewRenderer(w)
	if opts.color == colorAlways {
		r.SetColorProfile(termenv.ANSI256)
	}
	return newStyledFormatter(r, opts.descriptions)
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// styledFormatter renders the same columns as il.DefaultFormatter with
// mnemonics colored by control flow.
type styledFormatter struct {
	index        lipgloss.Style
	label        lipgloss.Style
	plain        lipgloss.Style
	branch       lipgloss.Style
	exit         lipgloss.Style
	call         lipgloss.Style
	unknown      lipgloss.Style
	payload      lipgloss.Style
	comment      lipgloss.Style
	descriptions bool
}

func newStyledFormatter(r *lipgloss.Renderer, descriptions bool) *styledFormatter {
	return &styledFormatter{
		index:        r.NewStyle().Foreground(lipgloss.Color("#666666")),
		label:        r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		plain:        r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		branch:       r.NewStyle().Foreground(lipgloss.Color("#FFD75F")).Bold(true),
		exit:         r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		call:         r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		unknown:      r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Italic(true),
		payload:      r.NewStyle().Foreground(lipgloss.Color("#D7AFFF")),
		comment:      r.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true),
		descriptions: descriptions,
	}
}

func (s *styledFormatter) Format(body *il.Body, ins *il.Instruction) string {
	var b strings.Builder
	b.WriteString(s.index.Render(fmt.Sprintf("(%d)", ins.Index)))
	b.WriteByte(' ')
	b.WriteString(s.label.Render(il.Label(ins.Offset) + ":"))
	b.WriteByte(' ')

	style := s.mnemonic(ins.Opcode)
	payload := il.Payload(ins)
	if payload == "" {
		b.WriteString(style.Render(ins.Opcode.String()))
	} else {
		b.WriteString(style.Render(fmt.Sprintf("%-12s", ins.Opcode.String())))
		b.WriteByte(' ')
		b.WriteString(s.payload.Render(payload))
	}

	if s.descriptions && ins.Opcode.Description != "" {
		b.WriteString(s.comment.Render("  // " + ins.Opcode.Description))
	}
	return b.String()
}

func (s *styledFormatter) mnemonic(op opcode.Opcode) lipgloss.Style {
	if op.Unknown() {
		return s.unknown
	}
	switch op.Flow {
	case opcode.FlowBranch, opcode.FlowCondBranch:
		return s.branch
	case opcode.FlowReturn, opcode.FlowThrow:
		return s.exit
	case opcode.FlowCall:
		return s.call
	}
	return s.plain
}

// handlerTree renders each exception handler with the instructions of its
// protected, filter and handler regions.
func handlerTree(name string, body *il.Body, f il.Formatter) string {
	tree := treeprint.NewWithRoot(name)
	if len(body.Handlers) == 0 {
		tree.AddNode("no exception handlers")
		return tree.String()
	}

	for i, h := range body.Handlers {
		title := fmt.Sprintf("#%d %s", i, h.Clause.Kind)
		if h.Clause.Kind == methodbody.ClauseCatch {
			if h.CatchType != nil {
				title += " " + h.CatchType.String()
			} else {
				title += " " + il.Token(h.Clause.ClassToken).String()
			}
		}
		branch := tree.AddBranch(title)
		addRegion(branch, "try", body, h.TryStart, h.TryEnd, f)
		if h.Clause.Kind == methodbody.ClauseFilter {
			addRegion(branch, "filter", body, h.FilterStart, h.HandlerStart, f)
		}
		addRegion(branch, "handler", body, h.HandlerStart, h.HandlerEnd, f)
	}
	return tree.String()
}

func addRegion(tree treeprint.Tree, what string, body *il.Body, start, end int, f il.Formatter) {
	region := tree.AddBranch(fmt.Sprintf("%s %s..%s", what, offsetOf(body, start), offsetOf(body, end)))
	for i := start; i < end && i < body.Len(); i++ {
		region.AddNode(il.Describe(body, &body.Instructions[i], f))
	}
}

// offsetOf labels an instruction index, mapping Len() to the end of code.
func offsetOf(body *il.Body, idx int) string {
	if idx >= 0 && idx < body.Len() {
		return il.Label(body.Instructions[idx].Offset)
	}
	return il.Label(body.CodeSize)
}
