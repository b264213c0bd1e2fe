package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bkmeneguello/codeview/internal/config"
	"github.com/bkmeneguello/codeview/internal/document"
	"github.com/bkmeneguello/codeview/internal/export"
	"github.com/bkmeneguello/codeview/internal/fileio"
	"github.com/bkmeneguello/codeview/internal/layout"
	"github.com/bkmeneguello/codeview/internal/logging"
	"github.com/bkmeneguello/codeview/internal/syntax"
	"github.com/bkmeneguello/codeview/internal/theme"
)

// loadDocument reads path into a document with the configured comment
// toggle, hidden when noComments is set.
func (a *app) loadDocument(path string, noComments bool) (*document.Document, error) {
	content, err := fileio.Load(path)
	if err != nil {
		return nil, err
	}
	doc := document.New(path, content)
	doc.SetShowComments(a.cfg.ShowComments && !noComments)
	return doc, nil
}

func (a *app) newExportCommand() *cobra.Command {
	var (
		output     string
		noComments bool
	)
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a file to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(args[0], noComments)
			if err != nil {
				return err
			}
			face, err := export.LoadFace(a.cfg.FontPath, a.cfg.FontSize, a.cfg.LineSpacing)
			if err != nil {
				return err
			}
			defer face.Close()

			opts := export.Options{
				Palette:     a.palette,
				TabWidth:    a.cfg.TabWidth,
				Padding:     a.cfg.Padding,
				MaxDim:      a.cfg.MaxTextureDim,
				LineNumbers: a.cfg.ShowLineNumbers,
			}
			out, err := export.Export(cmd.Context(), doc, face, opts, func(defaultName string) (string, error) {
				if output == "" {
					return defaultName, nil
				}
				return output, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Code image saved to:", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: file name with a .png extension)")
	cmd.Flags().BoolVar(&noComments, "no-comments", false, "strip comments before rendering")
	return cmd
}

func (a *app) newStripCommand() *cobra.Command {
	var showDiff bool
	cmd := &cobra.Command{
		Use:   "strip <file>",
		Short: "Print a file with its comments removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(args[0], true)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !showDiff {
				_, err := io.WriteString(out, doc.Processed)
				return err
			}
			return writeLineDiff(out, doc.Content, doc.Processed)
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a line diff against the original instead")
	return cmd
}

// writeLineDiff prints the lines of a and b prefixed with "-", "+" or " ".
func writeLineDiff(w io.Writer, a, b string) error {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range syntax.SplitLines(d.Text) {
			if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *app) newCatCommand() *cobra.Command {
	var (
		noComments bool
		colorMode  string
	)
	cmd := &cobra.Command{
		Use:   "cat <file>",
		Short: "Print a file with syntax highlighting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(args[0], noComments)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			color, err := useColor(colorMode, out)
			if err != nil {
				return err
			}
			return writeHighlighted(out, doc, a.palette, a.cfg.TabWidth, a.cfg.ShowLineNumbers, color)
		},
	}
	cmd.Flags().BoolVar(&noComments, "no-comments", false, "strip comments before printing")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize output: auto, always or never")
	return cmd
}

// useColor decides whether cat output gets colors. auto colors only
// terminals.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color %q: want auto, always or never", mode)
	}
}

// writeHighlighted prints doc line by line through the shared scanner, with
// the palette colors when color is set.
func writeHighlighted(w io.Writer, doc *document.Document, p theme.Palette, tabWidth int, lineNumbers, color bool) error {
	renderer := lipgloss.NewRenderer(w)
	if color {
		renderer.SetColorProfile(termenv.TrueColor)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	var styles [syntax.NumCategories]lipgloss.Style
	for i := range styles {
		styles[i] = renderer.NewStyle().Foreground(lipgloss.Color(theme.Hex(p.Categories[i])))
	}
	gutter := renderer.NewStyle().Foreground(lipgloss.Color(theme.Hex(p.LineNumber)))

	lines := doc.LineCount()
	exp := layout.NewExpander(tabWidth)
	var b strings.Builder
	var err error
	doc.Scan(func(i int, _ string, toks []syntax.Token) bool {
		b.Reset()
		if lineNumbers {
			b.WriteString(gutter.Render(layout.GutterLabel(i+1, lines)))
		}
		exp.Reset()
		for _, tok := range toks {
			text := exp.Expand(tok.Text)
			if strings.TrimSpace(text) == "" {
				b.WriteString(text)
				continue
			}
			b.WriteString(styles[tok.Category].Render(text))
		}
		b.WriteByte('\n')
		_, err = io.WriteString(w, b.String())
		return err == nil
	})
	return err
}

func (a *app) newSearchCommand() *cobra.Command {
	var caseSensitive, noComments bool
	cmd := &cobra.Command{
		Use:   "search <file> <query>",
		Short: "Print line:column of every match of query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(args[0], noComments)
			if err != nil {
				return err
			}
			doc.SetCaseSensitive(caseSensitive)
			doc.SetQuery(args[1])
			logging.FromContext(cmd.Context()).Debug("search",
				logging.FieldPath, doc.Path,
				logging.FieldQuery, args[1],
				logging.FieldMatches, len(doc.Search.Matches))

			out := cmd.OutOrStdout()
			for _, off := range doc.Search.Matches {
				line := document.LineOf(doc.Processed, off)
				col := off - document.LineStart(doc.Processed, line) + 1
				if _, err := fmt.Fprintf(out, "%d:%d\n", line, col); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match case exactly")
	cmd.Flags().BoolVar(&noComments, "no-comments", false, "search the comment-free content")
	return cmd
}

func (a *app) newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if used := config.Used(a.v); used != "" {
				fmt.Fprintf(out, "# %s\n", filepath.ToSlash(used))
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "codeview", version)
		},
	}
}
