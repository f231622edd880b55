package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/yacobolo/twcfg"
)

// Options controls reporter output.
type Options struct {
	UseColors bool // force colors on
	NoColors  bool // force colors off, wins over UseColors
	Verbose   bool // list every pattern, category and warning
}

// Reporter prints human-readable results of the CLI commands.
type Reporter struct {
	w         io.Writer
	useColors bool
	verbose   bool
}

// New creates a reporter writing to w.
func New(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:         w,
		useColors: shouldUseColors(opts),
		verbose:   opts.Verbose,
	}
}

func shouldUseColors(opts Options) bool {
	if opts.NoColors {
		return false
	}
	if opts.UseColors {
		return true
	}

	// https://no-color.org
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// GitHub Actions and most CI systems honor FORCE_COLOR
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintError reports a rejected declaration.
//
// Format: path: field: message (Kind)
func (r *Reporter) PrintError(path string, err error) {
	var cerr *twcfg.ConfigError
	if !errors.As(err, &cerr) {
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleRed, "error:", r.useColors), err)
		return
	}

	location := path + ":"
	if path == "" {
		location = "declaration:"
	}
	fmt.Fprintf(r.w, "%s %s %s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		cerr.Error(),
		RenderStyle(StyleGray, "("+cerr.Kind.String()+")", r.useColors))

	if hint := hintFor(cerr.Kind); hint != "" {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: "+hint, r.useColors))
	}
}

func hintFor(kind twcfg.ErrorKind) string {
	switch kind {
	case twcfg.MissingField:
		return `declare content, e.g. content: ["./src/**/*.{html,rs}"]`
	case twcfg.EmptyContent:
		return "list at least one pattern that is not an exclusion"
	case twcfg.InvalidGlobSyntax:
		return "check for unbalanced [ ] or { } in the pattern"
	default:
		return ""
	}
}

// PrintSummary describes a valid configuration.
func (r *Reporter) PrintSummary(path string, cfg *twcfg.Config) {
	fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleGreen, "✓", r.useColors), path)
	fmt.Fprintf(r.w, "%s, %s, %s\n",
		pluralizeCount(len(cfg.Content), "content pattern", "content patterns"),
		pluralizeCount(len(cfg.Theme.Categories()), "theme category", "theme categories"),
		pluralizeCount(len(cfg.Plugins), "plugin", "plugins"))

	if r.verbose {
		r.printSection("Content")
		for _, p := range cfg.Content {
			fmt.Fprintf(r.w, "  %s\n", p)
		}

		if categories := cfg.Theme.Categories(); len(categories) > 0 {
			r.printSection("Theme")
			for _, c := range categories {
				fmt.Fprintf(r.w, "  %s %s\n", c, RenderStyle(StyleGray, themeMode(cfg.Theme, c), r.useColors))
			}
		}

		if len(cfg.Plugins) > 0 {
			r.printSection("Plugins")
			for _, p := range cfg.Plugins {
				if len(p.Options) > 0 {
					fmt.Fprintf(r.w, "  %s %s\n", p.Name, RenderStyle(StyleGray, "("+pluralizeCount(len(p.Options), "option", "options")+")", r.useColors))
					continue
				}
				fmt.Fprintf(r.w, "  %s\n", p.Name)
			}
		}

		if len(cfg.Extra) > 0 {
			keys := make([]string, 0, len(cfg.Extra))
			for k := range cfg.Extra {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			r.printSection("Other keys")
			fmt.Fprintf(r.w, "  %s\n", strings.Join(keys, ", "))
		}
	}

	r.PrintWarnings(Warnings(cfg))
}

func themeMode(t twcfg.Theme, category string) string {
	_, replaced := t.Values[category]
	_, extended := t.Extend[category]
	switch {
	case replaced && extended:
		return "(replace + extend)"
	case replaced:
		return "(replace)"
	default:
		return "(extend)"
	}
}

// Warnings lists non-fatal findings about a valid configuration.
func Warnings(cfg *twcfg.Config) []string {
	var out []string
	for _, c := range cfg.Theme.Collisions() {
		out = append(out, fmt.Sprintf("theme.%s is both replaced and extended; extend entries win", c))
	}

	seen := make(map[string]bool, len(cfg.Plugins))
	for _, name := range cfg.PluginNames() {
		if seen[name] {
			out = append(out, fmt.Sprintf("plugin %s is listed more than once; the later entry takes precedence", name))
		}
		seen[name] = true
	}
	return out
}

// PrintWarnings prints warnings under a yellow header.
func (r *Reporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")
	for _, warning := range warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

func (r *Reporter) printSection(title string) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, title, r.useColors))
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
