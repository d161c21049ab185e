package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/clustree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// Config holds the parameters for console output.
type Config struct {
	LineWidth int            // maximum line width in fixed width positions, 0 = unlimited
	Indent    string         // prefix per level of depth
	Ellipsis  string         // marks shortened value lists
	NoColor   bool           // suppress colours even on a terminal
	Context   *uax11.Context // for measuring string widths
}

// Printer writes trees to a console.
type Printer struct {
	config  *Config
	palette palette
}

type palette struct {
	position *color.Color
	leaf     *color.Color
	inner    *color.Color
}

// New creates a printer for a configuration. If config is nil, a heuristic
// will create one from the current terminal's properties. The printer works
// on a copy of config.
func New(config *Config) *Printer {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	} else {
		c := *config
		config = &c
	}
	if config.Context == nil {
		config.Context = uax11.LatinContext
	}
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.Ellipsis == "" {
		config.Ellipsis = "…"
	}
	grapheme.SetupGraphemeClasses()
	p := &Printer{
		config: config,
		palette: palette{
			position: color.New(color.FgBlue),
			leaf:     color.New(color.FgGreen),
			inner:    color.New(color.FgRed),
		},
	}
	if config.NoColor {
		p.palette.position.DisableColor()
		p.palette.leaf.DisableColor()
		p.palette.inner.DisableColor()
	}
	return p
}

// Print outputs a tree to stdout.
func Print(t *clustree.Tree, config *Config) error {
	return New(config).Print(t, os.Stdout)
}

// Print outputs all nodes of t to w, one line per node.
func (p *Printer) Print(t *clustree.Tree, w io.Writer) error {
	if t == nil || w == nil {
		return fmt.Errorf("%w: nil", clustree.ErrIllegalArguments)
	}
	for n := range t.Traverse() {
		if err := p.printNode(n, w); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printNode(n clustree.NodeView, w io.Writer) error {
	indent := strings.Repeat(p.config.Indent, n.Depth-1)
	head := fmt.Sprintf("%d:", n.Position)
	values, points := p.fit(indent+head, n)
	c := p.palette.inner
	if n.Leaf {
		c = p.palette.leaf
	}
	if _, err := io.WriteString(w, indent); err != nil {
		return err
	}
	if _, err := p.palette.position.Fprint(w, head); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, " %d - ", n.Value); err != nil {
		return err
	}
	if _, err := c.Fprint(w, values); err != nil {
		return err
	}
	if points != "" {
		if _, err := fmt.Fprintf(w, " %s", points); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// fit formats the value and point lists of n such that the complete line
// does not exceed the configured line width, if possible.
func (p *Printer) fit(prefix string, n clustree.NodeView) (string, string) {
	head := fmt.Sprintf("%s %d - ", prefix, n.Value)
	values := fmt.Sprint(n.Values)
	points := fmt.Sprint(n.Points)
	if p.fits(head + values + " " + points) {
		return values, points
	}
	T().P("format", "console").Debugf("shortening line for node @%d", n.Position)
	if p.fits(head + values) {
		return values, ""
	}
	for k := len(n.Values) - 1; k > 0; k-- {
		short := strings.TrimSuffix(fmt.Sprint(n.Values[:k]), "]") + " " + p.config.Ellipsis + "]"
		if p.fits(head + short) {
			return short, ""
		}
	}
	return "[" + p.config.Ellipsis + "]", ""
}

func (p *Printer) fits(line string) bool {
	if p.config.LineWidth <= 0 {
		return true
	}
	return p.width(line) <= p.config.LineWidth
}

func (p *Printer) width(s string) int {
	return uax11.StringWidth(grapheme.StringFromString(s), p.config.Context)
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a printing Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly. Colours are switched off
// for non-terminals.
func ConfigFromTerminal() *Config {
	config := &Config{}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		w, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || w <= 10 {
			config.LineWidth = 80
		} else {
			config.LineWidth = w - 1
		}
	} else {
		config.LineWidth = 0
		config.NoColor = true
	}
	T().P("format", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
