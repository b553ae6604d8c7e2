package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphatlas/core"
	"github.com/npillmayer/glyphatlas/core/font/fontregistry"
	"github.com/npillmayer/glyphatlas/core/font/pff2"
	"github.com/npillmayer/glyphatlas/core/locate/resources"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

// tracer traces with key 'glyphatlas.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphatlas.fonts")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load (file path or font name)")
	fontpath := flag.String("path", "", "Directories to search for fonts")
	workers := flag.Int("workers", 1, "Number of goroutines decoding glyphs")
	pngfile := flag.String("png", "", "Write the glyph atlas to a PNG file and exit")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":            "go",
		"trace.glyphatlas.fonts":     *tlevel,
		"trace.glyphatlas.resources": *tlevel,
		resources.ConfWorkers:        *workers,
	}
	if *fontpath != "" {
		conf[resources.ConfFontPath] = *fontpath
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to PFF2 CLI") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	intp := &Intp{conf: conf}
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(4)
	}
	if *pngfile != "" {
		if err := intp.writePNG(*pngfile); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(5)
		}
		return
	}
	//
	// set up REPL
	repl, err := readline.New("pff2 > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	conf testconfig.Conf
	font *pff2.Font
	repl *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd := parseCommand(line)
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a single REPL command with an optional argument.
type Op struct {
	code int
	arg  string
}

const (
	QUIT int = iota
	HELP
	INFO
	GLYPH
	LIST
	PNG
	FONTS
)

// parseCommand splits a command line of the form "cmd[:arg]" or "cmd arg".
func parseCommand(line string) Op {
	var op Op
	c := strings.SplitN(line, ":", 2)
	if len(c) == 1 {
		c = strings.SplitN(line, " ", 2)
	}
	if len(c) > 1 {
		op.arg = strings.TrimSpace(c[1])
	}
	switch strings.ToLower(strings.TrimSpace(c[0])) {
	case "quit", "exit":
		op.code = QUIT
	case "info":
		op.code = INFO
	case "glyph", "g":
		op.code = GLYPH
	case "list":
		op.code = LIST
	case "png":
		op.code = PNG
	case "fonts":
		op.code = FONTS
	default:
		op.code = HELP
	}
	tracer().Debugf("parse command = %v", op)
	return op
}

func (intp *Intp) execute(op Op) (bool, error) {
	switch op.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
	case INFO:
		intp.info()
	case GLYPH:
		r, err := parseCodePoint(op.arg)
		if err != nil {
			return false, err
		}
		return false, intp.glyph(r)
	case LIST:
		n := 0
		if op.arg != "" {
			var err error
			if n, err = strconv.Atoi(op.arg); err != nil {
				return false, fmt.Errorf("list count not numeric: %v", op.arg)
			}
		}
		intp.list(n)
	case PNG:
		fname := op.arg
		if fname == "" {
			fname = fontregistry.NormalizeFontname(intp.font.Info.Name) + ".png"
		}
		return false, intp.writePNG(fname)
	case FONTS:
		fontregistry.GlobalRegistry().LogFontList()
		pterm.Printfln("loaded fonts: %v", fontregistry.GlobalRegistry().Keys())
	}
	return false, nil
}

func (intp *Intp) loadFont(fontname string) (err error) {
	if fontname == "" {
		return core.Error(core.EINVALID, "no font given, use flag -font")
	}
	intp.font, err = resources.ResolveFont(intp.conf, fontname).Font()
	if err == nil {
		intp.info()
	}
	return
}

func (intp *Intp) info() {
	f := intp.font
	lt := f.Layout
	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Property", "Value"},
		{"Name", f.Info.Name},
		{"Family", f.Info.Family},
		{"Weight", f.Info.Weight},
		{"Slant", f.Info.Slant},
		{"Point size", strconv.Itoa(int(f.Metrics.PointSize))},
		{"Ascent / Descent", fmt.Sprintf("%d / %d", f.Metrics.Ascent, f.Metrics.Descent)},
		{"Glyphs", strconv.Itoa(len(f.Glyphs))},
		{"Cell", fmt.Sprintf("%d × %d", lt.CellWidth, lt.CellHeight)},
		{"Grid", fmt.Sprintf("%d × %d", lt.Columns, lt.Rows)},
		{"Atlas", fmt.Sprintf("%d × %d", lt.Width(), lt.Height())},
	}).Render()
}

func (intp *Intp) glyph(r rune) error {
	g, ok := intp.font.Glyphs[r]
	if !ok {
		return core.Error(core.EMISSING, "font has no glyph for %U", r)
	}
	bm := intp.font.Bitmaps[r]
	pterm.Info.Printfln("%U %s", r, runenames.Name(r))
	pterm.Printfln("atlas rect %v, offset (%d,%d), advance %d",
		bm.Rect, bm.XOffset, bm.YOffset, bm.DeviceWidth)
	pterm.Printfln("tex coord %v, tex size %v, offset %v, size %v, advance %.4f",
		g.TexCoord, g.TexSize, g.Offset, g.Size, g.Advance)
	pterm.Println(glyphArt(intp.font.Atlas, bm))
	return nil
}

func (intp *Intp) list(n int) {
	runes := make([]rune, 0, len(intp.font.Glyphs))
	for r := range intp.font.Glyphs {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	if n > 0 && n < len(runes) {
		runes = runes[:n]
	}
	for _, r := range runes {
		pterm.Printfln("%U  %-3s %v", r, printable(r), intp.font.Bitmaps[r].Rect)
	}
	pterm.Printfln("%d of %d glyphs", len(runes), len(intp.font.Glyphs))
}

func (intp *Intp) writePNG(fname string) error {
	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err = png.Encode(out, intp.font.Atlas.ToRGBA()); err != nil {
		out.Close()
		return err
	}
	if err = out.Close(); err == nil {
		pterm.Success.Printfln("atlas written to %s", fname)
	}
	return err
}

// parseCodePoint accepts a single character, "U+XXXX" or a decimal number.
func parseCodePoint(s string) (rune, error) {
	if s == "" {
		return 0, core.Error(core.EINVALID, "missing code point")
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "U+") || strings.HasPrefix(upper, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, core.WrapError(err, core.EINVALID, "not a code point: %s", s)
		}
		return rune(n), nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "not a code point: %s", s)
	}
	return rune(n), nil
}

// glyphArt renders the pixels of a glyph from the atlas as text.
func glyphArt(atlas *pff2.Atlas, bm pff2.Bitmap) string {
	var b strings.Builder
	for y := bm.Rect.Min.Y; y < bm.Rect.Max.Y; y++ {
		for x := bm.Rect.Min.X; x < bm.Rect.Max.X; x++ {
			if atlas.RGBAAt(x, y).A != 0 {
				b.WriteString("█")
			} else {
				b.WriteString("·")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func printable(r rune) string {
	if r < ' ' || r == 0x7f {
		return ""
	}
	return string(r)
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	info               show font properties
	glyph:<c>          show a glyph; <c> is a character, U+XXXX or a number
	list[:n]           list (the first n) code points
	png[:file]         write the atlas to a PNG file
	fonts              list fonts in the registry
	quit               leave the CLI
	`)
}
