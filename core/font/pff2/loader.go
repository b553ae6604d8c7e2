package pff2

import (
	"sync"
)

// Font is the result of parsing a PFF2 font.
type Font struct {
	Info    Info
	Metrics Metrics
	Layout  Layout
	Atlas   *Atlas
	Glyphs  map[rune]Glyph  // normalized geometry per code point
	Bitmaps map[rune]Bitmap // pixel geometry per code point
}

// Option configures loading of a font.
type Option func(*loader)

// Workers sets the number of goroutines decoding glyphs into the atlas.
// n ≤ 1 decodes sequentially, which is the default. The result does not
// depend on the number of workers.
func Workers(n int) Option {
	return func(l *loader) {
		if n < 1 {
			n = 1
		}
		l.workers = n
	}
}

// Load parses a PFF2 font from data and returns the glyph atlas together
// with the normalized glyph geometry per code point.
// data is not modified and not retained after Load returns.
//
// Any malformed input aborts loading; the error returned is a *FormatError
// describing the first failure.
func Load(data []byte, opts ...Option) (*Atlas, map[rune]Glyph, error) {
	f, err := Parse(data, opts...)
	if err != nil {
		return nil, nil, err
	}
	return f.Atlas, f.Glyphs, nil
}

// Parse parses a PFF2 font from data. In addition to what Load returns,
// the font carries font information, global metrics, the atlas layout and
// pixel-level glyph placement.
func Parse(data []byte, opts ...Option) (*Font, error) {
	l := &loader{
		cursor:  sectionCursor{data: data},
		index:   newCharIndex(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l.load()
}

// loader holds the state of loading a single font. It is not reusable.
type loader struct {
	cursor  sectionCursor
	info    Info
	metrics Metrics
	index   *charIndex
	workers int
}

func (l *loader) load() (*Font, error) {
	if err := l.cursor.checkSignature(); err != nil {
		return nil, err
	}
	for {
		more, err := l.cursor.advance()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		if err = l.parseSection(); err != nil {
			return nil, err
		}
	}
	if l.cursor.tag != tagDATA {
		found, err := l.cursor.tagString()
		if err != nil {
			return nil, err
		}
		return nil, errMismatch(UnexpectedSection, l.cursor.start-sectionHeaderLen,
			tagDATA.String(), found)
	}
	return l.parseDataSection()
}

// parseDataSection sizes the atlas and decodes all indexed glyphs.
func (l *loader) parseDataSection() (*Font, error) {
	if l.index.Len() == 0 {
		return nil, errFormat(EmptyIndex, -1, "character index is empty")
	}
	if err := l.metrics.check(); err != nil {
		return nil, err
	}
	layout, err := PackLayout(l.index.Len(), l.metrics.MaxWidth, l.metrics.MaxHeight)
	if err != nil {
		return nil, err
	}
	tracer().Infof("atlas for %d glyphs: %d columns × %d rows, %d×%d pixels",
		layout.Count, layout.Columns, layout.Rows, layout.Width(), layout.Height())
	f := &Font{
		Info:    l.info,
		Metrics: l.metrics,
		Layout:  layout,
		Atlas:   newAtlas(layout),
	}
	dec := &glyphDecoder{
		data:    l.cursor.data,
		metrics: l.metrics,
		layout:  layout,
		atlas:   f.Atlas,
	}
	entries := l.index.entries()
	glyphs, bitmaps, err := decodeGlyphs(dec, entries, l.workers)
	if err != nil {
		return nil, err
	}
	f.Glyphs = make(map[rune]Glyph, len(entries))
	f.Bitmaps = make(map[rune]Bitmap, len(entries))
	for i, e := range entries {
		f.Glyphs[e.r] = glyphs[i]
		f.Bitmaps[e.r] = bitmaps[i]
	}
	return f, nil
}

// decodeGlyphs decodes all entries, using up to workers goroutines.
// Each worker gets a contiguous run of sequence indices, hence a disjoint
// set of atlas cells, and stops at its first error. The error reported is
// the one with the lowest sequence index, as in sequential decoding.
func decodeGlyphs(dec *glyphDecoder, entries []indexEntry, workers int) ([]Glyph, []Bitmap, error) {
	glyphs := make([]Glyph, len(entries))
	bitmaps := make([]Bitmap, len(entries))
	run := func(from, to int) error {
		for i := from; i < to; i++ {
			g, bm, err := dec.decode(entries[i])
			if err != nil {
				return err
			}
			glyphs[i], bitmaps[i] = g, bm
		}
		return nil
	}
	if workers <= 1 || len(entries) < 2 {
		return glyphs, bitmaps, run(0, len(entries))
	}
	if workers > len(entries) {
		workers = len(entries)
	}
	chunk := (len(entries) + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		from, to := w*chunk, (w+1)*chunk
		if to > len(entries) {
			to = len(entries)
		}
		if from >= to {
			break
		}
		wg.Add(1)
		go func(w, from, to int) {
			defer wg.Done()
			errs[w] = run(from, to)
		}(w, from, to)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}
	tracer().Debugf("decoded %d glyphs with %d workers", len(entries), workers)
	return glyphs, bitmaps, nil
}
