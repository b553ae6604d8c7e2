package pff2

// Metrics holds the font-global metrics, all in pixels.
type Metrics struct {
	PointSize uint16 // nominal size, used to normalize glyph metrics to em units
	MaxWidth  uint16 // width of an atlas cell
	MaxHeight uint16 // height of an atlas cell
	Ascent    uint16
	Descent   uint16
}

// Info holds descriptive font information. It is not needed for rendering.
type Info struct {
	Name   string // NAME, e.g. "DejaVu Sans Regular 16"
	Family string // FAMI
	Weight string // WEIG, e.g. "normal" or "bold"
	Slant  string // SLAN, e.g. "normal" or "italic"
}

// check verifies that the metrics needed for atlas sizing and glyph
// normalization are present.
func (m Metrics) check() error {
	switch {
	case m.MaxWidth == 0:
		return errFormat(MissingMetrics, -1, "max width (MAXW) is unspecified or zero")
	case m.MaxHeight == 0:
		return errFormat(MissingMetrics, -1, "max height (MAXH) is unspecified or zero")
	case m.PointSize == 0:
		return errFormat(MissingMetrics, -1, "point size (PTSZ) is unspecified or zero")
	}
	return nil
}

// parseSection interprets the current section of the loader's cursor.
// Sections with unknown tags are skipped.
func (l *loader) parseSection() (err error) {
	c := &l.cursor
	switch c.tag {
	case tagNAME:
		l.info.Name, err = c.text()
	case tagFAMI:
		l.info.Family, err = c.text()
	case tagWEIG:
		l.info.Weight, err = c.text()
	case tagSLAN:
		l.info.Slant, err = c.text()
	case tagPTSZ:
		l.metrics.PointSize, err = l.sectionU16()
	case tagMAXW:
		l.metrics.MaxWidth, err = l.sectionU16()
	case tagMAXH:
		l.metrics.MaxHeight, err = l.sectionU16()
	case tagASCE:
		l.metrics.Ascent, err = l.sectionU16()
	case tagDESC:
		l.metrics.Descent, err = l.sectionU16()
	case tagCHIX:
		err = l.parseCharIndex()
	default:
		tracer().Infof("font contains section (% x), will not be interpreted", c.tag.Bytes())
	}
	return err
}

// sectionU16 reads a big-endian uint16 at the start of the current section.
func (l *loader) sectionU16() (uint16, error) {
	n, ok := l.cursor.body().u16(0)
	if !ok {
		return 0, errFormat(TruncatedInput, l.cursor.start,
			"section %s needs 2 bytes, has %d", l.cursor.tag, l.cursor.length)
	}
	tracer().P("section", l.cursor.tag.String()).Debugf("value = %d", n)
	return n, nil
}
