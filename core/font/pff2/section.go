package pff2

import (
	"unicode/utf8"
)

const (
	sectionHeaderLen = 8          // tag + length
	openLength       = 0xFFFFFFFF // section continues to end of data
)

// sectionCursor walks the sections of a font sequentially. After each call
// to advance, tag, start and length describe the current section's body.
// The cursor only moves forward; random access into glyph data is done
// through binarySegm views on the same buffer.
type sectionCursor struct {
	data   binarySegm
	tag    Tag
	start  int // offset of the section body
	length int // length of the section body
}

// advance reads the section header located immediately behind the current
// section's body. It returns false if the new section is open-ended (length
// 0xFFFFFFFF), which terminates the section scan. For the open-ended section,
// length is set to the number of remaining bytes.
func (c *sectionCursor) advance() (bool, error) {
	pos := c.start + c.length
	hdr, ok := c.data.view(pos, sectionHeaderLen)
	if !ok {
		return false, errFormat(TruncatedInput, pos,
			"section header needs %d bytes, %d available", sectionHeaderLen, len(c.data)-pos)
	}
	c.tag = MakeTag(hdr)
	n := u32(hdr[4:])
	c.start = pos + sectionHeaderLen
	if n == openLength {
		c.length = len(c.data) - c.start
		tracer().Debugf("section %s at %d is open-ended", c.tag, pos)
		return false, nil
	}
	if uint64(c.start)+uint64(n) > uint64(len(c.data)) {
		return false, errFormat(TruncatedInput, pos,
			"section %s declares %d bytes, %d available", c.tag, n, len(c.data)-c.start)
	}
	c.length = int(n)
	tracer().Debugf("section %s at %d, length %d", c.tag, pos, n)
	return true, nil
}

// body returns the current section's body.
func (c *sectionCursor) body() binarySegm {
	return c.data[c.start : c.start+c.length]
}

// tagString returns the current tag for diagnostics. It fails with
// EncodingError if the tag bytes are not valid UTF-8.
func (c *sectionCursor) tagString() (string, error) {
	b := c.tag.Bytes()
	if !utf8.Valid(b) {
		return "", errFormat(EncodingError, c.start-sectionHeaderLen,
			"section tag % x is not valid UTF-8", b)
	}
	return string(b), nil
}

// text returns the current section's body as a string. Trailing NUL bytes
// are stripped, as font generators write C-style strings.
func (c *sectionCursor) text() (string, error) {
	b := c.body()
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	if !utf8.Valid(b) {
		return "", errFormat(EncodingError, c.start,
			"body of section %s is not valid UTF-8", c.tag)
	}
	return string(b), nil
}

// checkSignature reads the first section, which has to be FILE with
// content "PFF2".
func (c *sectionCursor) checkSignature() error {
	if _, err := c.advance(); err != nil {
		return err
	}
	if c.tag != tagFILE {
		found, err := c.tagString()
		if err != nil {
			return err
		}
		return errMismatch(BadSignature, 0, tagFILE.String(), found)
	}
	magic, err := c.text()
	if err != nil {
		return err
	}
	if c.length != len(Magic) || magic != Magic {
		return errMismatch(BadMagic, c.start, Magic, magic)
	}
	return nil
}
