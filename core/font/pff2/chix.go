package pff2

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// chixRecordLen is the size of a character index record:
// code point (u32), flags (u8), glyph offset (u32).
const chixRecordLen = 4 + 1 + 4

// chixReservedFlags must be zero in the current format revision.
const chixReservedFlags = 0b111

// charIndex maps code points to the file offsets of their glyph definitions.
// The position of a code point in insertion order is its sequence index,
// which determines the glyph's atlas cell.
//
// A code point indexed more than once keeps its first position, but its
// offset is overwritten by the last record. The first sequence index is kept
// deliberately, so a duplicate never claims a second atlas cell.
type charIndex struct {
	m *linkedhashmap.Map // rune → uint32
}

func newCharIndex() *charIndex {
	return &charIndex{m: linkedhashmap.New()}
}

func (ix *charIndex) put(r rune, offset uint32) {
	ix.m.Put(r, offset)
}

// Len returns the number of distinct code points.
func (ix *charIndex) Len() int {
	return ix.m.Size()
}

// indexEntry is a code point together with its glyph offset and sequence index.
type indexEntry struct {
	r      rune
	offset uint32
	seq    int
}

// entries lists all index entries in sequence order.
func (ix *charIndex) entries() []indexEntry {
	list := make([]indexEntry, 0, ix.m.Size())
	it := ix.m.Iterator()
	for it.Next() {
		list = append(list, indexEntry{
			r:      it.Key().(rune),
			offset: it.Value().(uint32),
			seq:    len(list),
		})
	}
	return list
}

// parseCharIndex parses the current section as a CHIX character index.
func (l *loader) parseCharIndex() error {
	c := &l.cursor
	if l.index.Len() > 0 {
		return errFormat(DuplicateSection, c.start-sectionHeaderLen,
			"character index occurred more than once")
	}
	if c.length%chixRecordLen != 0 {
		return errFormat(RecordSizeMismatch, c.start,
			"character index length %d is not divisible by record size %d", c.length, chixRecordLen)
	}
	body := c.body()
	count := c.length / chixRecordLen
	for i := 0; i < count; i++ {
		rec := body[i*chixRecordLen : (i+1)*chixRecordLen]
		cp, flags, offset := u32(rec), rec[4], u32(rec[5:])
		if flags&chixReservedFlags != 0 {
			return errFormat(InvalidFlags, c.start+i*chixRecordLen,
				"record for U+%04X has flags %#02x", cp, flags)
		}
		l.index.put(rune(cp), offset)
	}
	tracer().Debugf("character index contains %d entries", l.index.Len())
	return nil
}
