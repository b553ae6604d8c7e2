package pff2

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/glyphatlas/core"
)

// ErrorKind enumerates the ways loading a PFF2 font may fail.
// ErrorKind implements error, so clients may check for a kind with
//
//     errors.Is(err, pff2.BadMagic)
//
type ErrorKind int

const (
	NoError            ErrorKind = iota
	TruncatedInput               // fewer bytes available than a field or record requires
	BadSignature                 // first section is not tagged FILE
	BadMagic                     // FILE section does not contain "PFF2"
	UnexpectedSection            // section terminating the scan is not DATA
	EncodingError                // tag or text is not valid UTF-8
	RecordSizeMismatch           // CHIX length not divisible by the record size
	DuplicateSection             // more than one non-empty CHIX section
	InvalidFlags                 // reserved bits set in a CHIX record
	MissingMetrics               // point size, max width or max height unset or zero
	EmptyIndex                   // no glyphs indexed
	OversizedGlyph               // glyph exceeds its cell, or atlas exceeds MaxAtlasPixels
)

var kindNames = [...]string{
	"no error",
	"truncated input",
	"bad signature",
	"bad magic",
	"unexpected section",
	"encoding error",
	"record size mismatch",
	"duplicate section",
	"invalid flags",
	"missing metrics",
	"empty index",
	"oversized glyph",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

func (k ErrorKind) Error() string {
	return "PFF2 font format: " + k.String()
}

// FormatError describes the first failure encountered while loading a font.
// Offset is the position in the font data where the failure was detected,
// or -1 if the failure is not tied to a position. Expected and Found hold
// the expected and actual tag or content, where applicable.
type FormatError struct {
	Kind     ErrorKind
	Offset   int
	Expected string
	Found    string
	Detail   string
}

var _ core.AppError = (*FormatError)(nil)

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}
	if e.Expected != "" || e.Found != "" {
		fmt.Fprintf(&b, ": expected %q, found %q", e.Expected, e.Found)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap returns the error's kind.
func (e *FormatError) Unwrap() error {
	return e.Kind
}

// ErrorCode returns core.EMISSING for missing font data and core.EFORMAT
// for everything else.
func (e *FormatError) ErrorCode() int {
	switch e.Kind {
	case MissingMetrics, EmptyIndex:
		return core.EMISSING
	}
	return core.EFORMAT
}

// UserMessage returns the error text without the offset, suitable for
// display to end users.
func (e *FormatError) UserMessage() string {
	if e.Detail != "" {
		return "PFF2 font: " + e.Kind.String() + ": " + e.Detail
	}
	return "PFF2 font: " + e.Kind.String()
}

// KindOf returns the ErrorKind of err, or NoError if err is not a
// PFF2 format error.
func KindOf(err error) ErrorKind {
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return NoError
}

func errFormat(kind ErrorKind, offset int, detail string, args ...interface{}) error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &FormatError{Kind: kind, Offset: offset, Detail: detail}
}

func errMismatch(kind ErrorKind, offset int, expected, found string) error {
	return &FormatError{Kind: kind, Offset: offset, Expected: expected, Found: found}
}
