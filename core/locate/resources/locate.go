package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/glyphatlas/core"
	"github.com/npillmayer/glyphatlas/core/font/fontregistry"
	"github.com/npillmayer/schuko"
)

// Configuration keys
const (
	ConfFontPath = "pff2-path"      // list of font directories
	ConfGrubDirs = "pff2-grub-dirs" // search GRUB's font directories (default true)
	ConfWorkers  = "pff2-workers"   // glyph decoding goroutines
)

// GrubFontDirs are the places where GRUB installations keep their fonts.
var GrubFontDirs = []string{
	"/usr/share/grub",
	"/boot/grub/fonts",
	"/boot/grub2/fonts",
}

// NotFound returns an application error for a missing font. If a system
// font matching name exists, the error message will mention it, as outline
// fonts have to be converted to PFF2 first (e.g., with grub-mkfont).
func NotFound(name string) error {
	e := fmt.Errorf("resource missing: %v", name)
	s := fmt.Sprintf("font not found: %s", name)
	if fpath, err := findfont.Find(name); err == nil && fpath != "" {
		s = fmt.Sprintf("font not found: %s (outline font %s needs conversion to PFF2)", name, fpath)
	}
	return core.WrapError(e, core.EMISSING, s)
}

// SearchDirs returns the directories to search for fonts, as configured
// by conf. conf may be nil.
func SearchDirs(conf schuko.Configuration) []string {
	var dirs []string
	grub := true
	if conf != nil {
		if p := conf.GetString(ConfFontPath); p != "" {
			dirs = append(dirs, filepath.SplitList(p)...)
		}
		if conf.IsSet(ConfGrubDirs) {
			grub = conf.GetBool(ConfGrubDirs)
		}
	}
	if grub {
		dirs = append(dirs, GrubFontDirs...)
	}
	return dirs
}

// LocateFontFile returns the path of the PFF2 font file for name.
// name may be a file path or a font name. Font names are matched against
// the files in the search directories after normalization (see
// fontregistry.NormalizeFontname), i.e. "DejaVu Sans 16" will find file
// "dejavu_sans_16.pf2".
func LocateFontFile(conf schuko.Configuration, name string) (string, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	}
	key := fontregistry.NormalizeFontname(name)
	for _, dir := range SearchDirs(conf) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			tracer().Debugf("cannot read font directory %s: %v", dir, err)
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pf2") {
				continue
			}
			if fontregistry.NormalizeFontname(e.Name()) == key {
				fpath := filepath.Join(dir, e.Name())
				tracer().Debugf("found font %s as %s", name, fpath)
				return fpath, nil
			}
		}
	}
	return "", NotFound(name)
}
