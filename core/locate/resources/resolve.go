package resources

import (
	"context"
	"os"

	"github.com/npillmayer/glyphatlas/core"
	"github.com/npillmayer/glyphatlas/core/font/fontregistry"
	"github.com/npillmayer/glyphatlas/core/font/pff2"
	"github.com/npillmayer/schuko"
)

type fontPlusErr struct {
	font *pff2.Font
	err  error
}

// FontPromise is returned by ResolveFont. Font blocks until the font has
// been loaded. A promise may be asked more than once, and will always
// return the same result.
type FontPromise interface {
	Font() (*pff2.Font, error)
	FontWithContext(context.Context) (*pff2.Font, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*pff2.Font, error)
}

func (loader fontLoader) Font() (*pff2.Font, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) FontWithContext(ctx context.Context) (*pff2.Font, error) {
	return loader.await(ctx)
}

// settled holds the result of a loader goroutine. result is written
// before done is closed and never changes afterwards.
type settled struct {
	done   chan struct{}
	result fontPlusErr
}

func (s *settled) await(ctx context.Context) (*pff2.Font, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return s.result.font, s.result.err
	}
}

// ResolveFont resolves a PFF2 bitmap font. Fonts already present in the
// global font registry are returned from there; otherwise the font file is
// located (see LocateFontFile), parsed and stored in the registry.
// conf may be nil.
func ResolveFont(conf schuko.Configuration, name string) FontPromise {
	return ResolveFontIn(fontregistry.GlobalRegistry(), conf, name)
}

// ResolveFontIn is like ResolveFont, but uses registry reg.
func ResolveFontIn(reg *fontregistry.Registry, conf schuko.Configuration, name string) FontPromise {
	s := &settled{done: make(chan struct{})}
	go func(s *settled) {
		defer close(s.done)
		s.result = resolve(reg, conf, name)
	}(s)
	return fontLoader{await: s.await}
}

func resolve(reg *fontregistry.Registry, conf schuko.Configuration, name string) (result fontPlusErr) {
	if f, err := reg.Font(name); err == nil {
		result.font = f
		return
	}
	fpath, err := LocateFontFile(conf, name)
	if err != nil {
		result.err = err
		return
	}
	result.font, result.err = LoadFontFile(fpath, workers(conf))
	if result.err == nil {
		reg.StoreFont(name, result.font)
	}
	return
}

// LoadFontFile reads and parses a PFF2 font file, decoding glyphs with
// the given number of goroutines.
func LoadFontFile(fpath string, workers int) (*pff2.Font, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fpath)
	}
	f, err := pff2.Parse(data, pff2.Workers(workers))
	if err != nil {
		tracer().Errorf("cannot load font %s: %v", fpath, err)
		return nil, err
	}
	tracer().Infof("loaded font %q from %s, %d glyphs", f.Info.Name, fpath, len(f.Glyphs))
	return f, nil
}

func workers(conf schuko.Configuration) int {
	if conf == nil || !conf.IsSet(ConfWorkers) {
		return 1
	}
	return conf.GetInt(ConfWorkers)
}
