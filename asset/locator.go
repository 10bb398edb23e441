package asset

import "io"

// Locator searches its sources in the order given
type Locator struct {
	sources []Source
}

// NewLocator creates a Locator, nil sources are skipped
func NewLocator(sources ...Source) *Locator {
	l := &Locator{}
	for _, s := range sources {
		if s != nil {
			l.sources = append(l.sources, s)
		}
	}
	return l
}

// Exists reports whether any source has the asset
func (l *Locator) Exists(name string) bool {
	for _, s := range l.sources {
		if s.Has(name) {
			return true
		}
	}
	return false
}

// Missing returns the names no source has, in the order given
func (l *Locator) Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !l.Exists(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Open reads the asset from the first source that has it
func (l *Locator) Open(name string) (io.ReadCloser, error) {
	for _, s := range l.sources {
		if s.Has(name) {
			return s.Open(name)
		}
	}
	return nil, ErrNotFound
}
