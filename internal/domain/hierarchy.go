package domain

import "unicode"

// DefaultExpectedDirs is the ordered set of subdirectories every lettered
// collection is expected to contain.
var DefaultExpectedDirs = []string{"camera", "diff-center", "images", "processing"}

// Grouping selects how pucks are grouped beneath the trip root.
type Grouping int

const (
	// WithSites treats each direct child of the trip root as a site.
	WithSites Grouping = iota
	// Flat treats the trip root's children as pucks and synthesizes a
	// single site named "root" to hold them.
	Flat
)

// IsLetteredCollection reports whether a directory name qualifies as a
// lettered collection: exactly one uppercase letter, in any script. There
// is no case folding; a lowercase single letter does not qualify.
func IsLetteredCollection(name string) bool {
	runes := []rune(name)
	if len(runes) != 1 {
		return false
	}
	return unicode.IsLetter(runes[0]) && unicode.IsUpper(runes[0])
}

// ExpectedDirStatus records the presence of one expected subdirectory
// beneath a collection. Path is empty when the directory is absent.
// Metadata is nil except for present camera and processing directories.
type ExpectedDirStatus struct {
	Name     string
	Present  bool
	Path     string
	Metadata Metadata
}

// StatusLabel returns the human-readable presence label used by renderers.
func (e ExpectedDirStatus) StatusLabel() string {
	if e.Present {
		return "OK"
	}
	return "missing"
}

// Collection describes a lettered collection directory beneath a pin.
// Expected holds exactly one entry per configured expected name, in
// configured order, regardless of presence.
type Collection struct {
	Name     string
	Path     string
	Expected []ExpectedDirStatus
	Extras   []string
}

// MissingExpected reports whether any expected subdirectory is absent.
func (c Collection) MissingExpected() bool {
	for _, entry := range c.Expected {
		if !entry.Present {
			return true
		}
	}
	return false
}

// MissingExpectedNames returns the names of absent expected directories in
// configured order.
func (c Collection) MissingExpectedNames() []string {
	var names []string
	for _, entry := range c.Expected {
		if !entry.Present {
			names = append(names, entry.Name)
		}
	}
	return names
}

// Pin holds the collections found beneath one pin directory.
// MissingCollections is true iff no lettered collection was found; the
// collections list is empty in that case.
type Pin struct {
	Name               string
	Path               string
	Collections        []Collection
	MissingCollections bool
}

// HasIssues reports whether the pin lacks collections or any of its
// collections lacks an expected directory.
func (p Pin) HasIssues() bool {
	if p.MissingCollections {
		return true
	}
	for _, collection := range p.Collections {
		if collection.MissingExpected() {
			return true
		}
	}
	return false
}

// Puck groups pins inside one puck directory.
type Puck struct {
	Name string
	Path string
	Pins []Pin
}

// Site groups pucks. In flat grouping there is exactly one synthetic site
// named "root" whose path is the trip root.
type Site struct {
	Name  string
	Path  string
	Pucks []Puck
}

// Trip is the top-level directory layout of one data-collection visit.
type Trip struct {
	Name  string
	Path  string
	Sites []Site
}

// Pins visits every pin in hierarchy order.
func (t Trip) Pins(visit func(Pin)) {
	for _, site := range t.Sites {
		for _, puck := range site.Pucks {
			for _, pin := range puck.Pins {
				visit(pin)
			}
		}
	}
}

// Collections visits every collection together with its ancestry, in
// hierarchy order.
func (t Trip) Collections(visit func(Site, Puck, Pin, Collection)) {
	for _, site := range t.Sites {
		for _, puck := range site.Pucks {
			for _, pin := range puck.Pins {
				for _, collection := range pin.Collections {
					visit(site, puck, pin, collection)
				}
			}
		}
	}
}

// Stats summarises entity counts for reporting.
type Stats struct {
	Sites          int
	Pucks          int
	Pins           int
	Collections    int
	PinsWithIssues int
}

// CountStats tallies entity counts across the trip.
func (t Trip) CountStats() Stats {
	stats := Stats{Sites: len(t.Sites)}
	for _, site := range t.Sites {
		stats.Pucks += len(site.Pucks)
		for _, puck := range site.Pucks {
			stats.Pins += len(puck.Pins)
			for _, pin := range puck.Pins {
				stats.Collections += len(pin.Collections)
				if pin.HasIssues() {
					stats.PinsWithIssues++
				}
			}
		}
	}
	return stats
}

// Result is the aggregate traversal outcome: the hierarchy plus the single
// validity verdict. AllExpectedPresent is true iff every collection has all
// expected directories and every pin has at least one lettered collection;
// an empty trip satisfies this vacuously.
type Result struct {
	Trip               Trip
	AllExpectedPresent bool
}
