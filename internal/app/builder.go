package app

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"tripscan/internal/domain"
	apperrors "tripscan/internal/errors"
	"tripscan/internal/logging"
)

// Builder walks a trip directory tree and assembles the status hierarchy.
// The walk is read-only and single-threaded; each level returns its subtree
// together with an ok flag, and parents combine child flags with logical
// AND, so the aggregate verdict is an explicit fold rather than shared
// state.
type Builder struct {
	FS       FileSystem
	Expected []string
	Logger   logging.Logger
}

// Build traverses the tree rooted at root. It fails with a not_found error
// when root does not exist and a not_directory error when it is not a
// directory; structural anomalies inside the tree are recorded in the
// result, never returned as errors.
func (b *Builder) Build(root string, grouping domain.Grouping) (domain.Result, error) {
	rootPath, err := resolvePath(root)
	if err != nil {
		return domain.Result{}, apperrors.Wrap(apperrors.NotFound, "resolve", root, err)
	}
	info, err := b.FS.Stat(rootPath)
	if err != nil {
		return domain.Result{}, apperrors.Wrap(apperrors.NotFound, "stat", rootPath, err)
	}
	if !info.IsDir() {
		return domain.Result{}, apperrors.New(apperrors.NotDirectory, "stat", rootPath, "trip root is not a directory")
	}

	expected := b.Expected
	if len(expected) == 0 {
		expected = domain.DefaultExpectedDirs
	}

	b.Logger.Infof("Scanning trip directory: %s", rootPath)

	trip := domain.Trip{Name: filepath.Base(rootPath), Path: rootPath}
	ok := true

	if grouping == domain.Flat {
		b.Logger.Infof("No site level; grouping pucks directly under trip.")
		site := domain.Site{Name: "root", Path: rootPath}
		for _, puckDir := range b.childDirs(rootPath) {
			puck, puckOK := b.buildPuck(filepath.Join(rootPath, puckDir), expected)
			site.Pucks = append(site.Pucks, puck)
			ok = ok && puckOK
		}
		trip.Sites = append(trip.Sites, site)
	} else {
		for _, siteDir := range b.childDirs(rootPath) {
			b.Logger.Infof(" Found site: %s", siteDir)
			site := domain.Site{Name: siteDir, Path: filepath.Join(rootPath, siteDir)}
			for _, puckDir := range b.childDirs(site.Path) {
				puck, puckOK := b.buildPuck(filepath.Join(site.Path, puckDir), expected)
				site.Pucks = append(site.Pucks, puck)
				ok = ok && puckOK
			}
			trip.Sites = append(trip.Sites, site)
		}
	}

	return domain.Result{Trip: trip, AllExpectedPresent: ok}, nil
}

func (b *Builder) buildPuck(puckPath string, expected []string) (domain.Puck, bool) {
	b.Logger.Infof("  Processing puck: %s", filepath.Base(puckPath))
	puck := domain.Puck{Name: filepath.Base(puckPath), Path: puckPath}
	ok := true
	for _, pinDir := range b.childDirs(puckPath) {
		pin, pinOK := b.buildPin(filepath.Join(puckPath, pinDir), expected)
		puck.Pins = append(puck.Pins, pin)
		ok = ok && pinOK
	}
	return puck, ok
}

func (b *Builder) buildPin(pinPath string, expected []string) (domain.Pin, bool) {
	b.Logger.Infof("   Inspecting pin: %s", filepath.Base(pinPath))
	pin := domain.Pin{Name: filepath.Base(pinPath), Path: pinPath}

	var letters []string
	for _, name := range b.childDirs(pinPath) {
		if domain.IsLetteredCollection(name) {
			letters = append(letters, name)
		}
	}
	if len(letters) == 0 {
		b.Logger.Infof("    No lettered collection directory found under pin %s", pin.Name)
		pin.MissingCollections = true
		return pin, false
	}

	ok := true
	for _, letter := range letters {
		collection, collectionOK := b.buildCollection(filepath.Join(pinPath, letter), expected)
		pin.Collections = append(pin.Collections, collection)
		ok = ok && collectionOK
	}
	return pin, ok
}

func (b *Builder) buildCollection(collectionPath string, expected []string) (domain.Collection, bool) {
	name := filepath.Base(collectionPath)
	b.Logger.Infof("    Collection %s: analysing expected folders", name)

	present := b.childDirs(collectionPath)
	presentSet := make(map[string]bool, len(present))
	for _, child := range present {
		presentSet[child] = true
	}

	collection := domain.Collection{Name: name, Path: collectionPath}
	ok := true
	for _, expectedName := range expected {
		expectedPath := filepath.Join(collectionPath, expectedName)
		status := domain.ExpectedDirStatus{Name: expectedName}
		if presentSet[expectedName] {
			status.Present = true
			status.Path = resolveBestEffort(expectedPath)
			switch expectedName {
			case "camera":
				status.Metadata = collectCameraMetadata(b.FS, status.Path)
			case "processing":
				if meta, found := collectProcessingMetadata(b.FS, status.Path); found {
					status.Metadata = meta
				}
			}
		} else {
			ok = false
		}
		collection.Expected = append(collection.Expected, status)
	}
	if missing := collection.MissingExpectedNames(); len(missing) > 0 {
		b.Logger.Infof("     Missing expected directories: %s", strings.Join(missing, ", "))
	}

	expectedSet := make(map[string]bool, len(expected))
	for _, expectedName := range expected {
		expectedSet[expectedName] = true
	}
	for _, child := range present {
		if !expectedSet[child] {
			collection.Extras = append(collection.Extras, child)
		}
	}
	sort.Strings(collection.Extras)
	if len(collection.Extras) > 0 {
		b.Logger.Infof("     Extra directories detected: %s", strings.Join(collection.Extras, ", "))
	}

	return collection, ok
}

// childDirs lists the direct child directory names of path in lexicographic
// order. Symlinks that resolve to directories count as directories; ReadDir
// reports them as non-dir entries, so they need an extra Stat. Listing
// failures yield an empty slice; traversal treats an unreadable directory
// like an empty one.
func (b *Builder) childDirs(path string) []string {
	entries, err := b.FS.ReadDir(path)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			if info, err := b.FS.Stat(filepath.Join(path, entry.Name())); err == nil && info.IsDir() {
				names = append(names, entry.Name())
			}
		}
	}
	sort.Strings(names)
	return names
}

// resolvePath returns the absolute, symlink-resolved form of path.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// resolveBestEffort resolves symlinks where possible and falls back to the
// absolute unresolved path, e.g. for broken symlinks.
func resolveBestEffort(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
