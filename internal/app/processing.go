package app

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"tripscan/internal/domain"
)

const (
	summaryDocName      = "00_summary.html"
	spotsFallbackGlob   = "SPOT.XDS*SpotsPerImage*.png"
	fitnessFallbackName = "INTEGRATE_select2.mrfana.fitness_batch_select2.png"
)

// summaryImagePattern matches src attributes whose value carries either the
// spots-per-image or the fitness-batch filename marker. The summary HTML is
// machine-generated, so attribute-level regex matching is deliberate; see
// extractReferencedImagePaths for the isolation seam.
var summaryImagePattern = regexp.MustCompile(
	`(?i)src=["']([^"']*(?:SPOT\.XDS[^"']*SpotsPerImage|INTEGRATE_select2\.mrfana\.fitness_batch_select2)[^"']*)["']`,
)

// collectProcessingMetadata locates representative summary plot images for
// a processing directory: scrape the generated summary document first, then
// fall back to a recursive filename search. The generating pipeline emits
// relative, absolute, and file:// references inconsistently and sometimes
// omits the document entirely, hence the two tiers. Returns false when no
// image was found by either tier.
func collectProcessingMetadata(fsys FileSystem, processingDir string) (domain.ProcessingMetadata, bool) {
	var meta domain.ProcessingMetadata

	images := []string{}
	seen := map[string]bool{}

	summaryFile := locateSummaryDocument(fsys, processingDir)
	if summaryFile != "" {
		if content, err := fsys.ReadFile(summaryFile); err == nil {
			meta.SummarySource = resolveBestEffort(summaryFile)
			for _, ref := range extractReferencedImagePaths(string(content)) {
				resolved, ok := resolveSummaryReference(fsys, ref, processingDir, summaryFile)
				if !ok || seen[resolved] {
					continue
				}
				seen[resolved] = true
				images = append(images, resolved)
			}
		}
	}

	if len(images) == 0 {
		images = fallbackSummaryImages(fsys, processingDir, seen)
	}
	if len(images) == 0 {
		return domain.ProcessingMetadata{}, false
	}

	meta.SummaryImages = images
	return meta, true
}

// locateSummaryDocument returns the first summary document found, trying
// the two conventional locations before a recursive search. Empty when the
// processing directory has none.
func locateSummaryDocument(fsys FileSystem, processingDir string) string {
	candidates := []string{
		filepath.Join(processingDir, summaryDocName),
		filepath.Join(processingDir, "00_summary", summaryDocName),
	}
	for _, candidate := range candidates {
		if fileExists(fsys, candidate) {
			return candidate
		}
	}
	var found string
	_ = fsys.WalkDir(processingDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == summaryDocName {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// extractReferencedImagePaths returns the raw src attribute values of the
// summary document that carry a known plot filename marker, in document
// order. The matching pattern is the only part of scraping that knows about
// HTML.
func extractReferencedImagePaths(htmlText string) []string {
	var refs []string
	for _, match := range summaryImagePattern.FindAllStringSubmatch(htmlText, -1) {
		refs = append(refs, match[1])
	}
	return refs
}

// resolveSummaryReference turns one scraped reference into an existing
// on-disk path. Precedence: absolute reference as-is, then relative to the
// document's directory, then the bare filename directly under the
// processing directory.
func resolveSummaryReference(fsys FileSystem, ref, processingDir, summaryFile string) (string, bool) {
	ref = strings.SplitN(ref, "?", 2)[0]
	ref = strings.SplitN(ref, "#", 2)[0]
	ref = strings.TrimPrefix(ref, "file://")
	ref = strings.ReplaceAll(ref, "\\", "/")
	ref = filepath.FromSlash(ref)
	if ref == "" {
		return "", false
	}

	var candidates []string
	if filepath.IsAbs(ref) {
		candidates = []string{ref}
	} else {
		candidates = []string{
			filepath.Join(filepath.Dir(summaryFile), ref),
			filepath.Join(processingDir, filepath.Base(ref)),
		}
	}
	for _, candidate := range candidates {
		resolved := resolveBestEffort(candidate)
		if fileExists(fsys, resolved) {
			return resolved, true
		}
	}
	return "", false
}

// fallbackSummaryImages searches the processing tree for the plot files
// directly, first by the spots-per-image glob, then by the literal fitness
// batch filename. The second pattern only runs when the first found
// nothing.
func fallbackSummaryImages(fsys FileSystem, processingDir string, seen map[string]bool) []string {
	match := func(name string) func(string) bool {
		return func(candidate string) bool {
			ok, err := filepath.Match(name, candidate)
			return err == nil && ok
		}
	}
	images := []string{}
	for _, matches := range []func(string) bool{match(spotsFallbackGlob), match(fitnessFallbackName)} {
		var found []string
		_ = fsys.WalkDir(processingDir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() {
				return nil
			}
			if matches(d.Name()) {
				found = append(found, path)
			}
			return nil
		})
		sort.Strings(found)
		for _, path := range found {
			resolved := resolveBestEffort(path)
			if seen[resolved] {
				continue
			}
			seen[resolved] = true
			images = append(images, resolved)
			break
		}
		if len(images) > 0 {
			break
		}
	}
	return images
}

// fileExists reports whether path exists on disk.
func fileExists(fsys FileSystem, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}
