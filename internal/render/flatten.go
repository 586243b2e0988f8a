package render

import (
	"html/template"
	"path/filepath"
	"strings"

	"tripscan/internal/domain"
)

// PreviewColumn describes one fixed preview slot in the HTML report.
// Search is the filename marker that assigns an image to the slot; Missing
// is the designated filename reported when no image matches.
type PreviewColumn struct {
	Key     string
	Search  string
	Header  string
	Missing string
}

// CameraPreviewColumns are the camera shots shown per collection: three
// loop-inter angles plus the two raster slots, in ascending angle order.
var CameraPreviewColumns = []PreviewColumn{
	{Key: "loop_inter_4_000", Search: "loop-inter_4_000", Header: "Loop Inter 4 (0°)", Missing: "loop-inter_4_000.jpeg"},
	{Key: "loop_inter_4_045", Search: "loop-inter_4_045", Header: "Loop Inter 4 (45°)", Missing: "loop-inter_4_045.jpeg"},
	{Key: "loop_inter_4_090", Search: "loop-inter_4_090", Header: "Loop Inter 4 (90°)", Missing: "loop-inter_4_090.jpeg"},
	{Key: "raster_090", Search: "raster_090", Header: "Raster 90°", Missing: "raster_090.jpeg"},
	{Key: "raster_180", Search: "raster_180", Header: "Raster 180°", Missing: "raster_180.jpeg"},
}

// ProcessingPreviewColumns are the two summary plot slots, keyed by the
// filename markers the processing extractor scrapes for.
var ProcessingPreviewColumns = []PreviewColumn{
	{Key: "spots_per_image", Search: "SpotsPerImage", Header: "Spots Per Image", Missing: "SPOT.XDS.SpotsPerImage.png"},
	{Key: "integrate_fitness", Search: "INTEGRATE_select2.mrfana.fitness_batch_select2", Header: "Fitness Batch", Missing: "INTEGRATE_select2.mrfana.fitness_batch_select2.png"},
}

// Preview is one embedded image cell. DataURI is typed for direct use in
// the report template (data: URLs would otherwise be sanitised away).
// TakenAt is a best-effort EXIF capture timestamp, empty when the image
// carries none.
type Preview struct {
	Path     string
	Basename string
	DataURI  template.URL
	TakenAt  string
}

// ExpectedCell is the per-expected-directory status carried on a row.
type ExpectedCell struct {
	Present bool
	Status  string
	Path    string
}

// Row is one collection flattened with its full ancestry, the inputs of
// both the HTML table and the console summary table.
type Row struct {
	Trip                  string
	TripPath              string
	Site                  string
	SitePath              string
	Puck                  string
	PuckPath              string
	Pin                   string
	PinPath               string
	Collection            string
	CollectionPath        string
	Expected              map[string]ExpectedCell
	Extras                []string
	MissingExpectedNames  []string
	PinMissingCollections bool
	Issues                []string

	CameraCells       map[string]*Preview
	CameraMissing     []string
	ProcessingCells   map[string]*Preview
	ProcessingMissing []string
}

// embedFunc turns an image path into an embedded preview, or nil when the
// file cannot be read. Separated so flattening stays testable without
// base64 fixtures.
type embedFunc func(path string) *Preview

// Flatten produces one row per collection in hierarchy order, selecting
// preview images for the fixed camera and processing columns. Each camera
// image is assigned to at most one column (first match wins, in column
// order).
func Flatten(result domain.Result, embed embedFunc) []Row {
	if embed == nil {
		embed = func(string) *Preview { return nil }
	}
	var rows []Row
	result.Trip.Collections(func(site domain.Site, puck domain.Puck, pin domain.Pin, collection domain.Collection) {
		row := Row{
			Trip:                  result.Trip.Name,
			TripPath:              result.Trip.Path,
			Site:                  site.Name,
			SitePath:              site.Path,
			Puck:                  puck.Name,
			PuckPath:              puck.Path,
			Pin:                   pin.Name,
			PinPath:               pin.Path,
			Collection:            collection.Name,
			CollectionPath:        collection.Path,
			Expected:              map[string]ExpectedCell{},
			Extras:                collection.Extras,
			MissingExpectedNames:  collection.MissingExpectedNames(),
			PinMissingCollections: pin.MissingCollections,
			CameraCells:           map[string]*Preview{},
			ProcessingCells:       map[string]*Preview{},
		}

		var camera domain.CameraMetadata
		var processing domain.ProcessingMetadata
		for _, entry := range collection.Expected {
			row.Expected[entry.Name] = ExpectedCell{
				Present: entry.Present,
				Status:  entry.StatusLabel(),
				Path:    entry.Path,
			}
			switch meta := entry.Metadata.(type) {
			case domain.CameraMetadata:
				camera = meta
			case domain.ProcessingMetadata:
				processing = meta
			}
		}

		if row.PinMissingCollections {
			row.Issues = append(row.Issues, "Pin missing lettered collections")
		}
		if len(row.MissingExpectedNames) > 0 {
			row.Issues = append(row.Issues, "Missing: "+strings.Join(row.MissingExpectedNames, ", "))
		}
		if len(row.Extras) > 0 {
			row.Issues = append(row.Issues, "Extras: "+strings.Join(row.Extras, ", "))
		}

		used := map[string]bool{}
		for _, column := range CameraPreviewColumns {
			preview := firstPreview(camera.ImageFiles, column.Search, used, embed)
			if preview != nil {
				used[preview.Path] = true
			} else {
				row.CameraMissing = append(row.CameraMissing, column.Missing)
			}
			row.CameraCells[column.Key] = preview
		}

		var processingPreviews []*Preview
		for _, path := range processing.SummaryImages {
			if preview := embed(path); preview != nil {
				processingPreviews = append(processingPreviews, preview)
			}
		}
		for _, column := range ProcessingPreviewColumns {
			marker := strings.ToLower(column.Search)
			var preview *Preview
			for _, candidate := range processingPreviews {
				if strings.Contains(strings.ToLower(candidate.Basename), marker) {
					preview = candidate
					break
				}
			}
			if preview == nil {
				row.ProcessingMissing = append(row.ProcessingMissing, column.Missing)
			}
			row.ProcessingCells[column.Key] = preview
		}

		rows = append(rows, row)
	})
	return rows
}

// firstPreview embeds the first image whose filename contains search and
// that has not been claimed by an earlier column.
func firstPreview(imageFiles []string, search string, used map[string]bool, embed embedFunc) *Preview {
	for _, path := range imageFiles {
		if used[path] || !strings.Contains(filepath.Base(path), search) {
			continue
		}
		if preview := embed(path); preview != nil {
			return preview
		}
	}
	return nil
}
