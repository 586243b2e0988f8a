package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	osfs "tripscan/internal/infra/fs"
)

func mkProcessingDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "processing")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestProcessingScrapeResolvesRelativeReferences(t *testing.T) {
	dir := mkProcessingDir(t)
	if err := os.Mkdir(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	spots := filepath.Join(dir, "images", "SPOT.XDS.SpotsPerImage.png")
	writeFile(t, spots, "png")
	fitness := filepath.Join(dir, "INTEGRATE_select2.mrfana.fitness_batch_select2.png")
	writeFile(t, fitness, "png")
	writeFile(t, filepath.Join(dir, "00_summary.html"),
		`<html><body>`+
			`<img src="images/SPOT.XDS.SpotsPerImage.png?width=600"/>`+
			`<img src='INTEGRATE_select2.mrfana.fitness_batch_select2.png'/>`+
			`<img src="unrelated.png"/>`+
			`</body></html>`)

	meta, found := collectProcessingMetadata(osfs.OSFS{}, dir)
	if !found {
		t.Fatal("expected metadata")
	}
	if meta.SummarySource == "" || filepath.Base(meta.SummarySource) != "00_summary.html" {
		t.Fatalf("unexpected summary source: %q", meta.SummarySource)
	}
	if len(meta.SummaryImages) != 2 {
		t.Fatalf("expected 2 images, got %v", meta.SummaryImages)
	}
	// Discovery order follows document order.
	if filepath.Base(meta.SummaryImages[0]) != "SPOT.XDS.SpotsPerImage.png" {
		t.Fatalf("unexpected first image: %s", meta.SummaryImages[0])
	}
	if meta.SummaryImage() != meta.SummaryImages[0] {
		t.Fatal("summary image should be the first discovered")
	}
}

func TestProcessingScrapeFileURIAndAbsolutePath(t *testing.T) {
	dir := mkProcessingDir(t)
	spots := filepath.Join(dir, "SPOT.XDS_pre-cleanup.SpotsPerImage.png")
	writeFile(t, spots, "png")
	writeFile(t, filepath.Join(dir, "00_summary.html"),
		fmt.Sprintf(`<html><body><img src="file://%s"/></body></html>`, spots))

	meta, found := collectProcessingMetadata(osfs.OSFS{}, dir)
	if !found {
		t.Fatal("expected metadata")
	}
	if len(meta.SummaryImages) != 1 || filepath.Base(meta.SummaryImages[0]) != "SPOT.XDS_pre-cleanup.SpotsPerImage.png" {
		t.Fatalf("unexpected images: %v", meta.SummaryImages)
	}
}

func TestProcessingScrapeBasenameFallbackUnderProcessing(t *testing.T) {
	dir := mkProcessingDir(t)
	// Referenced as elsewhere/..., only present directly under processing.
	spots := filepath.Join(dir, "SPOT.XDS.SpotsPerImage.png")
	writeFile(t, spots, "png")
	writeFile(t, filepath.Join(dir, "00_summary.html"),
		`<html><body><img src="elsewhere/SPOT.XDS.SpotsPerImage.png"/></body></html>`)

	meta, found := collectProcessingMetadata(osfs.OSFS{}, dir)
	if !found {
		t.Fatal("expected metadata")
	}
	if len(meta.SummaryImages) != 1 || meta.SummaryImages[0] != resolveBestEffort(spots) {
		t.Fatalf("unexpected images: %v", meta.SummaryImages)
	}
}

func TestProcessingScrapeDeduplicatesReferences(t *testing.T) {
	dir := mkProcessingDir(t)
	spots := filepath.Join(dir, "SPOT.XDS.SpotsPerImage.png")
	writeFile(t, spots, "png")
	writeFile(t, filepath.Join(dir, "00_summary.html"),
		`<html><body>`+
			`<img src="SPOT.XDS.SpotsPerImage.png"/>`+
			`<img src="SPOT.XDS.SpotsPerImage.png?width=300"/>`+
			`</body></html>`)

	meta, found := collectProcessingMetadata(osfs.OSFS{}, dir)
	if !found {
		t.Fatal("expected metadata")
	}
	if len(meta.SummaryImages) != 1 {
		t.Fatalf("expected deduplicated single image, got %v", meta.SummaryImages)
	}
}

func TestProcessingSummaryInNestedDirectory(t *testing.T) {
	dir := mkProcessingDir(t)
	nested := filepath.Join(dir, "00_summary")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	spots := filepath.Join(nested, "SPOT.XDS.SpotsPerImage.png")
	writeFile(t, spots, "png")
	writeFile(t, filepath.Join(nested, "00_summary.html"),
		`<html><body><img src="SPOT.XDS.SpotsPerImage.png"/></body></html>`)

	meta, found := collectProcessingMetadata(osfs.OSFS{}, dir)
	if !found {
		t.Fatal("expected metadata")
	}
	if filepath.Base(filepath.Dir(meta.SummarySource)) != "00_summary" {
		t.Fatalf("summary source should come from the nested directory: %s", meta.SummarySource)
	}
	if len(meta.SummaryImages) != 1 {
		t.Fatalf("unexpected images: %v", meta.SummaryImages)
	}
}

func TestProcessingFallbackWithoutSummaryDocument(t *testing.T) {
	dir := mkProcessingDir(t)
	spots := filepath.Join(dir, "SPOT.XDS_pre.SpotsPerImage_v2.png")
	writeFile(t, spots, "png")

	meta, found := collectProcessingMetadata(osfs.OSFS{}, dir)
	if !found {
		t.Fatal("fallback should surface the spots image")
	}
	if meta.SummarySource != "" {
		t.Fatalf("summary source should be empty without a document, got %q", meta.SummarySource)
	}
	if len(meta.SummaryImages) != 1 || meta.SummaryImages[0] != resolveBestEffort(spots) {
		t.Fatalf("unexpected images: %v", meta.SummaryImages)
	}
}

func TestProcessingFallbackStopsAfterFirstPattern(t *testing.T) {
	dir := mkProcessingDir(t)
	writeFile(t, filepath.Join(dir, "SPOT.XDS.SpotsPerImage.png"), "png")
	writeFile(t, filepath.Join(dir, "INTEGRATE_select2.mrfana.fitness_batch_select2.png"), "png")

	meta, found := collectProcessingMetadata(osfs.OSFS{}, dir)
	if !found {
		t.Fatal("expected metadata")
	}
	if len(meta.SummaryImages) != 1 || filepath.Base(meta.SummaryImages[0]) != "SPOT.XDS.SpotsPerImage.png" {
		t.Fatalf("fallback should stop after the first pattern: %v", meta.SummaryImages)
	}
}

func TestProcessingFallbackSecondPattern(t *testing.T) {
	dir := mkProcessingDir(t)
	writeFile(t, filepath.Join(dir, "INTEGRATE_select2.mrfana.fitness_batch_select2.png"), "png")

	meta, found := collectProcessingMetadata(osfs.OSFS{}, dir)
	if !found {
		t.Fatal("expected metadata")
	}
	if len(meta.SummaryImages) != 1 || filepath.Base(meta.SummaryImages[0]) != "INTEGRATE_select2.mrfana.fitness_batch_select2.png" {
		t.Fatalf("unexpected images: %v", meta.SummaryImages)
	}
}

func TestProcessingDeadReferencesFallBack(t *testing.T) {
	dir := mkProcessingDir(t)
	spots := filepath.Join(dir, "SPOT.XDS.SpotsPerImage.png")
	writeFile(t, spots, "png")
	writeFile(t, filepath.Join(dir, "00_summary.html"),
		`<html><body><img src="gone/SPOT.XDS_other.SpotsPerImage.missing.png"/></body></html>`)

	meta, found := collectProcessingMetadata(osfs.OSFS{}, dir)
	if !found {
		t.Fatal("expected fallback metadata")
	}
	// The document was located, so the source is still recorded.
	if meta.SummarySource == "" {
		t.Fatal("summary source should be set when the document exists")
	}
	if len(meta.SummaryImages) != 1 || meta.SummaryImages[0] != resolveBestEffort(spots) {
		t.Fatalf("unexpected images: %v", meta.SummaryImages)
	}
}

func TestProcessingNothingFound(t *testing.T) {
	dir := mkProcessingDir(t)
	writeFile(t, filepath.Join(dir, "unrelated.png"), "png")

	_, found := collectProcessingMetadata(osfs.OSFS{}, dir)
	if found {
		t.Fatal("expected no metadata")
	}
}

func TestExtractReferencedImagePaths(t *testing.T) {
	refs := extractReferencedImagePaths(
		`<img SRC="a/SPOT.XDS.b.SpotsPerImage.png"> <img src='x.png'> ` +
			`<img src="INTEGRATE_SELECT2.mrfana.fitness_batch_select2.png">`)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %v", refs)
	}
	if refs[0] != "a/SPOT.XDS.b.SpotsPerImage.png" {
		t.Fatalf("unexpected first reference: %s", refs[0])
	}
}

func TestCollectCameraMetadataClassifiesExtensions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "camera")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "shot.TIFF"), "")
	writeFile(t, filepath.Join(dir, "nested", "scan.bmp"), "")
	writeFile(t, filepath.Join(dir, "table.csv"), "")
	writeFile(t, filepath.Join(dir, "readme.md"), "")

	meta := collectCameraMetadata(osfs.OSFS{}, dir)
	if len(meta.ImageFiles) != 2 {
		t.Fatalf("expected 2 images, got %v", meta.ImageFiles)
	}
	if len(meta.CSVFiles) != 1 {
		t.Fatalf("expected 1 csv, got %v", meta.CSVFiles)
	}
}
