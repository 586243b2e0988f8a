package render

import (
	"path/filepath"
	"testing"

	"tripscan/internal/domain"
)

func stubEmbed(path string) *Preview {
	return &Preview{
		Path:     path,
		Basename: filepath.Base(path),
		DataURI:  "data:image/jpeg;base64,stub",
	}
}

func previewResult(cameraImages []string, processing domain.ProcessingMetadata, hasProcessingMeta bool) domain.Result {
	expected := []domain.ExpectedDirStatus{
		{Name: "camera", Present: true, Path: "/t/s/p/pin/A/camera", Metadata: domain.CameraMetadata{ImageFiles: cameraImages, CSVFiles: []string{}}},
		{Name: "diff-center", Present: false},
		{Name: "images", Present: true, Path: "/t/s/p/pin/A/images"},
	}
	processingEntry := domain.ExpectedDirStatus{Name: "processing", Present: true, Path: "/t/s/p/pin/A/processing"}
	if hasProcessingMeta {
		processingEntry.Metadata = processing
	}
	expected = append(expected, processingEntry)

	return domain.Result{
		Trip: domain.Trip{
			Name: "t",
			Path: "/t",
			Sites: []domain.Site{{
				Name: "s", Path: "/t/s",
				Pucks: []domain.Puck{{
					Name: "p", Path: "/t/s/p",
					Pins: []domain.Pin{{
						Name: "pin", Path: "/t/s/p/pin",
						Collections: []domain.Collection{{
							Name:     "A",
							Path:     "/t/s/p/pin/A",
							Expected: expected,
							Extras:   []string{"scratch"},
						}},
					}},
				}},
			}},
		},
	}
}

func TestFlattenAssignsCameraPreviewColumns(t *testing.T) {
	result := previewResult([]string{
		"/cam/loop-inter_4_000.jpeg",
		"/cam/raster_090.jpeg",
		"/cam/sub/raster_180.jpeg",
	}, domain.ProcessingMetadata{}, false)

	rows := Flatten(result, stubEmbed)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]

	if row.CameraCells["loop_inter_4_000"] == nil || row.CameraCells["loop_inter_4_000"].Basename != "loop-inter_4_000.jpeg" {
		t.Fatalf("loop 0° cell wrong: %+v", row.CameraCells["loop_inter_4_000"])
	}
	if row.CameraCells["raster_090"] == nil || row.CameraCells["raster_180"] == nil {
		t.Fatal("raster cells should both resolve")
	}
	if row.CameraCells["raster_180"].Basename != "raster_180.jpeg" {
		t.Fatalf("raster 180 cell wrong: %+v", row.CameraCells["raster_180"])
	}
	wantMissing := []string{"loop-inter_4_045.jpeg", "loop-inter_4_090.jpeg"}
	if len(row.CameraMissing) != len(wantMissing) {
		t.Fatalf("unexpected camera missing list: %v", row.CameraMissing)
	}
	for i, name := range wantMissing {
		if row.CameraMissing[i] != name {
			t.Fatalf("camera missing[%d] = %s, want %s", i, row.CameraMissing[i], name)
		}
	}
}

func TestFlattenDoesNotReuseCameraImages(t *testing.T) {
	// One image whose name matches two raster slots must only fill the
	// first.
	result := previewResult([]string{"/cam/raster_090.jpeg"}, domain.ProcessingMetadata{}, false)

	rows := Flatten(result, stubEmbed)
	row := rows[0]
	if row.CameraCells["raster_090"] == nil {
		t.Fatal("raster_090 should resolve")
	}
	if row.CameraCells["raster_180"] != nil {
		t.Fatal("raster_180 must stay empty")
	}
}

func TestFlattenProcessingCellsByMarker(t *testing.T) {
	result := previewResult(nil, domain.ProcessingMetadata{
		SummarySource: "/proc/00_summary.html",
		SummaryImages: []string{"/proc/SPOT.XDS.SpotsPerImage.png"},
	}, true)

	rows := Flatten(result, stubEmbed)
	row := rows[0]
	if row.ProcessingCells["spots_per_image"] == nil {
		t.Fatal("spots cell should resolve")
	}
	if row.ProcessingCells["integrate_fitness"] != nil {
		t.Fatal("fitness cell should be empty")
	}
	if len(row.ProcessingMissing) != 1 || row.ProcessingMissing[0] != "INTEGRATE_select2.mrfana.fitness_batch_select2.png" {
		t.Fatalf("unexpected processing missing: %v", row.ProcessingMissing)
	}
}

func TestFlattenIssues(t *testing.T) {
	result := previewResult(nil, domain.ProcessingMetadata{}, false)

	rows := Flatten(result, stubEmbed)
	row := rows[0]
	if len(row.MissingExpectedNames) != 1 || row.MissingExpectedNames[0] != "diff-center" {
		t.Fatalf("unexpected missing names: %v", row.MissingExpectedNames)
	}
	if len(row.Issues) != 2 {
		t.Fatalf("expected missing + extras issues, got %v", row.Issues)
	}
	if row.Issues[0] != "Missing: diff-center" {
		t.Fatalf("unexpected first issue: %s", row.Issues[0])
	}
	if row.Issues[1] != "Extras: scratch" {
		t.Fatalf("unexpected second issue: %s", row.Issues[1])
	}
}

func TestFlattenCarriesAncestry(t *testing.T) {
	rows := Flatten(previewResult(nil, domain.ProcessingMetadata{}, false), nil)
	row := rows[0]
	if row.Trip != "t" || row.Site != "s" || row.Puck != "p" || row.Pin != "pin" || row.Collection != "A" {
		t.Fatalf("ancestry wrong: %+v", row)
	}
	if row.Expected["camera"].Status != "OK" || row.Expected["diff-center"].Status != "missing" {
		t.Fatalf("expected cells wrong: %+v", row.Expected)
	}
}
