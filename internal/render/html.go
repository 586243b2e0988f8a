package render

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime"
	"os"
	"path/filepath"
	"time"

	"tripscan/internal/domain"
	apperrors "tripscan/internal/errors"
	"tripscan/internal/infra/exif"
)

//go:embed report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "report.html.tmpl"))

// ReportOptions configure HTML rendering. Zero values select the defaults:
// the standard expected set, a title derived from the trip name, and the
// current UTC time.
type ReportOptions struct {
	ExpectedDirs []string
	Title        string
	GeneratedAt  time.Time
}

type reportData struct {
	Title             string
	GeneratedAt       string
	Trip              domain.Trip
	AllPresent        bool
	Stats             domain.Stats
	ExpectedDirs      []string
	Rows              []Row
	CameraColumns     []PreviewColumn
	ProcessingColumns []PreviewColumn
}

// HTMLReport renders the hierarchy into a self-contained HTML document
// with previews embedded as data URIs.
func HTMLReport(result domain.Result, opts ReportOptions) (string, error) {
	expectedDirs := opts.ExpectedDirs
	if len(expectedDirs) == 0 {
		expectedDirs = domain.DefaultExpectedDirs
	}
	title := opts.Title
	if title == "" {
		title = "Trip Report - " + result.Trip.Name
	}
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	data := reportData{
		Title:             title,
		GeneratedAt:       generatedAt.Format(time.RFC3339),
		Trip:              result.Trip,
		AllPresent:        result.AllExpectedPresent,
		Stats:             result.Trip.CountStats(),
		ExpectedDirs:      expectedDirs,
		Rows:              Flatten(result, EmbedImage),
		CameraColumns:     CameraPreviewColumns,
		ProcessingColumns: ProcessingPreviewColumns,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", apperrors.Wrap(apperrors.Internal, "render", "", err)
	}
	return buf.String(), nil
}

// WriteHTMLReport writes the rendered report to path, creating parent
// directories as needed.
func WriteHTMLReport(path, html string) (string, error) {
	output, err := filepath.Abs(path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.IOFailure, "resolve", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return "", apperrors.Wrap(apperrors.IOFailure, "mkdir", output, err)
	}
	if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
		return "", apperrors.Wrap(apperrors.IOFailure, "write", output, err)
	}
	return output, nil
}

var exifReader = exif.Reader{}

// EmbedImage reads an image and returns it as a data-URI preview, with a
// best-effort EXIF capture timestamp. Returns nil when the file cannot be
// read; unreadable previews are skipped, not fatal.
func EmbedImage(path string) *Preview {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	preview := &Preview{
		Path:     path,
		Basename: filepath.Base(path),
		DataURI:  template.URL(fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))),
	}
	if takenAt, err := exifReader.TakenAt(path); err == nil {
		preview.TakenAt = takenAt.Format("2006-01-02 15:04:05")
	}
	return preview
}
