package domain

// Metadata is the closed set of per-directory metadata shapes. A nil
// Metadata means the expected directory carries none. The concrete shape is
// selected by the expected directory's name: camera directories carry
// CameraMetadata, processing directories ProcessingMetadata.
type Metadata interface {
	isMetadata()
}

// CameraMetadata enumerates the files harvested from a camera directory.
// Both lists hold absolute, symlink-resolved paths in lexicographic order.
type CameraMetadata struct {
	ImageFiles []string
	CSVFiles   []string
}

func (CameraMetadata) isMetadata() {}

// ProcessingMetadata locates the summary plot images of a processing
// directory. SummarySource is the resolved path of the scraped summary
// document, empty when only the filesystem fallback produced images.
// SummaryImages preserves discovery order.
type ProcessingMetadata struct {
	SummarySource string
	SummaryImages []string
}

func (ProcessingMetadata) isMetadata() {}

// SummaryImage returns the representative plot image, the first one
// discovered, or the empty string when there is none.
func (p ProcessingMetadata) SummaryImage() string {
	if len(p.SummaryImages) == 0 {
		return ""
	}
	return p.SummaryImages[0]
}
