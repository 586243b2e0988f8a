// Package codec converts hierarchy results to and from the plain nested
// mapping persisted as JSON. The mapping is the external contract; the
// typed tree is internal. Decoding tolerates absent optional fields (lists
// default empty, booleans false) but fails on missing required keys.
package codec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tripscan/internal/domain"
	apperrors "tripscan/internal/errors"
)

// Encode converts a result into a JSON-safe nested mapping, with every
// path field as a string and list order preserved.
func Encode(result domain.Result) map[string]any {
	sites := make([]any, 0, len(result.Trip.Sites))
	for _, site := range result.Trip.Sites {
		sites = append(sites, encodeSite(site))
	}
	return map[string]any{
		"trip": map[string]any{
			"name":  result.Trip.Name,
			"path":  result.Trip.Path,
			"sites": sites,
		},
		"all_expected_present": result.AllExpectedPresent,
	}
}

func encodeSite(site domain.Site) map[string]any {
	pucks := make([]any, 0, len(site.Pucks))
	for _, puck := range site.Pucks {
		pucks = append(pucks, encodePuck(puck))
	}
	return map[string]any{
		"name":  site.Name,
		"path":  site.Path,
		"pucks": pucks,
	}
}

func encodePuck(puck domain.Puck) map[string]any {
	pins := make([]any, 0, len(puck.Pins))
	for _, pin := range puck.Pins {
		pins = append(pins, encodePin(pin))
	}
	return map[string]any{
		"name": puck.Name,
		"path": puck.Path,
		"pins": pins,
	}
}

func encodePin(pin domain.Pin) map[string]any {
	collections := make([]any, 0, len(pin.Collections))
	for _, collection := range pin.Collections {
		collections = append(collections, encodeCollection(collection))
	}
	return map[string]any{
		"name":                pin.Name,
		"path":                pin.Path,
		"missing_collections": pin.MissingCollections,
		"collections":         collections,
	}
}

func encodeCollection(collection domain.Collection) map[string]any {
	expected := make([]any, 0, len(collection.Expected))
	for _, entry := range collection.Expected {
		expected = append(expected, encodeExpected(entry))
	}
	extras := make([]any, 0, len(collection.Extras))
	for _, extra := range collection.Extras {
		extras = append(extras, extra)
	}
	return map[string]any{
		"name":     collection.Name,
		"path":     collection.Path,
		"expected": expected,
		"extras":   extras,
	}
}

func encodeExpected(entry domain.ExpectedDirStatus) map[string]any {
	var path any
	if entry.Path != "" {
		path = entry.Path
	}
	return map[string]any{
		"name":     entry.Name,
		"present":  entry.Present,
		"path":     path,
		"metadata": encodeMetadata(entry.Metadata),
	}
}

func encodeMetadata(meta domain.Metadata) map[string]any {
	switch m := meta.(type) {
	case domain.CameraMetadata:
		return map[string]any{
			"image_files": stringsToAny(m.ImageFiles),
			"csv_files":   stringsToAny(m.CSVFiles),
		}
	case domain.ProcessingMetadata:
		encoded := map[string]any{
			"summary_source": m.SummarySource,
			"summary_images": stringsToAny(m.SummaryImages),
		}
		if image := m.SummaryImage(); image != "" {
			encoded["summary_image"] = image
		}
		return encoded
	default:
		return map[string]any{}
	}
}

func stringsToAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, value := range values {
		out = append(out, value)
	}
	return out
}

// Decode rebuilds a result from its mapping form. Derived fields such as
// the representative summary image are recomputed, not read back.
func Decode(payload map[string]any) (domain.Result, error) {
	tripData, ok := payload["trip"].(map[string]any)
	if !ok {
		return domain.Result{}, decodeErr("missing required key %q", "trip")
	}
	trip := domain.Trip{}
	var err error
	if trip.Name, err = requireString(tripData, "name"); err != nil {
		return domain.Result{}, err
	}
	if trip.Path, err = requireString(tripData, "path"); err != nil {
		return domain.Result{}, err
	}
	for _, siteData := range listField(tripData, "sites") {
		site, err := decodeSite(siteData)
		if err != nil {
			return domain.Result{}, err
		}
		trip.Sites = append(trip.Sites, site)
	}
	return domain.Result{
		Trip:               trip,
		AllExpectedPresent: boolField(payload, "all_expected_present"),
	}, nil
}

func decodeSite(data map[string]any) (domain.Site, error) {
	site := domain.Site{}
	var err error
	if site.Name, err = requireString(data, "name"); err != nil {
		return domain.Site{}, err
	}
	if site.Path, err = requireString(data, "path"); err != nil {
		return domain.Site{}, err
	}
	for _, puckData := range listField(data, "pucks") {
		puck, err := decodePuck(puckData)
		if err != nil {
			return domain.Site{}, err
		}
		site.Pucks = append(site.Pucks, puck)
	}
	return site, nil
}

func decodePuck(data map[string]any) (domain.Puck, error) {
	puck := domain.Puck{}
	var err error
	if puck.Name, err = requireString(data, "name"); err != nil {
		return domain.Puck{}, err
	}
	if puck.Path, err = requireString(data, "path"); err != nil {
		return domain.Puck{}, err
	}
	for _, pinData := range listField(data, "pins") {
		pin, err := decodePin(pinData)
		if err != nil {
			return domain.Puck{}, err
		}
		puck.Pins = append(puck.Pins, pin)
	}
	return puck, nil
}

func decodePin(data map[string]any) (domain.Pin, error) {
	pin := domain.Pin{}
	var err error
	if pin.Name, err = requireString(data, "name"); err != nil {
		return domain.Pin{}, err
	}
	if pin.Path, err = requireString(data, "path"); err != nil {
		return domain.Pin{}, err
	}
	pin.MissingCollections = boolField(data, "missing_collections")
	for _, collectionData := range listField(data, "collections") {
		collection, err := decodeCollection(collectionData)
		if err != nil {
			return domain.Pin{}, err
		}
		pin.Collections = append(pin.Collections, collection)
	}
	return pin, nil
}

func decodeCollection(data map[string]any) (domain.Collection, error) {
	collection := domain.Collection{}
	var err error
	if collection.Name, err = requireString(data, "name"); err != nil {
		return domain.Collection{}, err
	}
	if collection.Path, err = requireString(data, "path"); err != nil {
		return domain.Collection{}, err
	}
	for _, entryData := range listField(data, "expected") {
		entry, err := decodeExpected(entryData)
		if err != nil {
			return domain.Collection{}, err
		}
		collection.Expected = append(collection.Expected, entry)
	}
	collection.Extras = stringListField(data, "extras")
	return collection, nil
}

func decodeExpected(data map[string]any) (domain.ExpectedDirStatus, error) {
	entry := domain.ExpectedDirStatus{}
	var err error
	if entry.Name, err = requireString(data, "name"); err != nil {
		return domain.ExpectedDirStatus{}, err
	}
	entry.Present = boolField(data, "present")
	if path, ok := data["path"].(string); ok {
		entry.Path = path
	}
	if metaData, ok := data["metadata"].(map[string]any); ok {
		entry.Metadata = decodeMetadata(metaData)
	}
	return entry, nil
}

// decodeMetadata selects the metadata variant by shape. An empty or
// unrecognised mapping decodes to no metadata. Hand-authored payloads may
// carry only the singular summary_image key; it is accepted as a one-entry
// image list when summary_images is absent.
func decodeMetadata(data map[string]any) domain.Metadata {
	if _, ok := data["image_files"]; ok {
		return domain.CameraMetadata{
			ImageFiles: stringListField(data, "image_files"),
			CSVFiles:   stringListField(data, "csv_files"),
		}
	}
	images, found := []string(nil), false
	if _, ok := data["summary_images"]; ok {
		images, found = stringListField(data, "summary_images"), true
	} else if image, ok := data["summary_image"].(string); ok && image != "" {
		images, found = []string{image}, true
	}
	if found {
		meta := domain.ProcessingMetadata{SummaryImages: images}
		if source, ok := data["summary_source"].(string); ok {
			meta.SummarySource = source
		}
		return meta
	}
	return nil
}

func requireString(data map[string]any, key string) (string, error) {
	value, ok := data[key].(string)
	if !ok {
		return "", decodeErr("missing required key %q", key)
	}
	return value, nil
}

func boolField(data map[string]any, key string) bool {
	value, ok := data[key].(bool)
	return ok && value
}

func listField(data map[string]any, key string) []map[string]any {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	var items []map[string]any
	for _, item := range raw {
		if mapped, ok := item.(map[string]any); ok {
			items = append(items, mapped)
		}
	}
	return items
}

func stringListField(data map[string]any, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return []string{}
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if value, ok := item.(string); ok {
			values = append(values, value)
		}
	}
	return values
}

func decodeErr(format string, args ...any) error {
	return apperrors.Wrap(apperrors.DecodeFailure, "decode", "", fmt.Errorf(format, args...))
}

// WriteFile serialises a result as indented JSON at path, creating parent
// directories as needed.
func WriteFile(path string, result domain.Result) (string, error) {
	output, err := filepath.Abs(path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.IOFailure, "resolve", path, err)
	}
	data, err := json.MarshalIndent(Encode(result), "", "  ")
	if err != nil {
		return "", apperrors.Wrap(apperrors.Internal, "encode", output, err)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return "", apperrors.Wrap(apperrors.IOFailure, "mkdir", output, err)
	}
	if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
		return "", apperrors.Wrap(apperrors.IOFailure, "write", output, err)
	}
	return output, nil
}

// LoadFile reads a previously written hierarchy JSON file.
func LoadFile(path string) (domain.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Result{}, apperrors.Wrap(apperrors.IOFailure, "read", path, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.Result{}, apperrors.Wrap(apperrors.DecodeFailure, "decode", path, err)
	}
	return Decode(payload)
}
