package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/tree"

	"tripscan/internal/domain"
)

// Tree writes the hierarchy as a styled tree: trip, sites, pucks, pins and
// collections, with one line per expected directory and per extra. Purely
// read-only over the result.
func Tree(w io.Writer, result domain.Result, expectedDirs []string) {
	if len(expectedDirs) == 0 {
		expectedDirs = domain.DefaultExpectedDirs
	}
	if len(result.Trip.Sites) == 0 {
		fmt.Fprintln(w, extraStyle.Render("No sites found under the provided trip directory."))
		return
	}

	root := tree.Root(tripStyle.Render("Trip: " + result.Trip.Name)).
		EnumeratorStyle(guideStyle)
	for _, site := range result.Trip.Sites {
		siteNode := tree.Root(siteStyle.Render("Site: ") + site.Name).
			EnumeratorStyle(guideStyle)
		for _, puck := range site.Pucks {
			puckNode := tree.Root(puckStyle.Render("Puck: ") + puck.Name).
				EnumeratorStyle(guideStyle)
			for _, pin := range puck.Pins {
				puckNode.Child(pinTree(pin, expectedDirs))
			}
			siteNode.Child(puckNode)
		}
		root.Child(siteNode)
	}
	fmt.Fprintln(w, root.String())

	if result.AllExpectedPresent {
		fmt.Fprintln(w, verdictOKStyle.Render("All expected collection directories found."))
	} else {
		fmt.Fprintln(w, verdictBadStyle.Render("Missing collection directories detected."))
	}
}

func pinTree(pin domain.Pin, expectedDirs []string) *tree.Tree {
	label := pinStyle.Render("Pin: ") + pin.Name
	if pin.MissingCollections {
		label += missingStyle.Render(" (missing collections)")
	}
	node := tree.Root(label).EnumeratorStyle(guideStyle)
	if pin.MissingCollections {
		node.Child(missingStyle.Render("No lettered collection directories found."))
	}
	for _, collection := range pin.Collections {
		node.Child(collectionTree(collection, expectedDirs))
	}
	return node
}

func collectionTree(collection domain.Collection, expectedDirs []string) *tree.Tree {
	node := tree.Root(collectionStyle.Render("Collection " + collection.Name)).
		EnumeratorStyle(guideStyle)
	byName := make(map[string]domain.ExpectedDirStatus, len(collection.Expected))
	for _, entry := range collection.Expected {
		byName[entry.Name] = entry
	}
	for _, expectedName := range expectedDirs {
		entry, ok := byName[expectedName]
		line := fmt.Sprintf("%s (%s)", expectedName, statusLabel(entry, ok))
		if ok && entry.Present {
			node.Child(okStyle.Render(line))
		} else {
			node.Child(missingStyle.Render(line))
		}
	}
	for _, extra := range collection.Extras {
		node.Child(extraStyle.Render(extra + " (extra)"))
	}
	return node
}

func statusLabel(entry domain.ExpectedDirStatus, ok bool) string {
	if !ok {
		return "missing"
	}
	return entry.StatusLabel()
}
