// Package gallery is the catalog of images available for graphical passwords.
// The server only ever deals in image identifiers and native pixel bounds; the
// image files themselves are static assets served elsewhere.
package gallery

import (
	"sort"

	"github.com/pictlock/go-mfa-server/graphical"
)

// Image describes one selectable image asset.
type Image struct {
	ID     string           `json:"id"`
	Bounds graphical.Bounds `json:"bounds"`
}

// The catalog matches the assets shipped with the existing client. All four
// are 300x300 at their native resolution.
var catalog = map[string]Image{
	"image1": {ID: "image1", Bounds: graphical.Bounds{Width: 300, Height: 300}},
	"image2": {ID: "image2", Bounds: graphical.Bounds{Width: 300, Height: 300}},
	"image3": {ID: "image3", Bounds: graphical.Bounds{Width: 300, Height: 300}},
	"image4": {ID: "image4", Bounds: graphical.Bounds{Width: 300, Height: 300}},
}

// Lookup returns the image for an id.
func Lookup(id string) (Image, bool) {
	img, ok := catalog[id]
	return img, ok
}

// Known reports whether an image id references a catalog asset.
func Known(id string) bool {
	_, ok := catalog[id]
	return ok
}

// List returns the catalog sorted by id.
func List() []Image {
	images := make([]Image, 0, len(catalog))
	for _, img := range catalog {
		images = append(images, img)
	}
	sort.Slice(images, func(i, j int) bool { return images[i].ID < images[j].ID })
	return images
}
