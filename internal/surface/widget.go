package surface

import "github.com/Geb0/OpenMapGenerator/internal/store"

// Widget abstracts the visual map the controller draws on. Implementations
// wrap a real map widget (or a headless stand-in for tests and the CLI).
// The widget only knows coordinates, icons and opaque popup bodies; the
// record behind each visual marker is recovered through the collection's
// handle association.
type Widget interface {
	// SetView centers the map on the given canonical coordinates.
	SetView(lat, lng string, zoom int)

	// View returns the current center and zoom.
	View() (lat, lng string, zoom int)

	// AddMarker places a visual marker and returns its handle.
	AddMarker(lat, lng, icon, popupHTML string) store.Handle

	// RemoveMarker removes a previously added marker.
	RemoveMarker(h store.Handle)

	// ClosePopups closes any open marker popup.
	ClosePopups()
}
