package surface

import (
	"github.com/Geb0/OpenMapGenerator/internal/store"
)

// fakeWidget records widget calls for assertions.
type fakeWidget struct {
	lat, lng string
	zoom     int

	nextHandle   int
	markers      map[int]fakeMarker
	popupsClosed int
}

type fakeMarker struct {
	lat, lng, icon, popup string
}

func newFakeWidget() *fakeWidget {
	return &fakeWidget{markers: make(map[int]fakeMarker)}
}

func (w *fakeWidget) SetView(lat, lng string, zoom int) {
	w.lat, w.lng, w.zoom = lat, lng, zoom
}

func (w *fakeWidget) View() (string, string, int) {
	return w.lat, w.lng, w.zoom
}

func (w *fakeWidget) AddMarker(lat, lng, icon, popupHTML string) store.Handle {
	w.nextHandle++
	w.markers[w.nextHandle] = fakeMarker{lat: lat, lng: lng, icon: icon, popup: popupHTML}
	return w.nextHandle
}

func (w *fakeWidget) RemoveMarker(h store.Handle) {
	delete(w.markers, h.(int))
}

func (w *fakeWidget) ClosePopups() {
	w.popupsClosed++
}
