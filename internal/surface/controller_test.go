package surface

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geb0/OpenMapGenerator/internal/icons"
	"github.com/Geb0/OpenMapGenerator/internal/model"
	"github.com/Geb0/OpenMapGenerator/internal/store"
)

type recordedActions struct {
	updates int
}

func (a *recordedActions) UpdateMarker() { a.updates++ }

func testIcons(t *testing.T) *icons.Catalog {
	t.Helper()
	dir := t.TempDir()
	for _, n := range []string{"default.png", "food.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("png"), 0644))
	}
	c, err := icons.Load(dir, "default.png")
	require.NoError(t, err)
	return c
}

func testController(t *testing.T) (*Controller, *fakeWidget, *store.Collection) {
	t.Helper()
	w := newFakeWidget()
	coll := store.New()
	c := NewController(w, coll, testIcons(t), "images/icons", slog.New(slog.NewTextHandler(io.Discard, nil)))
	return c, w, coll
}

func editableMap() model.Map {
	return model.Map{ID: 7, Name: "Paris", Lat: "48.85340", Lng: "2.34860", Zoom: 12, Editable: true}
}

func TestInit_DrawsMarkersAndSetsView(t *testing.T) {
	c, w, coll := testController(t)

	c.Init(editableMap(), []model.Marker{
		{ID: 1, Lat: "48.85840", Lng: "2.29450", Name: "Tour Eiffel", Icon: "food.png"},
		{ID: 2, Lat: "48.86060", Lng: "2.33760", Name: "Louvre", Icon: "missing.png"},
	})

	assert.Equal(t, "48.85340", w.lat)
	assert.Equal(t, "2.34860", w.lng)
	assert.Equal(t, 12, w.zoom)
	require.Len(t, w.markers, 2)
	assert.Equal(t, 2, coll.Len())

	// every record has a live handle association
	for _, rec := range coll.All() {
		_, ok := coll.HandleOf(rec)
		assert.True(t, ok)
	}
}

func TestInit_UnknownIconFallsBackToDefault(t *testing.T) {
	c, w, _ := testController(t)

	c.Init(editableMap(), []model.Marker{
		{ID: 1, Lat: "48.85840", Lng: "2.29450", Name: "A", Icon: "missing.png"},
	})

	require.Len(t, w.markers, 1)
	for _, m := range w.markers {
		assert.Equal(t, "images/icons/default.png", m.icon)
	}
}

func TestSurfaceClick_IdleOpensCreateForm(t *testing.T) {
	c, _, _ := testController(t)
	c.Init(editableMap(), nil)

	c.SurfaceClick(48.8584123, 2.2945678)

	f := c.Form()
	assert.Equal(t, "48.85841", f.Lat)
	assert.Equal(t, "2.29457", f.Lng)
	assert.Equal(t, "default.png", f.Icon)
	assert.Equal(t, ButtonsCreate, f.Buttons())
	assert.True(t, f.Visible())
	assert.Nil(t, c.Current())
}

func TestSurfaceClick_DiscardsOpenFormWithoutConfirmation(t *testing.T) {
	c, _, _ := testController(t)
	c.Init(editableMap(), nil)

	c.SurfaceClick(48.85841, 2.29457)
	c.Form().Name = "unsaved"
	c.SurfaceClick(45.76400, 4.83570)

	f := c.Form()
	assert.Empty(t, f.Name)
	assert.Equal(t, "45.76400", f.Lat)
	assert.Equal(t, "4.83570", f.Lng)
}

func TestSurfaceClick_ReadOnlyMapIgnored(t *testing.T) {
	c, _, _ := testController(t)
	m := editableMap()
	m.Editable = false
	c.Init(m, nil)

	c.SurfaceClick(48.85841, 2.29457)

	assert.False(t, c.Form().Visible())
}

func TestMarkerClick_OpensEditForm(t *testing.T) {
	c, w, coll := testController(t)
	c.Init(editableMap(), []model.Marker{
		{ID: 3, Lat: "48.85840", Lng: "2.29450", Name: "Tour Eiffel", Icon: "food.png", Link: "https://example.org"},
	})

	rec := coll.All()[0]
	h, ok := coll.HandleOf(rec)
	require.True(t, ok)

	c.MarkerClick(h)

	f := c.Form()
	assert.Equal(t, "3", f.ID)
	assert.Equal(t, "Tour Eiffel", f.Name)
	assert.Equal(t, "48.85840", f.Lat)
	assert.Equal(t, ButtonsUpdate, f.Buttons())
	assert.True(t, f.Visible())
	assert.Same(t, rec, c.Current())
	assert.Equal(t, 1, w.popupsClosed)
}

func TestMarkerClick_ReadOnlyMapIgnored(t *testing.T) {
	c, _, coll := testController(t)
	m := editableMap()
	m.Editable = false
	c.Init(m, []model.Marker{
		{ID: 3, Lat: "48.85840", Lng: "2.29450", Name: "Tour Eiffel"},
	})

	rec := coll.All()[0]
	h, _ := coll.HandleOf(rec)
	c.MarkerClick(h)

	assert.False(t, c.Form().Visible())
	assert.Nil(t, c.Current())
}

func TestRelocateFlow(t *testing.T) {
	c, _, coll := testController(t)
	actions := &recordedActions{}
	c.SetActions(actions)
	c.Init(editableMap(), []model.Marker{
		{ID: 3, Lat: "48.85840", Lng: "2.29450", Name: "Tour Eiffel"},
	})

	rec := coll.All()[0]
	h, _ := coll.HandleOf(rec)
	c.MarkerClick(h)
	c.BeginRelocate()

	assert.Equal(t, ModeRelocating, c.Mode())
	assert.False(t, c.Form().Visible())
	// relocation keeps the form content
	assert.Equal(t, "Tour Eiffel", c.Form().Name)

	c.SurfaceClick(48.87420, 2.29510)

	assert.Equal(t, ModeIdle, c.Mode())
	assert.Equal(t, "48.87420", c.Form().Lat)
	assert.Equal(t, "2.29510", c.Form().Lng)
	assert.Equal(t, "Tour Eiffel", c.Form().Name)
	assert.Equal(t, 1, actions.updates)
}

func TestDrawErase(t *testing.T) {
	c, w, coll := testController(t)
	c.Init(editableMap(), nil)

	rec := coll.Add(model.Marker{ID: 9, Lat: "48.85840", Lng: "2.29450", Name: "A", Icon: "food.png"})
	c.Draw(rec)
	require.Len(t, w.markers, 1)

	c.Erase(rec)
	assert.Empty(t, w.markers)
}
