// Package surface owns the visual map widget: it renders markers and
// popups, interprets user gestures, and drives the marker edit form.
package surface

import (
	"log/slog"
	"path"

	"github.com/Geb0/OpenMapGenerator/internal/geo"
	"github.com/Geb0/OpenMapGenerator/internal/i18n"
	"github.com/Geb0/OpenMapGenerator/internal/icons"
	"github.com/Geb0/OpenMapGenerator/internal/model"
	"github.com/Geb0/OpenMapGenerator/internal/store"
)

// Mode is the pending interaction mode of the map surface.
type Mode int

const (
	// ModeIdle: surface clicks open the create form, marker clicks open
	// the edit form.
	ModeIdle Mode = iota
	// ModeRelocating: the next surface click supplies new coordinates for
	// the selected marker.
	ModeRelocating
)

// Actions is the coordinator-side hook the controller calls when a gesture
// completes an edit workflow (a relocation click submitting an update).
type Actions interface {
	UpdateMarker()
}

// Controller owns the widget, the transient view state (mode, selection,
// forms) and the marker rendering. It is confined to the event loop.
type Controller struct {
	widget  Widget
	coll    *store.Collection
	icons   *icons.Catalog
	msgs    *i18n.Catalog
	logger  *slog.Logger
	actions Actions

	mapInfo  model.Map
	iconPath string

	mode    Mode
	current *model.Marker
	form    Form
	mapForm MapForm
}

// NewController creates a controller drawing on widget. Messages default to
// the built-in catalog until SetMessages delivers the fetched one.
func NewController(widget Widget, coll *store.Collection, ic *icons.Catalog, iconPath string, logger *slog.Logger) *Controller {
	return &Controller{
		widget:   widget,
		coll:     coll,
		icons:    ic,
		msgs:     i18n.Default(),
		logger:   logger,
		iconPath: iconPath,
	}
}

// SetActions wires the coordinator in after construction.
func (c *Controller) SetActions(a Actions) { c.actions = a }

// SetMessages swaps in a fetched message catalog.
func (c *Controller) SetMessages(m *i18n.Catalog) { c.msgs = m }

// Messages returns the active message catalog.
func (c *Controller) Messages() *i18n.Catalog { return c.msgs }

// Init builds the visual surface for a map: sets the view, resets the
// collection wholesale and places one visual marker per record.
func (c *Controller) Init(mapInfo model.Map, markers []model.Marker) {
	c.mapInfo = mapInfo
	c.mode = ModeIdle
	c.current = nil
	c.form.Reset(c.icons.Default())
	c.mapForm = MapForm{
		Name:        mapInfo.Name,
		Description: mapInfo.Description,
		Private:     mapInfo.Private,
		Password:    mapInfo.Password,
	}

	c.widget.SetView(mapInfo.Lat, mapInfo.Lng, mapInfo.Zoom)

	for _, rec := range c.coll.ReplaceAll(markers) {
		c.draw(rec)
	}

	c.logger.Info("map surface initialized",
		"map", mapInfo.ID, "markers", len(markers), "editable", mapInfo.Editable)
}

func (c *Controller) draw(rec *model.Marker) {
	icon := path.Join(c.iconPath, c.icons.Valid(rec.Icon))
	h := c.widget.AddMarker(rec.Lat, rec.Lng, icon, RenderPopup(*rec, c.msgs))
	c.coll.Attach(rec, h)
}

// Draw places the visual marker for a record and records its handle.
func (c *Controller) Draw(rec *model.Marker) {
	c.draw(rec)
}

// Erase removes the visual marker attached to a record, if any.
func (c *Controller) Erase(rec *model.Marker) {
	if h, ok := c.coll.HandleOf(rec); ok {
		c.widget.RemoveMarker(h)
	}
}

// SurfaceClick handles a click on the map background.
//
// Idle: open the create form pre-filled with the click position and the
// default icon. An open form is discarded without confirmation.
// Relocating: feed the click position into the pending update and return
// to Idle before the call is issued.
func (c *Controller) SurfaceClick(lat, lng float64) {
	if !c.mapInfo.Editable {
		return
	}

	switch c.mode {
	case ModeIdle:
		c.current = nil
		c.form.Reset(c.icons.Default())
		c.form.SetCoords(geo.Format(lat), geo.Format(lng))
		c.form.SetButtons(ButtonsCreate)
		c.form.Show()

	case ModeRelocating:
		c.form.SetCoords(geo.Format(lat), geo.Format(lng))
		c.mode = ModeIdle
		if c.actions != nil {
			c.actions.UpdateMarker()
		}
	}
}

// MarkerClick handles a click on a visual marker: on an editable map it
// opens the edit form pre-filled from the record behind the handle and
// remembers it as the selected marker.
func (c *Controller) MarkerClick(h store.Handle) {
	if !c.mapInfo.Editable {
		return
	}

	rec, ok := c.coll.ByHandle(h)
	if !ok {
		c.logger.Error("marker click with unknown handle")
		return
	}

	c.widget.ClosePopups()
	c.form.Reset(c.icons.Default())
	c.current = rec
	c.form.SetMarker(*rec)
	c.form.SetButtons(ButtonsUpdate)
	c.form.Show()
}

// BeginRelocate closes the form without resetting it and arms the
// relocation mode.
func (c *Controller) BeginRelocate() {
	c.mode = ModeRelocating
	c.form.Hide(false, c.icons.Default())
}

// ResetForm resets and hides the marker form.
func (c *Controller) ResetForm() {
	c.form.Hide(true, c.icons.Default())
}

// ClearSelection drops the selected marker.
func (c *Controller) ClearSelection() { c.current = nil }

// Select makes rec the selected marker.
func (c *Controller) Select(rec *model.Marker) { c.current = rec }

// Current returns the selected marker, nil when none.
func (c *Controller) Current() *model.Marker { return c.current }

// Mode returns the pending interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// Form returns the marker edit form.
func (c *Controller) Form() *Form { return &c.form }

// MapForm returns the map settings form.
func (c *Controller) MapForm() *MapForm { return &c.mapForm }

// MapInfo returns the loaded map descriptor.
func (c *Controller) MapInfo() model.Map { return c.mapInfo }

// Widget returns the underlying widget.
func (c *Controller) Widget() Widget { return c.widget }
