// Package session implements the editing workflows of a loaded map: marker
// creation, update, relocation and deletion, plus map settings and center
// persistence. Every workflow validates locally first, then issues a remote
// call and applies the outcome to the collection and the surface.
package session

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/Geb0/OpenMapGenerator/internal/api"
	"github.com/Geb0/OpenMapGenerator/internal/i18n"
	"github.com/Geb0/OpenMapGenerator/internal/model"
	"github.com/Geb0/OpenMapGenerator/internal/notify"
	"github.com/Geb0/OpenMapGenerator/internal/store"
	"github.com/Geb0/OpenMapGenerator/internal/surface"
)

// Alerter shows a blocking message for local validation failures. Remote
// outcomes go through the notification bar instead.
type Alerter func(message string)

// Mirror receives successful marker mutations for local persistence. A nil
// mirror disables mirroring.
type Mirror interface {
	SaveMarker(m model.Marker)
	DeleteMarker(id int)
}

// Coordinator drives the edit workflows. It runs on the event loop; remote
// call completions are posted back onto the same loop by the gateway.
type Coordinator struct {
	client *api.Client
	coll   *store.Collection
	ctrl   *surface.Controller
	bar    *notify.Bar
	alert  Alerter
	mirror Mirror
	logger *slog.Logger
}

// New builds a coordinator. mirror may be nil.
func New(client *api.Client, coll *store.Collection, ctrl *surface.Controller,
	bar *notify.Bar, alert Alerter, mirror Mirror, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		client: client,
		coll:   coll,
		ctrl:   ctrl,
		bar:    bar,
		alert:  alert,
		mirror: mirror,
		logger: logger,
	}
}

func (c *Coordinator) msgs() *i18n.Catalog { return c.ctrl.Messages() }

func (c *Coordinator) mapID() int { return c.ctrl.MapInfo().ID }

// formMarker builds a record from the current form inputs, bound to the
// loaded map.
func (c *Coordinator) formMarker() model.Marker {
	m := model.MarkerFromFields(c.ctrl.Form().Fields())
	m.MapID = c.mapID()
	return m
}

// CreateMarker submits the form as a new marker.
//
// A marker already sitting at the exact same canonical coordinates, or an
// empty name, aborts with a blocking alert. The form is reset and hidden as
// soon as the call is issued; the record only joins the collection when the
// backend confirms and returns its identifier.
func (c *Coordinator) CreateMarker() {
	m := c.formMarker()

	if _, exists := c.coll.FindByCoordinates(m.Lat, m.Lng); exists {
		c.alert(c.msgs().T(i18n.CreateMarkerAlreadyExists))
		return
	}
	if m.Name == "" {
		c.alert(c.msgs().T(i18n.UpdateMarkerEmptyName))
		return
	}

	c.client.Invoke(api.OpLocationCreate, c.mapID(), m.Fields(), func(resp api.Response) {
		c.onCreated(m, resp)
	})

	c.ctrl.ResetForm()
}

func (c *Coordinator) onCreated(m model.Marker, resp api.Response) {
	if !resp.OK() {
		c.logger.Error("marker creation call failed", "map", m.MapID)
		return
	}
	if !resp.Result() {
		c.bar.Show(c.msgs().T(i18n.ResponseCreateLocationKO), notify.StyleError)
		return
	}

	m.ID = resp.NewID()
	rec := c.coll.Add(m)
	c.ctrl.Draw(rec)
	c.bar.Show(c.msgs().T(i18n.ResponseCreateLocationOK), notify.StyleInfo)

	if c.mirror != nil {
		c.mirror.SaveMarker(m)
	}
}

// UpdateMarker submits the form against the selected marker. Relocation
// clicks funnel into this method after the surface fills in the new
// coordinates.
func (c *Coordinator) UpdateMarker() {
	old := c.ctrl.Current()
	if old == nil {
		c.alert(c.msgs().T(i18n.UpdateMarkerError))
		return
	}

	m := c.formMarker()
	if m.ID == 0 {
		c.alert(c.msgs().T(i18n.UpdateMarkerError))
		return
	}
	if m.Name == "" {
		c.alert(c.msgs().T(i18n.UpdateMarkerEmptyName))
		return
	}

	c.client.Invoke(api.OpLocationUpdate, m.ID, m.Fields(), func(resp api.Response) {
		c.onUpdated(old, m, resp)
	})

	c.ctrl.ClearSelection()
	c.ctrl.ResetForm()
}

func (c *Coordinator) onUpdated(old *model.Marker, m model.Marker, resp api.Response) {
	if !resp.OK() {
		c.logger.Error("marker update call failed", "marker", m.ID)
		return
	}
	if !resp.Result() {
		c.bar.Show(c.msgs().T(i18n.ResponseUpdateLocationKO), notify.StyleError)
		return
	}

	// replace rather than mutate: the record moves to the end of the order
	c.ctrl.Erase(old)
	c.coll.Remove(old)
	rec := c.coll.Add(m)
	c.ctrl.Draw(rec)
	c.bar.Show(c.msgs().T(i18n.ResponseUpdateLocationOK), notify.StyleInfo)

	if c.mirror != nil {
		c.mirror.SaveMarker(m)
	}
}

// MoveMarker arms the relocation mode for the selected marker: the form
// closes without losing its content and the next map click supplies the new
// coordinates.
func (c *Coordinator) MoveMarker() {
	if c.ctrl.Current() == nil {
		c.alert(c.msgs().T(i18n.UpdateMarkerError))
		return
	}

	c.ctrl.BeginRelocate()
	c.bar.Show(c.msgs().T(i18n.ToRelocateLocation), notify.StyleInfo)
}

// DeleteMarker removes the selected marker after backend confirmation.
func (c *Coordinator) DeleteMarker() {
	rec := c.ctrl.Current()
	if rec == nil {
		c.alert(c.msgs().T(i18n.UpdateMarkerError))
		return
	}

	c.client.Invoke(api.OpLocationDelete, rec.ID, nil, func(resp api.Response) {
		c.onDeleted(rec, resp)
	})

	c.ctrl.ClearSelection()
	c.ctrl.ResetForm()
}

func (c *Coordinator) onDeleted(rec *model.Marker, resp api.Response) {
	if !resp.OK() {
		c.logger.Error("marker deletion call failed", "marker", rec.ID)
		return
	}
	if !resp.Result() {
		c.bar.Show(c.msgs().T(i18n.ResponseDeleteLocationKO), notify.StyleError)
		return
	}

	id := rec.ID
	c.ctrl.Erase(rec)
	c.coll.Remove(rec)
	c.bar.Show(c.msgs().T(i18n.ResponseDeleteLocationOK), notify.StyleInfo)

	if c.mirror != nil {
		c.mirror.DeleteMarker(id)
	}
}

// UpdateMap submits the map settings form.
func (c *Coordinator) UpdateMap() {
	f := c.ctrl.MapForm()
	if strings.TrimSpace(f.Name) == "" {
		c.alert(c.msgs().T(i18n.UpdateMapEmptyName))
		return
	}

	c.client.Invoke(api.OpMapUpdate, c.mapID(), f.Fields(), func(resp api.Response) {
		switch {
		case !resp.OK():
			c.logger.Error("map update call failed", "map", c.mapID())
		case resp.Result():
			c.bar.Show(c.msgs().T(i18n.ResponseUpdateOK), notify.StyleInfo)
		default:
			c.bar.Show(c.msgs().T(i18n.ResponseUpdateKO), notify.StyleError)
		}
	})
}

// SaveMapCenter persists the widget's current center and zoom as the map's
// startup view.
func (c *Coordinator) SaveMapCenter() {
	lat, lng, zoom := c.ctrl.Widget().View()
	payload := map[string]string{
		"lat":  lat,
		"lng":  lng,
		"zoom": strconv.Itoa(zoom),
	}

	c.client.Invoke(api.OpMapCenterUpdate, c.mapID(), payload, func(resp api.Response) {
		switch {
		case !resp.OK():
			c.logger.Error("map center call failed", "map", c.mapID())
		case resp.Result():
			c.bar.Show(c.msgs().T(i18n.ResponseUpdateCenterOK), notify.StyleInfo)
		default:
			c.bar.Show(c.msgs().T(i18n.ResponseUpdateCenterKO), notify.StyleError)
		}
	})
}
