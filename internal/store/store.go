// Package store holds the authoritative in-process collection of markers
// for the currently loaded map.
package store

import (
	"sync"

	"github.com/Geb0/OpenMapGenerator/internal/model"
)

// Handle is an opaque reference to a visual marker owned by the map widget.
type Handle any

// Collection is the set of marker records shown for one map, in insertion
// order, together with the association between each record and its visual
// marker handle. One pointer per record is handed out at Add/ReplaceAll
// time and stays stable until the record is removed.
//
// All engine mutation runs on the event loop, but the collection guards
// itself anyway so read-side callers (status displays, tests) need no
// coordination.
type Collection struct {
	mu       sync.RWMutex
	records  []*model.Marker
	byHandle map[Handle]*model.Marker
	handleOf map[*model.Marker]Handle
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{
		byHandle: make(map[Handle]*model.Marker),
		handleOf: make(map[*model.Marker]Handle),
	}
}

// ReplaceAll resets the collection wholesale, used when a map is first
// loaded. Returns the stable record pointers in insertion order.
func (c *Collection) ReplaceAll(markers []model.Marker) []*model.Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = make([]*model.Marker, 0, len(markers))
	c.byHandle = make(map[Handle]*model.Marker)
	c.handleOf = make(map[*model.Marker]Handle)
	for i := range markers {
		m := markers[i]
		c.records = append(c.records, &m)
	}
	return append([]*model.Marker(nil), c.records...)
}

// Add appends a record. The caller must already have confirmed there is no
// coordinate collision.
func (c *Collection) Add(m model.Marker) *model.Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := &m
	c.records = append(c.records, rec)
	return rec
}

// Remove deletes the record and its handle association. Returns false when
// the record is not in the collection.
func (c *Collection) Remove(rec *model.Marker) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, r := range c.records {
		if r == rec {
			c.records = append(c.records[:i], c.records[i+1:]...)
			if h, ok := c.handleOf[rec]; ok {
				delete(c.byHandle, h)
				delete(c.handleOf, rec)
			}
			return true
		}
	}
	return false
}

// FindByCoordinates scans for a record at exactly the given canonical
// 5-decimal pair. No tolerance is applied.
func (c *Collection) FindByCoordinates(lat, lng string) (*model.Marker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.records {
		if r.Lat == lat && r.Lng == lng {
			return r, true
		}
	}
	return nil, false
}

// FindByID scans for a record by its server-assigned identifier.
func (c *Collection) FindByID(id int) (*model.Marker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// All returns the records in insertion order.
func (c *Collection) All() []*model.Marker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*model.Marker(nil), c.records...)
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Attach associates a record with its visual marker handle, replacing any
// previous association for either side.
func (c *Collection) Attach(rec *model.Marker, h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.handleOf[rec]; ok {
		delete(c.byHandle, old)
	}
	c.byHandle[h] = rec
	c.handleOf[rec] = h
}

// ByHandle recovers the full record from a visual marker handle.
func (c *Collection) ByHandle(h Handle) (*model.Marker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.byHandle[h]
	return rec, ok
}

// HandleOf returns the visual marker handle attached to a record.
func (c *Collection) HandleOf(rec *model.Marker) (Handle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handleOf[rec]
	return h, ok
}
