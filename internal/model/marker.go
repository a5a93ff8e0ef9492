// Package model defines the value types the map client synchronizes:
// point-of-interest markers and the map descriptor that owns them.
package model

// Marker represents one point of interest on a map. Lat and Lng hold the
// canonical 5-decimal representation; two markers are "at the same place"
// exactly when both strings match.
type Marker struct {
	ID          int
	MapID       int
	Lat         string
	Lng         string
	Name        string
	Description string
	Icon        string
	Link        string
}

// MarkerFromFields builds a normalized Marker from raw key-value input
// (form fields or a server payload). Recognized keys: id, map, lat, lng,
// name, description, icon, link.
func MarkerFromFields(fields map[string]string) Marker {
	return Marker{
		ID:          fieldInt(fields, "id"),
		MapID:       fieldInt(fields, "map"),
		Lat:         fieldCoord(fields, "lat"),
		Lng:         fieldCoord(fields, "lng"),
		Name:        fieldText(fields, "name"),
		Description: fieldText(fields, "description"),
		Icon:        fieldText(fields, "icon"),
		Link:        fieldText(fields, "link"),
	}
}

// IsNew reports whether the marker has not yet been assigned a server id.
func (m Marker) IsNew() bool {
	return m.ID == 0
}

// Fields renders the marker as a flat payload for the remote gateway.
func (m Marker) Fields() map[string]string {
	return map[string]string{
		"lat":         m.Lat,
		"lng":         m.Lng,
		"name":        m.Name,
		"description": m.Description,
		"icon":        m.Icon,
		"link":        m.Link,
	}
}
