package model

// Map describes the currently loaded map: display center, zoom, privacy
// gate and whether the viewer may edit it.
type Map struct {
	ID          int
	Name        string
	Description string
	Lat         string
	Lng         string
	Zoom        int
	Private     bool
	Password    string
	Editable    bool
}

// MapFromFields builds a normalized Map from raw key-value input.
// Recognized keys: id, name, description, lat, lng, zoom, private,
// password, edit.
func MapFromFields(fields map[string]string) Map {
	return Map{
		ID:          fieldInt(fields, "id"),
		Name:        fieldText(fields, "name"),
		Description: fieldText(fields, "description"),
		Lat:         fieldCoord(fields, "lat"),
		Lng:         fieldCoord(fields, "lng"),
		Zoom:        fieldInt(fields, "zoom"),
		Private:     fieldBool(fields, "private"),
		Password:    fieldText(fields, "password"),
		Editable:    fieldBool(fields, "edit"),
	}
}
