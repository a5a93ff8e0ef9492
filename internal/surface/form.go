package surface

import (
	"strconv"

	"github.com/Geb0/OpenMapGenerator/internal/model"
)

// Buttons selects which action buttons the marker form offers.
type Buttons int

const (
	// ButtonsCreate shows Create and hides Update, Delete, Move.
	ButtonsCreate Buttons = iota
	// ButtonsUpdate shows Update, Delete, Move and hides Create.
	ButtonsUpdate
)

// Form models the marker edit form. Values are held as raw input strings;
// normalization happens when the coordinator builds a record from Fields.
type Form struct {
	ID          string
	Lat         string
	Lng         string
	Name        string
	Description string
	Icon        string
	Link        string

	buttons Buttons
	visible bool
}

// Reset clears every input and restores the default icon.
func (f *Form) Reset(defaultIcon string) {
	*f = Form{Icon: defaultIcon, buttons: f.buttons, visible: f.visible}
}

// SetMarker fills the inputs from an existing record before user edits.
func (f *Form) SetMarker(m model.Marker) {
	f.ID = strconv.Itoa(m.ID)
	f.Lat = m.Lat
	f.Lng = m.Lng
	f.Name = m.Name
	f.Description = m.Description
	f.Icon = m.Icon
	f.Link = m.Link
}

// SetCoords overwrites only the coordinate inputs, used when a relocation
// click supplies a new position.
func (f *Form) SetCoords(lat, lng string) {
	f.Lat = lat
	f.Lng = lng
}

// Fields returns the raw inputs keyed for record construction.
func (f *Form) Fields() map[string]string {
	return map[string]string{
		"id":          f.ID,
		"lat":         f.Lat,
		"lng":         f.Lng,
		"name":        f.Name,
		"description": f.Description,
		"icon":        f.Icon,
		"link":        f.Link,
	}
}

// SetButtons switches the form between create and update layouts.
func (f *Form) SetButtons(b Buttons) { f.buttons = b }

// Buttons returns the current button layout.
func (f *Form) Buttons() Buttons { return f.buttons }

// Show makes the form visible.
func (f *Form) Show() { f.visible = true }

// Hide hides the form, optionally resetting it first.
func (f *Form) Hide(withReset bool, defaultIcon string) {
	if withReset {
		f.Reset(defaultIcon)
	}
	f.visible = false
}

// Visible reports whether the form is shown.
func (f *Form) Visible() bool { return f.visible }

// MapForm models the map settings form (name, description, privacy).
type MapForm struct {
	Name        string
	Description string
	Private     bool
	Password    string
}

// Fields returns the inputs as a remote payload.
func (f *MapForm) Fields() map[string]string {
	private := "0"
	if f.Private {
		private = "1"
	}
	return map[string]string{
		"name":        f.Name,
		"description": f.Description,
		"private":     private,
		"password":    f.Password,
	}
}
