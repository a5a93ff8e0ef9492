package surface

import (
	"fmt"
	"strings"

	"github.com/Geb0/OpenMapGenerator/internal/i18n"
	"github.com/Geb0/OpenMapGenerator/internal/model"
)

// PopupMaxWidth is the rendering hint passed to the widget layer.
const PopupMaxWidth = 240

// RenderPopup builds the HTML body of a marker popup: title, optional
// description and link, and the navigation shortcuts for external map
// services.
func RenderPopup(m model.Marker, msgs *i18n.Catalog) string {
	var b strings.Builder

	b.WriteString("<popup>")
	fmt.Fprintf(&b, `<p class="popupTitle">%s</p>`, m.Name)

	if m.Description != "" {
		fmt.Fprintf(&b, `<p class="popupDesc">%s</p>`, m.Description)
	}

	if m.Link != "" {
		fmt.Fprintf(&b, `<p><a href="%s" target="_blank">%s</a></p>`,
			m.Link, msgs.T(i18n.GeneratePopupMoreInfos))
	}

	with := msgs.T(i18n.GeneratePopupWith)
	b.WriteString(`<table class="tableGoWith"><tr>`)
	fmt.Fprintf(&b,
		`<td class="center"><a href="https://www.openstreetmap.org/#map=19/%s/%s" target="_blank" title="%s OpenStreetMap"><img src="/images/openstreetmap.png" /></a></td>`,
		m.Lat, m.Lng, with)
	fmt.Fprintf(&b,
		`<td class="center"><a href="com.sygic.aura://coordinate|%s|%s|show" target="_blank" title="%s Sygic"><img src="/images/sygic.png" /></a></td>`,
		m.Lng, m.Lat, with)
	fmt.Fprintf(&b,
		`<td class="center"><a href="https://www.waze.com/ul?ll=%s%%2C%s&navigate=yes" target="_blank" title="%s Waze"><img src="/images/waze.png" /></a></td>`,
		m.Lat, m.Lng, with)
	fmt.Fprintf(&b,
		`<td class="center"><a href="http://maps.google.com/?q=%s%%2C%s" target="_blank" title="%s Google maps"><img src="/images/googlemaps.png" /></a></td>`,
		m.Lat, m.Lng, with)
	b.WriteString("</tr></table>")

	b.WriteString("</popup>")
	return b.String()
}
