// Package i18n holds the localized messages the engine shows to the user.
// The catalog is fetched from the backend at startup for the configured
// locale; built-in English defaults cover every key so a failed fetch never
// leaves a blank message.
package i18n

import "sort"

// Message keys served by the backend's message-catalog operation.
const (
	GeneratePopupMoreInfos = "generatePopupMoreInfos"
	GeneratePopupWith      = "generatePopupWith"
	ToRelocateLocation     = "toRelocateLocation"

	ResponseUpdateOK = "responseUpdateOK"
	ResponseUpdateKO = "responseUpdateKO"

	ResponseUpdateCenterOK = "responseUpdateCenterOK"
	ResponseUpdateCenterKO = "responseUpdateCenterKO"

	ResponseCreateLocationOK = "responseCreateLocationOK"
	ResponseCreateLocationKO = "responseCreateLocationKO"
	ResponseUpdateLocationOK = "responseUpdateLocationOK"
	ResponseUpdateLocationKO = "responseUpdateLocationKO"
	ResponseDeleteLocationOK = "responseDeleteLocationOK"
	ResponseDeleteLocationKO = "responseDeleteLocationKO"

	UpdateMapEmptyName        = "updateMapEmptyName"
	CreateMarkerAlreadyExists = "createMarkerAlreadyExists"
	UpdateMarkerError         = "updateMarkerError"
	UpdateMarkerEmptyName     = "updateMarkerEmptyName"
)

var defaults = map[string]string{
	GeneratePopupMoreInfos: "More information",
	GeneratePopupWith:      "Go with",
	ToRelocateLocation:     "Click the map at the marker's new position",

	ResponseUpdateOK: "Map updated",
	ResponseUpdateKO: "Map update failed",

	ResponseUpdateCenterOK: "Map position saved",
	ResponseUpdateCenterKO: "Map position not saved",

	ResponseCreateLocationOK: "Marker created",
	ResponseCreateLocationKO: "Marker not created",
	ResponseUpdateLocationOK: "Marker updated",
	ResponseUpdateLocationKO: "Marker not updated",
	ResponseDeleteLocationOK: "Marker deleted",
	ResponseDeleteLocationKO: "Marker not deleted",

	UpdateMapEmptyName:        "The map name cannot be empty",
	CreateMarkerAlreadyExists: "A marker already exists at this position",
	UpdateMarkerError:         "No marker selected",
	UpdateMarkerEmptyName:     "The marker name cannot be empty",
}

// SupportedLocales lists the locales the backend can serve.
var SupportedLocales = []string{"de", "en", "es", "fr", "it"}

// Catalog maps message keys to localized strings.
type Catalog struct {
	messages map[string]string
}

// Default returns a catalog holding only the built-in English messages.
func Default() *Catalog {
	c := &Catalog{messages: make(map[string]string, len(defaults))}
	for k, v := range defaults {
		c.messages[k] = v
	}
	return c
}

// FromResponse builds a catalog from a fetched message-catalog body,
// layered over the defaults. Non-string values and unknown keys are kept
// out.
func FromResponse(body map[string]any) *Catalog {
	c := Default()
	for key := range defaults {
		if v, ok := body[key].(string); ok && v != "" {
			c.messages[key] = v
		}
	}
	return c
}

// T returns the localized message for key, falling back to the key itself
// when unknown.
func (c *Catalog) T(key string) string {
	if v, ok := c.messages[key]; ok {
		return v
	}
	return key
}

// Keys returns all message keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
