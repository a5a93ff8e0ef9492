package snapshot

import "gorm.io/gorm"

// Models lists the structs migrated into the snapshot schema.
var Models = []interface{}{
	&MapRow{},
	&MarkerRow{},
}

// MapRow mirrors the loaded map's settings.
type MapRow struct {
	gorm.Model
	MapID       int    `json:"mapId" gorm:"uniqueIndex"`
	Name        string `json:"name" gorm:"size:127"`
	Description string `json:"description"`
	Lat         string `json:"lat" gorm:"size:32"`
	Lng         string `json:"lng" gorm:"size:32"`
	Zoom        int    `json:"zoom"`
	Private     bool   `json:"private"`
}

func (*MapRow) TableName() string {
	return "maps"
}

// MarkerRow mirrors one marker. Lat/Lng keep the canonical WGS84 strings;
// X/Y carry the same position projected to EPSG:3857 for planar queries.
type MarkerRow struct {
	gorm.Model
	MarkerID    int     `json:"markerId" gorm:"uniqueIndex"`
	MapID       int     `json:"mapId" gorm:"index"`
	Lat         string  `json:"lat" gorm:"size:32"`
	Lng         string  `json:"lng" gorm:"size:32"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Name        string  `json:"name" gorm:"size:127"`
	Description string  `json:"description"`
	Icon        string  `json:"icon" gorm:"size:64"`
	Link        string  `json:"link"`
}

func (*MarkerRow) TableName() string {
	return "markers"
}
