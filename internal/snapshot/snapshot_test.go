package snapshot

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geb0/OpenMapGenerator/internal/config"
	"github.com/Geb0/OpenMapGenerator/internal/model"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	cfg := config.SnapshotConfig{
		Enabled: true,
		Dir:     t.TempDir(),
		DB: config.DBConfig{
			// unreachable on purpose, forcing the SQLite fallback
			Host: "127.0.0.1", Port: "1",
			Username: "postgres", Password: "postgres", Database: "omg",
		},
	}

	m := NewManager(cfg, zerolog.Nop())
	require.NoError(t, m.Connect())
	require.True(t, m.UsingLocal)
	require.True(t, m.IsValid)
	require.NoError(t, m.Setup())
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func parisMap() model.Map {
	return model.Map{ID: 7, Name: "Paris", Lat: "48.85340", Lng: "2.34860", Zoom: 12}
}

func TestStartMap(t *testing.T) {
	m := testManager(t)

	err := m.StartMap(parisMap(), []model.Marker{
		{ID: 3, MapID: 7, Lat: "48.85840", Lng: "2.29450", Name: "Tour Eiffel"},
		{ID: 4, MapID: 7, Lat: "48.86060", Lng: "2.33760", Name: "Louvre"},
	})
	require.NoError(t, err)

	var maps []MapRow
	require.NoError(t, m.DB.Find(&maps).Error)
	require.Len(t, maps, 1)
	assert.Equal(t, "Paris", maps[0].Name)
	assert.Equal(t, 12, maps[0].Zoom)

	var markers []MarkerRow
	require.NoError(t, m.DB.Order("marker_id").Find(&markers).Error)
	require.Len(t, markers, 2)
	assert.Equal(t, "48.85840", markers[0].Lat)
	// projected position is filled in
	assert.NotZero(t, markers[0].X)
	assert.NotZero(t, markers[0].Y)
}

func TestStartMap_ReplacesPreviousMarkers(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.StartMap(parisMap(), []model.Marker{
		{ID: 3, MapID: 7, Lat: "48.85840", Lng: "2.29450", Name: "Tour Eiffel"},
	}))
	require.NoError(t, m.StartMap(parisMap(), []model.Marker{
		{ID: 4, MapID: 7, Lat: "48.86060", Lng: "2.33760", Name: "Louvre"},
	}))

	var markers []MarkerRow
	require.NoError(t, m.DB.Find(&markers).Error)
	require.Len(t, markers, 1)
	assert.Equal(t, "Louvre", markers[0].Name)

	var maps []MapRow
	require.NoError(t, m.DB.Find(&maps).Error)
	assert.Len(t, maps, 1)
}

func TestSaveMarker_Upserts(t *testing.T) {
	m := testManager(t)
	require.NoError(t, m.StartMap(parisMap(), nil))

	m.SaveMarker(model.Marker{ID: 3, MapID: 7, Lat: "48.85840", Lng: "2.29450", Name: "Tour Eiffel"})
	m.SaveMarker(model.Marker{ID: 3, MapID: 7, Lat: "48.87420", Lng: "2.29510", Name: "Tour Eiffel (moved)"})

	var markers []MarkerRow
	require.NoError(t, m.DB.Find(&markers).Error)
	require.Len(t, markers, 1)
	assert.Equal(t, "48.87420", markers[0].Lat)
	assert.Equal(t, "Tour Eiffel (moved)", markers[0].Name)
}

func TestDeleteMarker(t *testing.T) {
	m := testManager(t)
	require.NoError(t, m.StartMap(parisMap(), []model.Marker{
		{ID: 3, MapID: 7, Lat: "48.85840", Lng: "2.29450", Name: "Tour Eiffel"},
	}))

	m.DeleteMarker(3)

	var count int64
	require.NoError(t, m.DB.Model(&MarkerRow{}).Count(&count).Error)
	assert.Zero(t, count)
}
