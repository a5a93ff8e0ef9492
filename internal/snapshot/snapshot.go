// Package snapshot keeps a local database mirror of the loaded map and its
// markers, so a session can be inspected offline after the fact. Postgres is
// preferred; when it is unreachable the mirror falls back to a SQLite file.
package snapshot

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Geb0/OpenMapGenerator/internal/config"
	"github.com/Geb0/OpenMapGenerator/internal/geo"
	"github.com/Geb0/OpenMapGenerator/internal/model"
)

// Manager handles the mirror database connection and writes.
type Manager struct {
	DB         *gorm.DB
	SqlDB      *sql.DB
	IsValid    bool
	UsingLocal bool
	Logger     zerolog.Logger

	cfg config.SnapshotConfig
}

// NewManager creates a new snapshot manager.
func NewManager(cfg config.SnapshotConfig, log zerolog.Logger) *Manager {
	return &Manager{
		IsValid: false,
		Logger:  log,
		cfg:     cfg,
	}
}

// Connect establishes a database connection, falling back to a local SQLite
// file if Postgres fails.
func (m *Manager) Connect() error {
	var err error

	m.DB, err = m.getPostgresDB()
	if err != nil {
		m.Logger.Error().Err(err).Msg("Failed to connect to Postgres DB, trying SQLite")
		m.UsingLocal = true
		m.DB, err = m.getSqliteDB()
		if err != nil || m.DB == nil {
			m.IsValid = false
			return fmt.Errorf("failed to get local SQLite DB: %s", err)
		}
	}

	// test connection
	m.SqlDB, err = m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %s", err)
	}

	err = m.SqlDB.Ping()
	if err != nil {
		m.Logger.Error().Err(err).Msg("Failed to validate connection, trying SQLite")
		m.UsingLocal = true
		m.DB, err = m.getSqliteDB()
		if err != nil || m.DB == nil {
			m.IsValid = false
			return fmt.Errorf("failed to get local SQLite DB: %s", err)
		}
	} else {
		m.Logger.Info().Msg("Connected to snapshot database")
	}
	m.IsValid = true

	return nil
}

func (m *Manager) getPostgresDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		m.cfg.DB.Host,
		m.cfg.DB.Port,
		m.cfg.DB.Username,
		m.cfg.DB.Password,
		m.cfg.DB.Database,
	)

	m.Logger.Debug().Str("host", m.cfg.DB.Host).Msg("Connecting to Postgres DB")

	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
}

func (m *Manager) getSqliteDB() (*gorm.DB, error) {
	if err := os.MkdirAll(m.cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating snapshot dir: %s", err)
	}
	path := filepath.Join(m.cfg.Dir, "omg_client.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %s", err)
		}
	}

	return db, nil
}

// Setup migrates the snapshot schema.
func (m *Manager) Setup() error {
	if err := m.DB.AutoMigrate(Models...); err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to migrate schema: %s", err)
	}
	m.Logger.Info().Msg("Snapshot schema ready")
	return nil
}

// StartMap resets the mirror to the freshly loaded map: the map row is
// upserted and its marker rows replaced wholesale.
func (m *Manager) StartMap(info model.Map, markers []model.Marker) error {
	if !m.IsValid {
		return fmt.Errorf("snapshot db not valid")
	}

	row := MapRow{
		MapID:       info.ID,
		Name:        info.Name,
		Description: info.Description,
		Lat:         info.Lat,
		Lng:         info.Lng,
		Zoom:        info.Zoom,
		Private:     info.Private,
	}

	err := m.DB.Where("map_id = ?", info.ID).
		Assign(row).
		FirstOrCreate(&MapRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to store map row: %s", err)
	}

	if err := m.DB.Where("map_id = ?", info.ID).Delete(&MarkerRow{}).Error; err != nil {
		return fmt.Errorf("failed to clear marker rows: %s", err)
	}

	for _, rec := range markers {
		if err := m.saveMarker(rec); err != nil {
			return err
		}
	}

	m.Logger.Info().Int("map", info.ID).Int("markers", len(markers)).Msg("Snapshot started")
	return nil
}

func (m *Manager) saveMarker(rec model.Marker) error {
	x, y := mercator(rec)
	row := MarkerRow{
		MarkerID:    rec.ID,
		MapID:       rec.MapID,
		Lat:         rec.Lat,
		Lng:         rec.Lng,
		X:           x,
		Y:           y,
		Name:        rec.Name,
		Description: rec.Description,
		Icon:        rec.Icon,
		Link:        rec.Link,
	}

	err := m.DB.Where("marker_id = ?", rec.ID).
		Assign(row).
		FirstOrCreate(&MarkerRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to store marker row: %s", err)
	}
	return nil
}

// SaveMarker upserts one marker row. Errors are logged, not surfaced, so a
// broken mirror never interrupts an edit session.
func (m *Manager) SaveMarker(rec model.Marker) {
	if !m.IsValid {
		return
	}
	if err := m.saveMarker(rec); err != nil {
		m.Logger.Error().Err(err).Int("marker", rec.ID).Msg("Snapshot save failed")
	}
}

// DeleteMarker removes one marker row.
func (m *Manager) DeleteMarker(id int) {
	if !m.IsValid {
		return
	}
	if err := m.DB.Where("marker_id = ?", id).Delete(&MarkerRow{}).Error; err != nil {
		m.Logger.Error().Err(err).Int("marker", id).Msg("Snapshot delete failed")
	}
}

// Close releases the underlying connection.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	return m.SqlDB.Close()
}

func mercator(rec model.Marker) (float64, float64) {
	lat, errLat := geo.Parse(rec.Lat)
	lng, errLng := geo.Parse(rec.Lng)
	if errLat != nil || errLng != nil {
		return 0, 0
	}
	p := geo.PointFrom4326(lng, lat)
	coord, ok := p.Coordinates()
	if !ok {
		return 0, 0
	}
	return coord.XY.X, coord.XY.Y
}
