// Package app assembles the engine: configuration, logging, the event
// loop, the remote gateway, the marker collection, the surface controller
// and the session coordinator live behind one context object owned by the
// host process.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Geb0/OpenMapGenerator/internal/api"
	"github.com/Geb0/OpenMapGenerator/internal/config"
	"github.com/Geb0/OpenMapGenerator/internal/i18n"
	"github.com/Geb0/OpenMapGenerator/internal/icons"
	"github.com/Geb0/OpenMapGenerator/internal/influx"
	"github.com/Geb0/OpenMapGenerator/internal/logging"
	"github.com/Geb0/OpenMapGenerator/internal/loop"
	"github.com/Geb0/OpenMapGenerator/internal/model"
	"github.com/Geb0/OpenMapGenerator/internal/notify"
	"github.com/Geb0/OpenMapGenerator/internal/session"
	"github.com/Geb0/OpenMapGenerator/internal/snapshot"
	"github.com/Geb0/OpenMapGenerator/internal/store"
	"github.com/Geb0/OpenMapGenerator/internal/surface"
)

// Options carries the host-supplied collaborators.
type Options struct {
	// ConfigDir is the directory holding omg_client.cfg.json.
	ConfigDir string
	// Widget is the visual map implementation.
	Widget surface.Widget
	// Sink receives notification bar updates.
	Sink notify.Sink
	// Alert shows blocking validation messages.
	Alert session.Alerter
}

// App is the engine context. All engine state is confined to the event
// loop; the host interacts through Surface gestures and Session actions
// posted via Post.
type App struct {
	Loop     *loop.Loop
	Client   *api.Client
	Store    *store.Collection
	Surface  *surface.Controller
	Session  *session.Coordinator
	Bar      *notify.Bar
	Icons    *icons.Catalog
	Snapshot *snapshot.Manager
	Influx   *influx.Manager

	logManager *logging.SlogManager
	logger     *slog.Logger
	logFile    *os.File
	locale     string

	mu      sync.Mutex
	mapInfo model.Map
	hasMap  bool
}

// New loads configuration and builds the engine. The returned App has a
// running event loop; call Init to load a map and Stop to shut down.
func New(opts Options) (*App, error) {
	if err := config.Load(opts.ConfigDir); err != nil {
		return nil, err
	}

	a := &App{locale: viper.GetString("locale")}

	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating logs dir: %v", err)
	}
	logPath := logging.LogFilePath(logsDir, "omg_client", time.Now())
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("error creating log file: %v", err)
	}
	a.logFile = logFile

	a.logManager = logging.NewSlogManager()
	a.logManager.Setup(logFile, viper.GetString("logLevel"), a.sessionAttrs)
	a.logger = a.logManager.Logger()

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	a.Icons, err = icons.Load(viper.GetString("icons.dir"), viper.GetString("icons.default"))
	if err != nil {
		return nil, err
	}

	a.Loop, err = loop.New(logging.NewLoopLogger(zl), 64)
	if err != nil {
		return nil, err
	}
	a.Loop.Start()

	clientOpts := []api.Option{
		api.WithScheduler(a.Loop.Post),
		api.WithLogger(logging.NewLoopLogger(zl)),
	}

	if viper.GetBool("influx.enabled") {
		a.Influx = influx.NewManager(zl, filepath.Join(logsDir, "omg_metrics_backup.gz"))
		if err := a.Influx.Connect(); err != nil {
			a.logger.Error("metrics disabled", "error", err)
			a.Influx = nil
		} else {
			clientOpts = append(clientOpts, api.WithObserver(func(op api.Operation, d time.Duration, ok bool) {
				a.Influx.WriteOperation(string(op), d, ok)
			}))
		}
	}

	a.Client = api.New(viper.GetString("api.serverUrl"), clientOpts...)
	a.Store = store.New()
	a.Surface = surface.NewController(opts.Widget, a.Store, a.Icons,
		viper.GetString("icons.urlPath"), a.logger)

	dismiss := time.Duration(viper.GetInt("notify.seconds")) * time.Second
	a.Bar = notify.NewBar(opts.Sink, dismiss)

	var mirror session.Mirror
	snapCfg := config.GetSnapshotConfig()
	if snapCfg.Enabled {
		snap := snapshot.NewManager(snapCfg, zl)
		if err := snap.Connect(); err != nil {
			a.logger.Error("snapshot mirror disabled", "error", err)
		} else if err := snap.Setup(); err != nil {
			a.logger.Error("snapshot mirror disabled", "error", err)
		} else {
			a.Snapshot = snap
			mirror = snap
		}
	}

	a.Session = session.New(a.Client, a.Store, a.Surface, a.Bar, opts.Alert, mirror, a.logger)
	a.Surface.SetActions(a.Session)

	return a, nil
}

// sessionAttrs feeds the loaded map into every log record.
func (a *App) sessionAttrs() []slog.Attr {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.hasMap {
		return nil
	}
	return []slog.Attr{
		slog.Int("map", a.mapInfo.ID),
		slog.String("mapName", a.mapInfo.Name),
	}
}

func (a *App) setMapInfo(info model.Map) {
	a.mu.Lock()
	a.mapInfo = info
	a.hasMap = true
	a.mu.Unlock()
}

// Init loads a map into the engine: the message catalog is fetched for the
// configured locale (built-in defaults on failure), then the surface and the
// snapshot mirror are initialized. Blocks until the surface is ready.
func (a *App) Init(info model.Map, markers []model.Marker) {
	ready := make(chan struct{})

	a.Loop.Post("init", func() {
		a.Client.Invoke(api.OpGetMessages, api.NoKey,
			map[string]string{"lang": a.locale},
			func(resp api.Response) {
				if resp.OK() {
					a.Surface.SetMessages(i18n.FromResponse(resp.Body))
				} else {
					a.logger.Error("message catalog fetch failed, using defaults",
						"locale", a.locale)
				}

				a.setMapInfo(info)
				a.Surface.Init(info, markers)

				if a.Snapshot != nil {
					if err := a.Snapshot.StartMap(info, markers); err != nil {
						a.logger.Error("snapshot start failed", "error", err)
					}
				}
				close(ready)
			})
	})

	<-ready
}

// Post runs fn on the event loop, after any queued work.
func (a *App) Post(name string, fn func()) {
	a.Loop.Post(name, fn)
}

// Call runs fn on the event loop and waits for it.
func (a *App) Call(name string, fn func()) {
	a.Loop.Call(name, fn)
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Stop drains the event loop and releases resources.
func (a *App) Stop() {
	a.Loop.Stop()
	if a.Influx != nil {
		a.Influx.Close()
	}
	if a.Snapshot != nil {
		_ = a.Snapshot.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
