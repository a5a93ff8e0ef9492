package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Geb0/OpenMapGenerator/internal/app"
	"github.com/Geb0/OpenMapGenerator/internal/model"
)

// mapFile is the on-disk description of a map session: raw field maps, run
// through the same normalization as backend data.
type mapFile struct {
	Map     map[string]string   `json:"map"`
	Markers []map[string]string `json:"markers"`
}

func loadMapFile(path string) (model.Map, []model.Marker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Map{}, nil, fmt.Errorf("error reading map file: %v", err)
	}

	var mf mapFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return model.Map{}, nil, fmt.Errorf("error parsing map file: %v", err)
	}

	info := model.MapFromFields(mf.Map)
	markers := make([]model.Marker, 0, len(mf.Markers))
	for _, fields := range mf.Markers {
		markers = append(markers, model.MarkerFromFields(fields))
	}
	return info, markers, nil
}

// demoMap is used when no map file is given, for poking at a backend.
func demoMap() (model.Map, []model.Marker) {
	info := model.Map{
		ID: 1, Name: "Demo", Lat: "48.85340", Lng: "2.34860", Zoom: 12,
		Editable: true,
	}
	markers := []model.Marker{
		{ID: 1, MapID: 1, Lat: "48.85840", Lng: "2.29450", Name: "Tour Eiffel"},
		{ID: 2, MapID: 1, Lat: "48.86060", Lng: "2.33760", Name: "Louvre"},
	}
	return info, markers
}

func main() {
	configDir := flag.String("config", ".", "directory holding omg_client.cfg.json")
	mapPath := flag.String("map", "", "JSON file describing the map and its markers")
	flag.Parse()

	widget := newTerminalWidget(os.Stdout)

	a, err := app.New(app.Options{
		ConfigDir: *configDir,
		Widget:    widget,
		Sink:      terminalSink{out: os.Stdout},
		Alert: func(msg string) {
			fmt.Fprintf(os.Stdout, "!! %s\n", msg)
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Stop()

	info, markers := demoMap()
	if *mapPath != "" {
		info, markers, err = loadMapFile(*mapPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	a.Init(info, markers)
	fmt.Printf("Loaded map %d %q with %d markers\n", info.ID, info.Name, a.Store.Len())

	runCLI(a, os.Stdin, os.Stdout)
}
