package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Geb0/OpenMapGenerator/internal/app"
	"github.com/Geb0/OpenMapGenerator/internal/notify"
	"github.com/Geb0/OpenMapGenerator/internal/store"
)

// terminalWidget is a headless map surface: it prints what a real widget
// would draw and hands out integer handles.
type terminalWidget struct {
	out io.Writer

	lat, lng string
	zoom     int

	nextHandle int
	markers    map[int]string
}

func newTerminalWidget(out io.Writer) *terminalWidget {
	return &terminalWidget{out: out, markers: make(map[int]string)}
}

func (w *terminalWidget) SetView(lat, lng string, zoom int) {
	w.lat, w.lng, w.zoom = lat, lng, zoom
	fmt.Fprintf(w.out, "[map] view %s,%s zoom %d\n", lat, lng, zoom)
}

func (w *terminalWidget) View() (string, string, int) {
	return w.lat, w.lng, w.zoom
}

func (w *terminalWidget) AddMarker(lat, lng, icon, popupHTML string) store.Handle {
	w.nextHandle++
	w.markers[w.nextHandle] = lat + "," + lng
	fmt.Fprintf(w.out, "[map] marker #%d at %s,%s (%s)\n", w.nextHandle, lat, lng, icon)
	return w.nextHandle
}

func (w *terminalWidget) RemoveMarker(h store.Handle) {
	id := h.(int)
	delete(w.markers, id)
	fmt.Fprintf(w.out, "[map] marker #%d removed\n", id)
}

func (w *terminalWidget) ClosePopups() {}

// terminalSink prints notification bar updates.
type terminalSink struct {
	out io.Writer
}

func (s terminalSink) Show(message string, style notify.Style) {
	fmt.Fprintf(s.out, "[%s] %s\n", style, message)
}

func (s terminalSink) Clear() {}

const usage = `commands:
  click <lat> <lng>        click the map surface
  marker <id>              click the marker with that id
  set <field> <value...>   set a form field (name, description, icon, link)
  create                   submit the form as a new marker
  update                   submit the form against the selected marker
  move                     relocate the selected marker (then: click)
  delete                   delete the selected marker
  mapname <name...>        set the map form name
  mapupdate                submit the map settings
  center                   save the current view as the map center
  list                     print the collection
  form                     print the form state
  quit
`

// runCLI reads gesture commands from in and executes them on the event
// loop until quit or EOF.
func runCLI(a *app.App, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, usage)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := strings.ToLower(fields[0]), fields[1:]
		switch cmd {
		case "quit", "exit":
			return

		case "click":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: click <lat> <lng>")
				continue
			}
			lat, errLat := strconv.ParseFloat(args[0], 64)
			lng, errLng := strconv.ParseFloat(args[1], 64)
			if errLat != nil || errLng != nil {
				fmt.Fprintln(out, "bad coordinates")
				continue
			}
			a.Call("click", func() { a.Surface.SurfaceClick(lat, lng) })

		case "marker":
			if len(args) != 1 {
				fmt.Fprintln(out, "usage: marker <id>")
				continue
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintln(out, "bad marker id")
				continue
			}
			a.Call("marker", func() {
				rec, ok := a.Store.FindByID(id)
				if !ok {
					fmt.Fprintln(out, "no such marker")
					return
				}
				h, ok := a.Store.HandleOf(rec)
				if !ok {
					fmt.Fprintln(out, "marker not on the map")
					return
				}
				a.Surface.MarkerClick(h)
			})

		case "set":
			if len(args) < 2 {
				fmt.Fprintln(out, "usage: set <field> <value...>")
				continue
			}
			field, value := args[0], strings.Join(args[1:], " ")
			a.Call("set", func() {
				f := a.Surface.Form()
				switch field {
				case "name":
					f.Name = value
				case "description":
					f.Description = value
				case "icon":
					f.Icon = value
				case "link":
					f.Link = value
				default:
					fmt.Fprintln(out, "unknown field")
				}
			})

		case "create":
			a.Call("create", func() { a.Session.CreateMarker() })

		case "update":
			a.Call("update", func() { a.Session.UpdateMarker() })

		case "move":
			a.Call("move", func() { a.Session.MoveMarker() })

		case "delete":
			a.Call("delete", func() { a.Session.DeleteMarker() })

		case "mapname":
			name := strings.Join(args, " ")
			a.Call("mapname", func() { a.Surface.MapForm().Name = name })

		case "mapupdate":
			a.Call("mapupdate", func() { a.Session.UpdateMap() })

		case "center":
			a.Call("center", func() { a.Session.SaveMapCenter() })

		case "list":
			a.Call("list", func() {
				for _, rec := range a.Store.All() {
					fmt.Fprintf(out, "  #%d %s,%s %q\n", rec.ID, rec.Lat, rec.Lng, rec.Name)
				}
			})

		case "form":
			a.Call("form", func() {
				f := a.Surface.Form()
				fmt.Fprintf(out, "  visible=%v id=%s lat=%s lng=%s name=%q icon=%s\n",
					f.Visible(), f.ID, f.Lat, f.Lng, f.Name, f.Icon)
			})

		default:
			fmt.Fprint(out, usage)
		}
	}
}
