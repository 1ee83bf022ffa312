package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/globe"
	"github.com/earthsci/goearth/pkg/layer"
	"github.com/earthsci/goearth/pkg/view"
)

// Scale from model meters to render units. Raylib works in float32, so
// the scene is rendered in kilometers to keep coordinates well inside
// single precision range.
const worldScale = 1.0 / 1000.0

// Options configures the interactive globe viewer
type Options struct {
	// CatalogPath is an optional layer catalog file to load and watch
	CatalogPath string

	// Center is the initial center of rotation
	Center geo.Position

	// Zoom is the initial zoom distance in meters
	Zoom float64
}

// DefaultOptions returns a whole-globe view with no catalog
func DefaultOptions() Options {
	return Options{
		Center: geo.NewPosition(0, 0, 0),
		Zoom:   2.5e7,
	}
}

type App struct {
	Camera       CameraState
	Scene        SceneData
	View         ViewSettings
	Interaction  InteractionState
	CatalogWatch CatalogWatchState
}

// Run starts the interactive globe viewer and blocks until the window is
// closed
func Run(opts Options) error {
	orbit := view.NewOrbitView()
	orbit.SetCenter(opts.Center)
	orbit.SetZoom(opts.Zoom)

	app := &App{
		Camera: CameraState{
			view:           orbit,
			defaultCenter:  opts.Center,
			defaultHeading: 0,
			defaultPitch:   0,
			defaultZoom:    opts.Zoom,
		},
		Scene: SceneData{
			globe:     globe.NewEarth(),
			retriever: layer.NewRetriever(),
		},
		View: ViewSettings{
			showGraticule: true,
			showMarkers:   true,
			showHelp:      true,
		},
	}

	if opts.CatalogPath != "" {
		catalog, err := layer.LoadCatalog(opts.CatalogPath, app.Scene.retriever)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		app.Scene.catalog = catalog

		if err := app.setupCatalogWatcher(opts.CatalogPath); err != nil {
			fmt.Printf("Warning: failed to watch catalog: %v\n", err)
			fmt.Println("Auto-reload will not be available")
		} else {
			defer app.CatalogWatch.catalogWatcher.Close()
		}
	}

	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, "GoEarth")
	rl.SetTargetFPS(60)

	app.Camera.camera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	for !rl.WindowShouldClose() {
		// Check for Ctrl+C to exit
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		// Apply a reloaded catalog if ready (must be on main thread)
		app.applyLoadedCatalog()

		app.handleInput()
		app.updateView()
		app.updateCamera()
		app.updateMousePosition()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		app.drawGlobe()
		if app.View.showGraticule {
			app.drawGraticule()
		}
		if app.View.showMarkers {
			app.drawLayerMarkers()
		}
		app.drawAxisMarker()
		rl.EndMode3D()

		app.drawUI()

		rl.EndDrawing()
	}

	rl.CloseWindow()
	return nil
}
