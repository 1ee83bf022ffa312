package app

import (
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/globe"
	"github.com/earthsci/goearth/pkg/layer"
	"github.com/earthsci/goearth/pkg/view"
	"github.com/earthsci/goearth/pkg/watcher"
)

// CameraState holds the orbit view and the raylib camera derived from it
type CameraState struct {
	view   *view.OrbitView
	camera rl.Camera3D

	// Default view parameters (for reset)
	defaultCenter  geo.Position
	defaultHeading geo.Angle
	defaultPitch   geo.Angle
	defaultZoom    float64
}

// SceneData holds the globe model and the layer catalog
type SceneData struct {
	globe     *globe.Ellipsoid
	catalog   *layer.Catalog
	retriever *layer.Retriever
}

// ViewSettings holds display settings
type ViewSettings struct {
	showGraticule bool
	showMarkers   bool
	showHelp      bool
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	isDragging   bool
	lastMousePos rl.Vector2
}

// CatalogWatchState holds catalog watching and reload state
type CatalogWatchState struct {
	path           string
	catalogWatcher *watcher.CatalogWatcher

	mu            sync.Mutex
	needsReload   bool
	isLoading     bool
	loadingStart  time.Time
	loadedCatalog *layer.Catalog
	loadErr       error
}
