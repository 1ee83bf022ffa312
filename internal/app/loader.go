package app

import (
	"fmt"
	"time"

	"github.com/earthsci/goearth/pkg/layer"
	"github.com/earthsci/goearth/pkg/watcher"
)

// setupCatalogWatcher starts watching the catalog file for changes
func (app *App) setupCatalogWatcher(path string) error {
	app.CatalogWatch.path = path
	w, err := watcher.Watch(path, 300*time.Millisecond, func(string) {
		app.CatalogWatch.mu.Lock()
		app.CatalogWatch.needsReload = true
		app.CatalogWatch.mu.Unlock()
	})
	if err != nil {
		return err
	}
	app.CatalogWatch.catalogWatcher = w
	return nil
}

// applyLoadedCatalog starts a pending reload in the background and swaps
// in a finished one. Must be called from the main thread.
func (app *App) applyLoadedCatalog() {
	cw := &app.CatalogWatch
	cw.mu.Lock()
	if cw.needsReload && !cw.isLoading {
		cw.needsReload = false
		cw.isLoading = true
		cw.loadingStart = time.Now()
		go app.reloadCatalog()
	}
	loaded := cw.loadedCatalog
	loadErr := cw.loadErr
	cw.loadedCatalog = nil
	cw.loadErr = nil
	cw.mu.Unlock()

	if loadErr != nil {
		fmt.Printf("Error reloading catalog: %v\n", loadErr)
		return
	}
	if loaded != nil {
		app.Scene.catalog = loaded
	}
}

// reloadCatalog loads the catalog in the background
func (app *App) reloadCatalog() {
	catalog, err := layer.LoadCatalog(app.CatalogWatch.path, app.Scene.retriever)

	cw := &app.CatalogWatch
	cw.mu.Lock()
	cw.isLoading = false
	cw.loadedCatalog = catalog
	cw.loadErr = err
	cw.mu.Unlock()
}
