package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/earthsci/goearth/version"
)

// drawUI draws the heads up display
func (app *App) drawUI() {
	v := app.Camera.view
	y := int32(10)
	lineHeight := int32(20)

	state := v.State()
	center := state.Center()

	rl.DrawText("View:", 10, y, 16, rl.Yellow)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("  Center: %.4f° %.4f° %.0f m",
		center.Lat.Degrees(), center.Lon.Degrees(), center.Elevation), 10, y, 14, rl.White)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("  Heading: %.1f°  Pitch: %.1f°  Zoom: %.0f m",
		state.Heading().Degrees(), state.Pitch().Degrees(), state.Zoom()), 10, y, 14, rl.White)
	y += lineHeight

	if v.TargetMode() {
		rl.DrawText("  TARGET MODE", 10, y, 14, rl.Magenta)
		y += lineHeight
	}

	if pos, ok := v.MousePosition(); ok {
		rl.DrawText(fmt.Sprintf("  Mouse: %.4f° %.4f°",
			pos.Lat.Degrees(), pos.Lon.Degrees()), 10, y, 14, rl.SkyBlue)
		y += lineHeight
	}
	y += lineHeight

	if app.Scene.catalog != nil {
		stats := app.Scene.catalog.Stats()
		rl.DrawText("Catalog:", 10, y, 16, rl.Yellow)
		y += lineHeight
		rl.DrawText(fmt.Sprintf("  %s: %d layers, %d located",
			app.Scene.catalog.Name, stats.Nodes, stats.Located), 10, y, 14, rl.White)
		y += lineHeight
		y += lineHeight
	}

	if app.View.showHelp {
		rl.DrawText("Navigate:", 10, y, 16, rl.Yellow)
		y += lineHeight
		rl.DrawText("  Drag: Rotate | Shift+Drag: Pan | Wheel: Zoom", 10, y, 14, rl.LightGray)
		y += lineHeight
		rl.DrawText("  T: Target mode | M: Axis marker | Home: Reset", 10, y, 14, rl.LightGray)
		y += lineHeight
		rl.DrawText("  G: Graticule | L: Layers | H: Help", 10, y, 14, rl.LightGray)
		y += lineHeight
	}

	app.drawLoadingIndicator()

	// Version and FPS in bottom-left corner
	bottomY := int32(rl.GetScreenHeight()) - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawText(versionText, 10, bottomY, 12, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureText(versionText, 12)
	rl.DrawText(fpsText, 10+versionWidth+15, bottomY, 12, rl.Lime)
}

// drawLoadingIndicator shows a spinner while the catalog reloads
func (app *App) drawLoadingIndicator() {
	app.CatalogWatch.mu.Lock()
	isLoading := app.CatalogWatch.isLoading
	start := app.CatalogWatch.loadingStart
	app.CatalogWatch.mu.Unlock()
	if !isLoading {
		return
	}

	elapsed := time.Since(start).Seconds()
	spinnerChars := []string{"|", "/", "-", "\\"}
	spinner := spinnerChars[int(elapsed*8)%len(spinnerChars)]
	text := fmt.Sprintf("%s Reloading catalog... (%.1fs)", spinner, elapsed)

	boxWidth := int32(280)
	boxHeight := int32(40)
	boxX := int32(rl.GetScreenWidth()) - boxWidth - 20
	boxY := int32(20)

	rl.DrawRectangle(boxX, boxY, boxWidth, boxHeight, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(boxX, boxY, boxWidth, boxHeight, rl.Yellow)
	rl.DrawText(text, boxX+12, boxY+12, 14, rl.Yellow)
}
