package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/globe"
	"github.com/earthsci/goearth/pkg/layer"
	"github.com/earthsci/goearth/pkg/view"
	"github.com/earthsci/goearth/pkg/viewer"
)

const (
	previewWidth  = 640
	previewHeight = 480
)

type App struct {
	window    fyne.Window
	retriever *layer.Retriever
	catalog   *layer.Catalog

	globe    *globe.Ellipsoid
	orbit    *view.OrbitView
	renderer *viewer.GlobeRenderer

	tree      *widget.Tree
	preview   *canvas.Image
	progress  *widget.ProgressBar
	infoLabel *widget.Label

	// nodes maps tree widget ids to catalog nodes
	nodes map[widget.TreeNodeID]*layer.Node
}

func main() {
	a := fyneapp.New()
	w := a.NewWindow("GoEarth - Layer Catalog Browser")

	appInstance := &App{
		window:    w,
		retriever: layer.NewRetriever(),
		globe:     globe.NewEarth(),
		orbit:     view.NewOrbitView(),
		nodes:     make(map[widget.TreeNodeID]*layer.Node),
	}
	appInstance.orbit.SetCenter(geo.NewPosition(0, 0, 0))
	appInstance.orbit.SetZoom(2.5e7)
	appInstance.renderer = viewer.NewGlobeRenderer(
		appInstance.globe, appInstance.orbit, previewWidth, previewHeight)

	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to GoEarth")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open Catalog' to load a layer catalog")

	openButton := widget.NewButton("Open Catalog", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	catalog, err := layer.LoadCatalog(filename, a.retriever)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load catalog: %w", err), a.window)
		return
	}

	a.catalog = catalog
	a.setupMainUI()
}

func (a *App) setupMainUI() {
	a.nodes = map[widget.TreeNodeID]*layer.Node{"": a.catalog.Root}

	a.tree = widget.NewTree(a.childUIDs, a.isBranch, a.createNodeLabel, a.updateNodeLabel)
	a.tree.OnBranchOpened = a.onBranchOpened
	a.tree.OnSelected = a.onSelected

	a.progress = widget.NewProgressBar()
	a.progress.Hide()

	a.preview = canvas.NewImageFromImage(a.renderer.Render(a.catalog.Root))
	a.preview.FillMode = canvas.ImageFillContain
	a.preview.SetMinSize(fyne.NewSize(previewWidth/2, previewHeight/2))

	stats := a.catalog.Stats()
	a.infoLabel = widget.NewLabel(fmt.Sprintf(
		"Catalog: %s\nLayers: %d\nLocated: %d\nLazy: %d\nDepth: %d",
		a.catalog.Name, stats.Nodes, stats.Located, stats.Lazy, stats.Depth))

	openButton := widget.NewButton("Open Catalog", func() {
		a.showFileDialog()
	})

	zoomIn := widget.NewButton("Zoom In", func() {
		a.orbit.SetZoom(a.orbit.State().Zoom() * 0.8)
		a.refreshPreview()
	})
	zoomOut := widget.NewButton("Zoom Out", func() {
		a.orbit.SetZoom(a.orbit.State().Zoom() * 1.25)
		a.refreshPreview()
	})
	rotateLeft := widget.NewButton("<", func() {
		a.orbit.SetHeading(a.orbit.State().Heading() - 15)
		a.refreshPreview()
	})
	rotateRight := widget.NewButton(">", func() {
		a.orbit.SetHeading(a.orbit.State().Heading() + 15)
		a.refreshPreview()
	})

	controls := container.NewHBox(rotateLeft, rotateRight, zoomIn, zoomOut)

	sidePanel := container.NewBorder(
		container.NewVBox(a.infoLabel, widget.NewSeparator(), openButton, a.progress),
		nil, nil, nil,
		a.tree,
	)

	previewPanel := container.NewBorder(
		nil,
		container.NewCenter(controls),
		nil, nil,
		a.preview,
	)

	split := container.NewHSplit(sidePanel, previewPanel)
	split.SetOffset(0.3)

	a.window.SetContent(split)
}

func (a *App) displayChildren(n *layer.Node) []*layer.Node {
	if lazy := n.Lazy(); lazy != nil {
		return lazy.DisplayChildren()
	}
	return n.Children()
}

func (a *App) childUIDs(id widget.TreeNodeID) []widget.TreeNodeID {
	node := a.nodes[id]
	if node == nil {
		return nil
	}
	children := a.displayChildren(node)
	ids := make([]widget.TreeNodeID, 0, len(children))
	for i, c := range children {
		cid := id + "/" + strconv.Itoa(i)
		a.nodes[cid] = c
		ids = append(ids, cid)
	}
	return ids
}

func (a *App) isBranch(id widget.TreeNodeID) bool {
	node := a.nodes[id]
	if node == nil {
		return false
	}
	return node.Lazy() != nil || len(node.Children()) > 0
}

func (a *App) createNodeLabel(branch bool) fyne.CanvasObject {
	return widget.NewLabel("Layer")
}

func (a *App) updateNodeLabel(id widget.TreeNodeID, branch bool, co fyne.CanvasObject) {
	node := a.nodes[id]
	if node == nil {
		return
	}
	text := node.Name()
	if loc, ok := node.Location(); ok {
		text += fmt.Sprintf(" (%.2f°, %.2f°)", loc.Lat.Degrees(), loc.Lon.Degrees())
	}
	co.(*widget.Label).SetText(text)
}

// onBranchOpened starts a lazy load the first time a remote branch is
// expanded. The tree shows the loading pseudo-node until the job is done.
func (a *App) onBranchOpened(id widget.TreeNodeID) {
	node := a.nodes[id]
	if node == nil {
		return
	}
	lazy := node.Lazy()
	if lazy == nil || lazy.IsLoaded() || lazy.IsLoading() {
		return
	}

	job := lazy.Load(context.Background())
	job.AddMonitor(&progressMonitor{bar: a.progress})
	a.tree.Refresh()

	go func() {
		<-job.Done()
		fyne.Do(func() {
			a.tree.Refresh()
			a.refreshPreview()
		})
	}()
}

// onSelected centers the preview on a selected layer with a location
func (a *App) onSelected(id widget.TreeNodeID) {
	node := a.nodes[id]
	if node == nil {
		return
	}
	loc, ok := node.Location()
	if !ok {
		return
	}
	a.orbit.SetCenter(geo.Position{LatLon: loc})
	a.refreshPreview()
}

func (a *App) refreshPreview() {
	if a.catalog == nil {
		return
	}
	a.preview.Image = a.renderer.Render(a.catalog.Root)
	a.preview.Refresh()
}

// progressMonitor drives the progress bar from a retrieval job
type progressMonitor struct {
	bar    *widget.ProgressBar
	total  int64
	worked int64
}

func (m *progressMonitor) Begin(task string, total int64) {
	m.total = total
	fyne.Do(func() {
		m.bar.SetValue(0)
		m.bar.Show()
	})
}

func (m *progressMonitor) Worked(n int64) {
	m.worked += n
	if m.total <= 0 {
		return
	}
	value := float64(m.worked) / float64(m.total)
	fyne.Do(func() {
		m.bar.SetValue(value)
	})
}

func (m *progressMonitor) Done() {
	fyne.Do(func() {
		m.bar.Hide()
	})
}
