package renderer

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HUD is an optional, off-by-default full-screen terminal view of a
// render's progress: each pass's preview image is downsampled to one
// block character per terminal cell, colored by blending the cell's
// average linear radiance between a "cold" and "hot" reference color in
// perceptually-uniform Lab space, which keeps the gradient readable even
// at the coarse one-cell-per-tile-block resolution a terminal allows.
type HUD struct {
	screen tcell.Screen
}

var (
	hudCold = colorful.Color{R: 0.05, G: 0.05, B: 0.2}
	hudHot  = colorful.Color{R: 1.0, G: 0.9, B: 0.2}
)

// NewHUD opens a terminal screen for progress display. Callers must call
// Close when the render finishes or is cancelled.
func NewHUD() (*HUD, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("renderer: open terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("renderer: init terminal screen: %w", err)
	}
	return &HUD{screen: screen}, nil
}

// Close releases the terminal back to the shell.
func (h *HUD) Close() {
	h.screen.Fini()
}

// Update redraws the HUD from one completed pass: a downsampled heat map
// of the image on the left rows, and a status line below it.
func (h *HUD) Update(result PassResult) {
	h.screen.Clear()
	cols, rows := h.screen.Size()
	if cols <= 0 || rows <= 1 {
		return
	}
	imgRows := rows - 1
	bounds := result.Image.Bounds()
	w, hgt := bounds.Dx(), bounds.Dy()

	for cy := 0; cy < imgRows; cy++ {
		for cx := 0; cx < cols; cx++ {
			px := bounds.Min.X + cx*w/cols
			py := bounds.Min.Y + cy*hgt/imgRows
			r, g, b, _ := result.Image.At(px, py).RGBA()
			lum := (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
			cell := hudCold.BlendLab(hudHot, clamp01(lum))
			cr, cg, cb := cell.RGB255()
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
			h.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}

	status := fmt.Sprintf("pass %d  %d/%d samples  %s elapsed",
		result.PassNumber, result.SamplesSoFar, result.Stats.TotalSamples, result.Elapsed.Round(time.Second))
	for i, r := range status {
		if i >= cols {
			break
		}
		h.screen.SetContent(i, imgRows, r, nil, tcell.StyleDefault)
	}

	h.screen.Show()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
