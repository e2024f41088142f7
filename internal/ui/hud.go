//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"flightsim/internal/render"
	"flightsim/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the instrument and parameter panel to the right of the view.
type HUD struct {
	sim   *world.Simulator
	panel *Panel
	width int
	title string

	img          *ebiten.Image
	lastHeight   int
	panelOffsetX int
	rows         []rowLayout
}

type rowLayout struct {
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for sim with the given panel width.
func NewHUD(sim *world.Simulator, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{
		sim:   sim,
		panel: NewPanel(sim),
		width: width,
		title: fmt.Sprintf("Flight: %s", sim.Name()),
	}
	h.layoutRows()
	return h
}

// Update refreshes the parameter values and handles button clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.panel.Refresh()
	h.handleInput()
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.img == nil || h.lastHeight != height {
		h.img = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.img.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawInstruments()
	h.drawRows()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.img, op)
}

func (h *HUD) handleInput() {
	if len(h.rows) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	pt := image.Pt(mx-h.panelOffsetX, my)
	for i, row := range h.rows {
		switch {
		case pt.In(row.minusRect):
			h.panel.Adjust(i, -1)
			return
		case pt.In(row.plusRect):
			h.panel.Adjust(i, 1)
			return
		}
	}
}

func (h *HUD) drawInstruments() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.img, h.title, face, panelPadding, y, titleColor)

	f := h.sim.Flight()
	g := render.ReadGauges(f, h.sim.Config().Flight)
	y += infoSpacing
	h.drawGauge("SPD", g.Speed/2, y)
	y += gaugeSpacing
	h.drawGauge("ALT", g.Altitude, y)

	y += gaugeSpacing
	status := "airborne"
	if !f.Alive {
		status = "DOWN - press R"
	}
	text.Draw(h.img, fmt.Sprintf("tick %d  %s", h.sim.Tick(), status), face, panelPadding, y, dimColor)
	y += lineSpacing
	text.Draw(h.img, fmt.Sprintf("shots %d  seed %d", h.sim.ProjectileCount(), h.sim.Seed()), face, panelPadding, y, dimColor)
}

func (h *HUD) drawGauge(label string, ratio float64, baseline int) {
	face := basicfont.Face7x13
	text.Draw(h.img, label, face, panelPadding, baseline, labelColor)
	x := float32(panelPadding + 32)
	w := float32(h.width - panelPadding*2 - 32)
	top := float32(baseline - 10)
	vector.DrawFilledRect(h.img, x, top, w, 10, buttonDisabled, false)
	fill := w * float32(min(max(ratio, 0), 1))
	vector.DrawFilledRect(h.img, x, top, fill, 10, gaugeColor, false)
}

func (h *HUD) drawRows() {
	face := basicfont.Face7x13
	if len(h.panel.Rows) == 0 {
		text.Draw(h.img, "No adjustable parameters", face, panelPadding, controlsTop+labelBaseline, dimColor)
		return
	}
	for i, row := range h.panel.Rows {
		layout := h.rows[i]
		labelY := layout.top + labelBaseline
		text.Draw(h.img, row.Control.Label, face, panelPadding, labelY, labelColor)
		valueColor := labelColor
		if !row.HasValue {
			valueColor = dimColor
		}
		bounds := text.BoundString(face, row.Value)
		valueX := layout.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.img, row.Value, face, valueX, labelY, valueColor)

		h.drawButton(layout.minusRect, "-", h.panel.CanAdjust(i, -1))
		h.drawButton(layout.plusRect, "+", h.panel.CanAdjust(i, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonEnabled, labelColor
	if !enabled {
		bg, fg = buttonDisabled, dimColor
	}
	vector.DrawFilledRect(h.img, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.img, label, face, x, y, fg)
}

func (h *HUD) layoutRows() {
	if h.width <= 0 {
		return
	}
	h.rows = make([]rowLayout, len(h.panel.Rows))
	for i := range h.rows {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.rows[i] = rowLayout{top: top, minusRect: minus, plusRect: plus}
	}
}

var (
	titleColor     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor     = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor       = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	gaugeColor     = color.RGBA{R: 90, G: 200, B: 120, A: 255}
	buttonEnabled  = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonDisabled = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	lineSpacing    = 16
	gaugeSpacing   = 22
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 28
	controlsTop    = panelPadding + headerBaseline + infoSpacing + 3*gaugeSpacing + lineSpacing + 14
)
