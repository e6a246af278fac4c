package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-blaster/asset"
	"github.com/lixenwraith/vi-blaster/engine"
	"github.com/lixenwraith/vi-blaster/parameter"
	"github.com/lixenwraith/vi-blaster/status"
	"github.com/lixenwraith/vi-blaster/vmath"
	"github.com/lixenwraith/vi-blaster/world"
)

// Floor block colors
var (
	floorGreen = tcell.NewRGBColor(0x22, 0x8B, 0x22)
	floorBrown = tcell.NewRGBColor(0x8B, 0x45, 0x13)
)

// Metric keys shown in the status line
var statusKeys = []string{
	status.KeyTicks,
	status.KeyShots,
	status.KeyHits,
	status.KeyRespawns,
	status.KeyProjectiles,
	status.KeyStepScale,
	status.KeyAssets,
	status.KeyAudio,
}

// facingGlyphs are indexed by yaw octant, 0 = facing +Z (screen up), counter-clockwise on screen
var facingGlyphs = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

// View draws a top-down map of the world centered on the avatar
// Screen up is +Z, screen left is +X
type View struct {
	screen    tcell.Screen
	templates engine.Templates
	reg       *status.Registry

	unitsPerRow float64
	unitsPerCol float64 // Half of unitsPerRow, terminal cells are about twice as tall as wide
}

// NewView creates a view; templates supply glyphs and colors
func NewView(screen tcell.Screen, templates engine.Templates, reg *status.Registry) *View {
	return &View{
		screen:      screen,
		templates:   templates,
		reg:         reg,
		unitsPerRow: 0.25,
		unitsPerCol: 0.125,
	}
}

// Zoom scales the map; factor > 1 zooms in
func (v *View) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	v.unitsPerRow = math.Min(math.Max(v.unitsPerRow/factor, 0.05), 4)
	v.unitsPerCol = v.unitsPerRow * 0.5
}

// Draw renders one frame
func (v *View) Draw(snap engine.Snapshot, objects []world.Object) {
	w, h := v.screen.Size()
	if w <= 0 || h <= 1 {
		return
	}
	mapH := h - 1
	center := snap.Pose.Position

	v.drawFloor(w, mapH, center)

	for _, obj := range objects {
		if !obj.Visible || obj.Kind == asset.KindBlaster {
			continue
		}
		x, y, ok := v.project(obj.Position, center, w, mapH)
		if !ok {
			continue
		}
		glyph, fg := v.look(obj.Kind)
		v.setFg(x, y, glyph, fg)
	}

	if snap.AvatarReady {
		_, fg := v.look(asset.KindBlaster)
		v.setFg(w/2, mapH/2, FacingGlyph(snap.Pose.Yaw), fg)
	}

	v.drawStatus(w, h-1, snap)
	v.screen.Show()
}

// FacingGlyph returns the arrow closest to the yaw direction
func FacingGlyph(yaw float64) rune {
	oct := int(math.Round(vmath.NormalizeAngle(yaw)/(math.Pi/4))) % 8
	if oct < 0 {
		oct += 8
	}
	return facingGlyphs[oct]
}

// project maps world XZ to a screen cell, false when off the map area
func (v *View) project(p, center vmath.Vec3, w, h int) (int, int, bool) {
	x := w/2 - int(math.Round((p.X()-center.X())/v.unitsPerCol))
	y := h/2 - int(math.Round((p.Z()-center.Z())/v.unitsPerRow))
	if x < 0 || x >= w || y < 0 || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

// unproject maps a screen cell back to world XZ
func (v *View) unproject(x, y int, center vmath.Vec3, w, h int) (float64, float64) {
	wx := center.X() - float64(x-w/2)*v.unitsPerCol
	wz := center.Z() - float64(y-h/2)*v.unitsPerRow
	return wx, wz
}

func (v *View) drawFloor(w, h int, center vmath.Vec3) {
	half := parameter.FloorSize / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			wx, wz := v.unproject(x, y, center, w, h)
			style := tcell.StyleDefault.Background(tcell.ColorBlack)
			if math.Abs(wx) <= half && math.Abs(wz) <= half {
				style = style.Background(FloorColor(wx, wz))
			}
			v.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// FloorColor returns the block color at a world point
// Blocks alternate pseudo-randomly but stably by block coordinate
func FloorColor(x, z float64) tcell.Color {
	bx := int64(math.Floor(x / parameter.FloorBlockSize))
	bz := int64(math.Floor(z / parameter.FloorBlockSize))
	hash := uint64(bx)*0x9E3779B97F4A7C15 ^ uint64(bz)*0xC2B2AE3D27D4EB4F
	hash ^= hash >> 31
	if hash&1 == 0 {
		return floorGreen
	}
	return floorBrown
}

// setFg draws a glyph keeping the floor background
func (v *View) setFg(x, y int, r rune, fg tcell.Color) {
	_, _, style, _ := v.screen.GetContent(x, y)
	v.screen.SetContent(x, y, r, nil, style.Foreground(fg).Bold(true))
}

func (v *View) look(kind asset.Kind) (rune, tcell.Color) {
	glyph, color := '?', tcell.ColorWhite
	if v.templates == nil {
		return glyph, color
	}
	if t, ok := v.templates.Template(kind); ok {
		glyph = t.Glyph
		if t.Color != "" {
			if c := tcell.GetColor(t.Color); c != tcell.ColorDefault {
				color = c
			}
		}
	}
	return glyph, color
}

func (v *View) drawStatus(w, y int, snap engine.Snapshot) {
	line := fmt.Sprintf(" pos=%.1f,%.1f yaw=%.2f", snap.Pose.Position.X(), snap.Pose.Position.Z(), snap.Pose.Yaw)
	if v.reg != nil {
		line = " " + v.reg.Line(statusKeys...) + line
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	runes := []rune(line)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, y, r, nil, style)
	}
}
