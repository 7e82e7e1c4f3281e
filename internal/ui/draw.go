package ui

import (
	"image"
	"image/color"
	"math"
	"time"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Palette - цвета экрана.
type Palette struct {
	BG       color.NRGBA
	Panel    color.NRGBA
	Text     color.NRGBA
	TextDim  color.NRGBA
	Accent   color.NRGBA
	Good     color.NRGBA
	Alert    color.NRGBA
	Revealed color.NRGBA
}

// DefaultPalette возвращает цвета лаунчера.
func DefaultPalette() Palette {
	return Palette{
		BG:       color.NRGBA{R: 30, G: 30, B: 34, A: 255},
		Panel:    color.NRGBA{R: 45, G: 45, B: 50, A: 255},
		Text:     color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		TextDim:  color.NRGBA{R: 140, G: 140, B: 150, A: 255},
		Accent:   color.NRGBA{R: 88, G: 166, B: 255, A: 255},
		Good:     color.NRGBA{R: 80, G: 200, B: 120, A: 255},
		Alert:    color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		Revealed: color.NRGBA{R: 255, G: 180, B: 0, A: 255},
	}
}

// Background заливает всю область.
func Background(gtx layout.Context, col color.NRGBA) {
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, col, rect.Op())
}

// Label рисует текст по центру.
func Label(gtx layout.Context, size unit.Sp, col color.NRGBA, s string) layout.Dimensions {
	th := material.NewTheme()
	th.Palette.Fg = col
	lbl := material.Label(th, size, s)
	lbl.Alignment = text.Middle
	return lbl.Layout(gtx)
}

// Title рисует жирный текст по центру.
func Title(gtx layout.Context, size unit.Sp, col color.NRGBA, s string) layout.Dimensions {
	th := material.NewTheme()
	th.Palette.Fg = col
	lbl := material.Label(th, size, s)
	lbl.Font.Weight = font.Bold
	lbl.Alignment = text.Middle
	return lbl.Layout(gtx)
}

// Tile рисует скруглённый квадрат цвета col с текстом s в центре.
func Tile(gtx layout.Context, col, textCol color.NRGBA, s string) layout.Dimensions {
	size := gtx.Constraints.Max
	rr := gtx.Dp(unit.Dp(10))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, col, rect.Op(gtx.Ops))

	if s != "" {
		gtx.Constraints.Min = size
		layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return Title(gtx, unit.Sp(18), textCol, s)
		})
	}
	return layout.Dimensions{Size: size}
}

// Grid раскладывает rows x cols равных ячеек с зазором gap.
func Grid(gtx layout.Context, rows, cols int, gap unit.Dp, cell func(gtx layout.Context, i int) layout.Dimensions) layout.Dimensions {
	g := gtx.Dp(gap)
	side := gtx.Constraints.Max.X
	if gtx.Constraints.Max.Y < side {
		side = gtx.Constraints.Max.Y
	}
	w := (side - g*(cols-1)) / cols
	h := (side - g*(rows-1)) / rows
	if w < 0 || h < 0 {
		return layout.Dimensions{}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			off := image.Pt(c*(w+g), r*(h+g))
			stack := op.Offset(off).Push(gtx.Ops)
			cgtx := gtx
			cgtx.Constraints = layout.Exact(image.Pt(w, h))
			cell(cgtx, r*cols+c)
			stack.Pop()
		}
	}
	return layout.Dimensions{Size: image.Pt(side, side)}
}

// LevelMeter рисует полосу уровня микрофона, level в [0, 1].
func LevelMeter(gtx layout.Context, level float32, p Palette) layout.Dimensions {
	width := gtx.Constraints.Max.X
	height := gtx.Dp(unit.Dp(8))

	rr := gtx.Dp(unit.Dp(4))
	bg := clip.RRect{
		Rect: image.Rectangle{Max: image.Pt(width, height)},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, p.Panel, bg.Op(gtx.Ops))

	// RMS речи редко выше 0.3
	level *= 3
	if level > 1 {
		level = 1
	}
	barWidth := int(level * float32(width))
	if barWidth > 0 {
		col := p.Good
		if level > 0.7 {
			col = p.Alert
		} else if level > 0.4 {
			col = p.Revealed
		}
		bar := clip.RRect{
			Rect: image.Rectangle{Max: image.Pt(barWidth, height)},
			NE:   rr, NW: rr, SE: rr, SW: rr,
		}
		paint.FillShape(gtx.Ops, col, bar.Op(gtx.Ops))
	}
	return layout.Dimensions{Size: image.Pt(width, height)}
}

// Spinner рисует вращающееся кольцо точек.
func Spinner(gtx layout.Context, now time.Time, col color.NRGBA) layout.Dimensions {
	size := gtx.Dp(unit.Dp(40))
	thickness := gtx.Dp(unit.Dp(3))

	angle := float64(now.UnixMilli()%1000) / 1000.0 * 2 * math.Pi
	center := image.Pt(size/2, size/2)
	radius := size/2 - thickness

	numSegments := 12
	for i := 0; i < numSegments; i++ {
		segmentAngle := angle + float64(i)*2*math.Pi/float64(numSegments)
		alpha := uint8(255 - i*20)

		x := center.X + int(float64(radius)*math.Cos(segmentAngle))
		y := center.Y + int(float64(radius)*math.Sin(segmentAngle))

		dotRadius := thickness / 2
		dot := clip.Ellipse{
			Min: image.Pt(x-dotRadius, y-dotRadius),
			Max: image.Pt(x+dotRadius, y+dotRadius),
		}
		c := color.NRGBA{R: col.R, G: col.G, B: col.B, A: alpha}
		paint.FillShape(gtx.Ops, c, dot.Op(gtx.Ops))
	}

	return layout.Dimensions{Size: image.Pt(size, size)}
}
