package certificate

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
)

const sealSize = 400

var (
	sealFill   = color.NRGBA{R: 0x1f, G: 0x4e, B: 0x79, A: 0xff}
	sealBorder = color.NRGBA{R: 0xd4, G: 0xaf, B: 0x37, A: 0xff}
)

// RenderSeal draws a round badge with the score as a PNG.
func RenderSeal(score int) ([]byte, error) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	dc := gg.NewContext(sealSize, sealSize)
	c := float64(sealSize) / 2

	dc.DrawCircle(c, c, c-4)
	dc.SetColor(sealBorder)
	dc.Fill()

	dc.DrawCircle(c, c, c-24)
	dc.SetColor(sealFill)
	dc.Fill()

	dc.SetColor(color.White)
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 110}))
	dc.DrawStringAnchored(strconv.Itoa(score)+"%", c, c-10, 0.5, 0.5)

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 40}))
	dc.DrawStringAnchored("CERTIFIED", c, c+90, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
