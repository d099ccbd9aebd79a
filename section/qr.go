package section

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/lixenwraith/termfolio/render"
)

// QR is a pre-encoded code drawn with half blocks, two modules per cell
type QR struct {
	content string
	bitmap  [][]bool
}

// NewQR encodes content at low recovery to keep the symbol small
func NewQR(content string) (*QR, error) {
	code, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	code.DisableBorder = true
	return &QR{content: content, bitmap: code.Bitmap()}, nil
}

// Content returns the encoded text
func (q *QR) Content() string { return q.content }

// Modules returns the symbol width in modules
func (q *QR) Modules() int { return len(q.bitmap) }

// Size returns the cell footprint including a one-module quiet zone
func (q *QR) Size() (w, h int) {
	n := len(q.bitmap) + 2
	return n, (n + 1) / 2
}

// dark reports a set module; coordinates include the quiet zone
func (q *QR) dark(x, y int) bool {
	x, y = x-1, y-1
	if y < 0 || y >= len(q.bitmap) || x < 0 || x >= len(q.bitmap[y]) {
		return false
	}
	return q.bitmap[y][x]
}

// Draw renders at (x, y), dark modules on a light ground
func (q *QR) Draw(c *render.Canvas, x, y int) {
	light := tcell.NewRGBColor(255, 255, 255)
	ink := tcell.NewRGBColor(0, 0, 0)
	w, h := q.Size()
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			top, bottom := light, light
			if q.dark(col, 2*row) {
				top = ink
			}
			if q.dark(col, 2*row+1) {
				bottom = ink
			}
			c.Set(x+col, y+row, '▀', tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
}
