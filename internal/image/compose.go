package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Line is one card row of a section: count, name and an optional thumbnail.
type Line struct {
	Count int
	Name  string
	Thumb image.Image
}

// Section is a titled block of lines, e.g. "Avatar (12)".
type Section struct {
	Header string
	Lines  []Line
}

// Sheet describes a printable deck list: a title, columns of sections and an
// optional QR code drawn in the top-right corner.
type Sheet struct {
	Title   string
	Columns [][]Section
	QR      image.Image
}

const (
	margin      = 48
	columnWidth = 620
	columnGap   = 32
	headerH     = 140
	sectionH    = 40
	lineH       = 72
	thumbW      = 48
	thumbH      = 67
	qrSize      = 120
)

var (
	background = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
	foreground = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	accent     = color.NRGBA{R: 0xf0, G: 0xc0, B: 0x40, A: 0xff}
	thumbEmpty = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
)

// ComposeDeckImage draws the sheet on a dark canvas sized to its tallest column.
func ComposeDeckImage(s Sheet) *image.NRGBA {
	cols := len(s.Columns)
	if cols == 0 {
		cols = 1
	}
	W := 2*margin + cols*columnWidth + (cols-1)*columnGap
	H := headerH + margin
	for _, col := range s.Columns {
		if h := columnHeight(col); headerH+h+margin > H {
			H = headerH + h + margin
		}
	}
	canvas := imaging.New(W, H, background)

	title := s.Title
	if title == "" {
		title = "Deck List"
	}
	drawText(canvas, title, margin, margin+13, accent)

	if s.QR != nil {
		q := imaging.Resize(s.QR, qrSize, qrSize, imaging.NearestNeighbor)
		canvas = imaging.Paste(canvas, q, image.Pt(W-margin-qrSize, 8))
	}

	for i, col := range s.Columns {
		x := margin + i*(columnWidth+columnGap)
		y := headerH
		for _, sec := range col {
			if len(sec.Lines) == 0 {
				continue
			}
			drawText(canvas, sec.Header, x, y+24, accent)
			y += sectionH
			for _, l := range sec.Lines {
				canvas = drawLine(canvas, l, x, y)
				y += lineH
			}
		}
	}
	return canvas
}

func columnHeight(col []Section) int {
	h := 0
	for _, sec := range col {
		if len(sec.Lines) == 0 {
			continue
		}
		h += sectionH + len(sec.Lines)*lineH
	}
	return h
}

func drawLine(canvas *image.NRGBA, l Line, x, y int) *image.NRGBA {
	var thumb image.Image
	if l.Thumb != nil {
		thumb = imaging.Fill(l.Thumb, thumbW, thumbH, imaging.Center, imaging.Lanczos)
	} else {
		thumb = imaging.New(thumbW, thumbH, thumbEmpty)
	}
	canvas = imaging.Paste(canvas, thumb, image.Pt(x, y))
	textY := y + thumbH/2 + 5
	drawText(canvas, "x"+strconv.Itoa(l.Count), x+thumbW+12, textY, accent)
	drawText(canvas, l.Name, x+thumbW+56, textY, foreground)
	return canvas
}

func drawText(dst *image.NRGBA, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
