// Package scorecard renders score summaries as downloadable PNG cards.
// It consumes only read-only score snapshots.
package scorecard

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kelsine/pitchmatch/game"
)

var (
	cardBG     = color.RGBA{0xFB, 0xFB, 0xFC, 0xFF}
	cardFrame  = color.RGBA{0xD9, 0xD9, 0xDC, 0xFF}
	cardHeader = color.RGBA{0x11, 0x11, 0x11, 0xFF}
	cardText   = color.RGBA{0x11, 0x11, 0x11, 0xFF}
	cardFaint  = color.RGBA{0x59, 0x59, 0x59, 0xFF}
	headerText = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

const footer = "Downloaded from the Pitch Matching Test"

// WriteScoreCard renders the session summary card as PNG.
func WriteScoreCard(w io.Writer, snap game.Snapshot) error {
	const width, height = 560, 500
	img := newCardBase(width, height, "Pitch Matching Test - Score Card")

	drawText(img, 28, 130, cardText, "Summary")

	lines := []string{
		fmt.Sprintf("Name: %s", snap.Player),
		fmt.Sprintf("Game mode: %s", snap.Mode),
		fmt.Sprintf("Questions asked: %d", snap.Asked),
		fmt.Sprintf("Answers correct: %d", snap.Correct),
		fmt.Sprintf("Correct in a row: %d", snap.Streak),
		fmt.Sprintf("Longest correct streak: %d", snap.Longest),
		fmt.Sprintf("Percentage correct: %v%%", snap.Percent),
	}

	y := 130 + 44
	for _, ln := range lines {
		drawText(img, 28, y, cardText, ln)
		y += 34
	}

	drawText(img, 28, height-36, cardFaint, footer)
	return png.Encode(w, img)
}

// WriteRecord renders the new-longest-streak card as PNG.
func WriteRecord(w io.Writer, streak int, player string) error {
	const width, height = 980, 420
	img := newCardBase(width, height, "Pitch Matching Test - Record")

	drawText(img, 28, 142, cardText, fmt.Sprintf("%d correct in a row!", streak))

	msg := fmt.Sprintf("%s just scored %d correct answers in a row on the pitch matching test!", player, streak)
	drawWrapped(img, 28, 200, width-56, 20, cardText, msg)

	drawText(img, 28, height-36, cardFaint, footer)
	return png.Encode(w, img)
}

// newCardBase paints the shared card background, frame, and title band.
func newCardBase(width, height int, title string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	draw.Draw(img, img.Bounds(), image.NewUniform(cardBG), image.Point{}, draw.Src)
	strokeRect(img, 8, 8, width-16, height-16, 6, cardFrame)
	fillRect(img, 8, 8, width-16, 74, cardHeader)

	drawText(img, 28, 52, headerText, title)
	return img
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.Color) {
	draw.Draw(img, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(img *image.RGBA, x, y, w, h, lw int, c color.Color) {
	fillRect(img, x, y, w, lw, c)
	fillRect(img, x, y+h-lw, w, lw, c)
	fillRect(img, x, y, lw, h, c)
	fillRect(img, x+w-lw, y, lw, h, c)
}

func drawText(img *image.RGBA, x, y int, c color.Color, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawWrapped draws s word-wrapped to maxWidth pixels, advancing
// lineHeight per line.
func drawWrapped(img *image.RGBA, x, y, maxWidth, lineHeight int, c color.Color, s string) {
	face := basicfont.Face7x13
	var line string
	for _, word := range strings.Fields(s) {
		test := word
		if line != "" {
			test = line + " " + word
		}
		if font.MeasureString(face, test).Ceil() > maxWidth && line != "" {
			drawText(img, x, y, c, line)
			line = word
			y += lineHeight
		} else {
			line = test
		}
	}
	if line != "" {
		drawText(img, x, y, c, line)
	}
}
