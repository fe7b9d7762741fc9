// Package caption lays out wrapped, label-prefixed caption text inside a
// bounded width, anchored to the bottom-right corner of an image.
package caption

import "strings"

const (
	// Padding is the fixed layout margin, in pixels.
	Padding = 10
	// ShadowOffset is how far the shadow copy of each line is displaced.
	ShadowOffset = 2
)

// Metrics measures rendered text. It abstracts the font backend so layout is
// testable without one.
type Metrics interface {
	Measure(text string) (width, height int)
}

// Line is one rendered caption line with its measured extent.
type Line struct {
	Text   string
	Width  int
	Height int
}

// Block is a laid-out caption: the wrapped lines in top-to-bottom render
// order and the top-left anchor of the first line.
type Block struct {
	Lines []Line
	X, Y  int
}

// UsableWidth returns the horizontal space available for caption text.
func UsableWidth(imageWidth int) int {
	return imageWidth - 4*Padding
}

// Layout wraps the caption text into the image width and computes the
// block anchor. Logical lines of the form "label: content" keep the label on
// the first wrapped sub-line only; subsequent sub-lines stand alone.
func Layout(text string, imageWidth, imageHeight int, m Metrics) Block {
	usable := UsableWidth(imageWidth)

	var lines []Line
	for _, logical := range strings.Split(text, "\n") {
		if logical == "" {
			continue
		}
		if idx := strings.Index(logical, ":"); idx >= 0 {
			label := logical[:idx]
			content := strings.TrimSpace(logical[idx+1:])
			labelWidth, _ := m.Measure(label + ": ")

			wrapped := wrap(content, usable-labelWidth, m)
			if len(wrapped) == 0 {
				wrapped = []string{""}
			}
			lines = append(lines, measure(label+":"+wrapped[0], m))
			for _, sub := range wrapped[1:] {
				lines = append(lines, measure(sub, m))
			}
		} else {
			for _, sub := range wrap(logical, usable, m) {
				lines = append(lines, measure(sub, m))
			}
		}
	}

	total := 0
	for _, l := range lines {
		total += l.Height
	}
	if len(lines) > 1 {
		total += Padding * (len(lines) - 1)
	}

	return Block{
		Lines: lines,
		X:     imageWidth - usable - Padding,
		Y:     imageHeight - total - 2*Padding,
	}
}

// wrap greedily packs words into lines no wider than maxWidth. A single word
// wider than maxWidth is placed alone, untruncated.
func wrap(text string, maxWidth int, m Metrics) []string {
	var lines []string
	var current []string

	for _, word := range strings.Fields(text) {
		tentative := word
		if len(current) > 0 {
			tentative = strings.Join(current, " ") + " " + word
		}
		if w, _ := m.Measure(tentative); w <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

func measure(text string, m Metrics) Line {
	w, h := m.Measure(text)
	return Line{Text: text, Width: w, Height: h}
}
