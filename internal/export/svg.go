package export

import (
	"fmt"
	"strings"
)

// ProfileToSVG renders a height snapshot as an SVG polyline: x is the
// grid index, y the surface displacement, autoscaled to the data.
func ProfileToSVG(h []float64, width, height int, strokeColor string) string {
	if len(h) < 2 {
		return ""
	}
	if strokeColor == "" {
		strokeColor = "#2288ee"
	}

	minY, maxY := h[0], h[0]
	for _, v := range h {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}

	pad := 10.0
	plotW := float64(width) - 2*pad
	plotH := float64(height) - 2*pad

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a14"/>
`, width, height, width, height))

	// Rest-water line at y=0 when it falls inside the data range.
	if minY <= 0 && maxY >= 0 {
		zy := pad + plotH*(maxY-0)/rangeY
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333344" stroke-width="1"/>
`, pad, zy, pad+plotW, zy))
	}

	sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, strokeColor))
	for i, v := range h {
		x := pad + plotW*float64(i)/float64(len(h)-1)
		y := pad + plotH*(maxY-v)/rangeY
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}
