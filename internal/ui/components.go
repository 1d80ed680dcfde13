package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

const gaugeWidth = 20

// volumeGauge eases toward the player's volume on every detail tick.
type volumeGauge struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newVolumeGauge(initial float64) volumeGauge {
	return volumeGauge{
		spring: harmonica.NewSpring(harmonica.FPS(int(1000/detailPollInterval.Milliseconds())), 8.0, 1.0),
		pos:    initial,
	}
}

func (g volumeGauge) step(target float64) volumeGauge {
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, target)
	if math.Abs(g.pos-target) < 0.001 && math.Abs(g.vel) < 0.001 {
		g.pos, g.vel = target, 0
	}
	return g
}

func (g volumeGauge) view(volume float64) string {
	return renderBar(g.pos, gaugeWidth) + " " + renderVolumePercent(volume)
}

func renderBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(math.Round(ratio * float64(width)))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(math.Round(vol*100)))
}
