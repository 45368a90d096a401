package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/actuclaim/actuclaim/internal/tui/tuistyles"
)

// SweepChart plots one series of dollar values against ordered labels,
// such as total damages across a discount-rate sweep.
type SweepChart struct {
	Title  string
	Points []float64
	Labels []string
	// Marker is the index drawn with a distinct glyph, or -1.
	Marker int
	Width  int
	Height int
}

const yAxisWidth = 10

// NewSweepChart creates an empty chart
func NewSweepChart(title string) *SweepChart {
	return &SweepChart{Title: title, Marker: -1, Width: 60, Height: 10}
}

// WithPoints sets the values and their x labels
func (c *SweepChart) WithPoints(points []float64, labels []string) *SweepChart {
	c.Points = points
	c.Labels = labels
	return c
}

// WithMarker highlights the point at index i
func (c *SweepChart) WithMarker(i int) *SweepChart {
	c.Marker = i
	return c
}

// WithSize sets the chart dimensions
func (c *SweepChart) WithSize(width, height int) *SweepChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the chart with a y axis
func (c *SweepChart) Render() string {
	if len(c.Points) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	if c.Height < 2 {
		c.Height = 2
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.TitleStyle.Render(c.Title))
		b.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	chartWidth := c.Width - yAxisWidth - 3
	if chartWidth < 2 {
		chartWidth = 2
	}
	grid := c.plot(lo, hi, chartWidth)

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for i, row := range grid {
		y := hi - float64(i)/float64(c.Height-1)*(hi-lo)
		b.WriteString(axis.Render(formatChartValue(y)))
		b.WriteString(" │ ")
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorChartLine).Render(string(row)))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", chartWidth))

	if len(c.Labels) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", yAxisWidth+3))
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(c.Labels[0]))
		last := c.Labels[len(c.Labels)-1]
		if len(c.Labels) > 1 && chartWidth > len(c.Labels[0])+len(last) {
			b.WriteString(strings.Repeat(" ", chartWidth-len(c.Labels[0])-len(last)))
			b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(last))
		}
	}
	return b.String()
}

// bounds returns the padded value range. A flat series gets a ±1 band.
func (c *SweepChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range c.Points {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad
}

func (c *SweepChart) plot(lo, hi float64, width int) [][]rune {
	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	pos := func(i int) (int, int) {
		x := 0
		if len(c.Points) > 1 {
			x = int(float64(i) / float64(len(c.Points)-1) * float64(width-1))
		}
		y := c.Height - 1 - int((c.Points[i]-lo)/(hi-lo)*float64(c.Height-1))
		return x, y
	}

	for i := range c.Points {
		x, y := pos(i)
		if i > 0 {
			px, py := pos(i - 1)
			drawLine(grid, px, py, x, y, '·')
		}
		glyph := '●'
		if i == c.Marker {
			glyph = '◆'
		}
		if y >= 0 && y < c.Height && x >= 0 && x < width {
			grid[y][x] = glyph
		}
	}
	return grid
}

// drawLine joins two cells with Bresenham's algorithm without overwriting points.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) && grid[y0][x0] == ' ' {
			grid[y0][x0] = char
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func formatChartValue(v float64) string {
	switch {
	case math.Abs(v) >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case math.Abs(v) >= 1000:
		return fmt.Sprintf("$%.0fK", v/1000)
	}
	return fmt.Sprintf("$%.0f", v)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
