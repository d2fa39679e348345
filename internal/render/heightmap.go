// Package render turns decoded heightmap messages into PNG images the
// station UI can serve. It is a consumer of the wire codec: it never parses
// payload bytes itself.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/groundlink/internal/wire"
)

// paletteColours is the number of bands in the rendered height palette.
const paletteColours = 64

// RasterStats summarises the height samples of one raster. The stats feed
// the station's state endpoint alongside the rendered image.
type RasterStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Stats computes summary statistics over the raster's height bytes. An
// empty raster yields zero stats.
func Stats(hm *wire.Heightmap) RasterStats {
	if len(hm.Raster) == 0 {
		return RasterStats{}
	}
	samples := make([]float64, len(hm.Raster))
	for i, b := range hm.Raster {
		samples[i] = float64(b)
	}

	s := RasterStats{Min: samples[0], Max: samples[0]}
	for _, v := range samples {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = stat.Mean(samples, nil)
	s.StdDev = stat.StdDev(samples, nil)
	return s
}

// heightGrid adapts a decoded heightmap raster to the plotter grid
// interface. Grid coordinates are world units: cell index times the
// message's unit size, offset by the map origin.
type heightGrid struct {
	hm *wire.Heightmap
}

func (g heightGrid) Dims() (int, int) { return g.hm.XSamples, g.hm.YSamples }

func (g heightGrid) Z(c, r int) float64 {
	return float64(g.hm.Raster[r*g.hm.XSamples+c])
}

func (g heightGrid) X(c int) float64 {
	return float64(g.hm.X) + float64(c)*float64(g.hm.UnitSize)
}

func (g heightGrid) Y(r int) float64 {
	return float64(g.hm.Y) + float64(r)*float64(g.hm.UnitSize)
}

// Renderer writes heightmap PNGs into an output directory, tracking the most
// recent image so the HTTP layer can serve "the latest map" without listing
// the directory.
type Renderer struct {
	outputDir string
	latest    string
}

// NewRenderer creates a renderer writing into outputDir, creating the
// directory if needed.
func NewRenderer(outputDir string) (*Renderer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("render: cannot create output dir: %w", err)
	}
	return &Renderer{outputDir: outputDir}, nil
}

// Latest returns the path of the most recently rendered image, or "" if
// nothing has been rendered yet.
func (r *Renderer) Latest() string { return r.latest }

// Render draws the heightmap as a heat-style raster plot and writes it to a
// timestamped PNG under the output directory. It returns the written path.
func (r *Renderer) Render(hm *wire.Heightmap) (string, error) {
	path := filepath.Join(r.outputDir, fmt.Sprintf("hmap_%d.png", time.Now().UnixNano()))
	if err := RenderTo(hm, path); err != nil {
		return "", err
	}
	r.latest = path
	return path, nil
}

// RenderTo draws the heightmap into the named PNG file.
func RenderTo(hm *wire.Heightmap, path string) error {
	if len(hm.Raster) != hm.XSamples*hm.YSamples {
		return fmt.Errorf("render: raster has %d bytes, want %d", len(hm.Raster), hm.XSamples*hm.YSamples)
	}

	heat := plotter.NewHeatMap(heightGrid{hm: hm}, palette.Heat(paletteColours, 1))

	p := plot.New()
	p.Title.Text = fmt.Sprintf("heightmap %dx%d @ (%d,%d)", hm.XSamples, hm.YSamples, hm.X, hm.Y)
	p.X.Label.Text = "x (world units)"
	p.Y.Label.Text = "y (world units)"
	p.Add(heat)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("render: cannot save %s: %w", path, err)
	}
	return nil
}
