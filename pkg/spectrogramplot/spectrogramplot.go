// Package spectrogramplot renders dB spectrograms as heat maps.
package spectrogramplot

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/spectralgate/pkg/spectralgate"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	paletteColors = 64

	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Heatmap is a spectrogram on a time (seconds) × frequency (Hz) grid.
type Heatmap struct {
	Title       string
	DB          *spectralgate.Matrix
	Diagnostics spectralgate.Diagnostics
}

var _ plotter.GridXYZ = Heatmap{}

func (h Heatmap) Dims() (c, r int) {
	return h.DB.Frames, h.DB.Bins
}

func (h Heatmap) Z(c, r int) float64 {
	return h.DB.At(r, c)
}

func (h Heatmap) X(c int) float64 {
	return h.Diagnostics.FrameTime(c)
}

func (h Heatmap) Y(r int) float64 {
	return h.Diagnostics.BinFrequency(r)
}

// Save renders the heat map into an image file; the format is chosen by the
// extension of path (e.g. ".png").
func Save(path string, h Heatmap) error {
	if h.DB == nil || h.DB.Frames < 2 || h.DB.Bins < 2 {
		return fmt.Errorf("the spectrogram is too small to be plotted")
	}

	p := plot.New()
	p.Title.Text = h.Title
	p.X.Label.Text = "time, s"
	p.Y.Label.Text = "frequency, Hz"
	p.Add(plotter.NewHeatMap(h, palette.Heat(paletteColors, 1)))

	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("unable to save the plot to '%s': %w", path, err)
	}
	return nil
}

// SaveDiagnostics renders the original and the denoised spectrograms into
// <prefix>original.png and <prefix>denoised.png and returns the paths.
func SaveDiagnostics(ctx context.Context, prefix string, diag spectralgate.Diagnostics) ([]string, error) {
	var paths []string
	for _, item := range []struct {
		name string
		db   *spectralgate.Matrix
	}{
		{"original", diag.Original},
		{"denoised", diag.Denoised},
	} {
		path := prefix + item.name + ".png"
		err := Save(path, Heatmap{
			Title:       fmt.Sprintf("%s spectrogram, dB", item.name),
			DB:          item.db,
			Diagnostics: diag,
		})
		if err != nil {
			return paths, err
		}
		logger.Debugf(ctx, "saved the %s spectrogram to '%s'", item.name, path)
		paths = append(paths, path)
	}
	return paths, nil
}
