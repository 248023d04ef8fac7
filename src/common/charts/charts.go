// Package charts renders urgency distributions as PNG and interactive HTML.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/jack-barr3tt/gbr-priority/src/common/ranking"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	XAxisLabel = "Urgency Score"
	YAxisLabel = "Train Count"
)

var ErrNoBins = errors.New("histogram has no bins")

// BinLabels returns the "lower-upper" label of every bin.
func BinLabels(hist ranking.Histogram) []string {
	labels := make([]string, len(hist.Bins))
	for i, b := range hist.Bins {
		labels[i] = fmt.Sprintf("%.1f-%.1f", b.Lower, b.Upper)
	}
	return labels
}

// HistogramPNG draws hist as a bar chart and writes it to w as PNG.
func HistogramPNG(w io.Writer, hist ranking.Histogram, title string) error {
	if len(hist.Bins) == 0 {
		return ErrNoBins
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = XAxisLabel
	p.Y.Label.Text = YAxisLabel

	values := make(plotter.Values, len(hist.Bins))
	for i, b := range hist.Bins {
		values[i] = float64(b.Count)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	p.Add(bars, plotter.NewGrid())
	p.NominalX(BinLabels(hist)...)
	p.X.Tick.Label.Rotation = 0.6

	wt, err := p.WriterTo(10*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// HistogramHTML renders hist as a standalone go-echarts page.
func HistogramHTML(w io.Writer, hist ranking.Histogram, title string) error {
	if len(hist.Bins) == 0 {
		return ErrNoBins
	}

	data := make([]opts.BarData, len(hist.Bins))
	for i, b := range hist.Bins {
		data[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: XAxisLabel, NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: YAxisLabel, NameLocation: "middle", NameGap: 40}),
	)
	bar.SetXAxis(BinLabels(hist)).
		AddSeries("trains", data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	return bar.Render(w)
}
