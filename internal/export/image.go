package export

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"measuremate/internal/measure"
	"measuremate/pkg/colorutil"
	"measuremate/pkg/geometry"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/tiff"
)

// Options controls how the labelled image is rendered. Colors mirror the
// preference values; per-measurement style overrides take precedence.
type Options struct {
	// Scale multiplies image pixels into output pixels, normally the
	// view's effective scale so the export matches the on-screen view.
	Scale float64

	CalibrationLineColor  color.RGBA
	CalibrationLineWidth  float64
	MeasurementLineColor  color.RGBA
	MeasurementPointColor color.RGBA
	MeasurementTextColor  color.RGBA
	MeasurementLineWidth  float64
	PointSize             float64

	ShowLabels      bool
	LabelBackground bool
	LabelBGColor    color.RGBA

	ShowRulers   bool
	RulerColor   color.RGBA
	RulerBGColor color.RGBA

	Watermark bool
}

// DefaultOptions returns the stock rendering options.
func DefaultOptions() Options {
	return Options{
		Scale:                 1.0,
		CalibrationLineColor:  colorutil.Red,
		CalibrationLineWidth:  2,
		MeasurementLineColor:  colorutil.Blue,
		MeasurementPointColor: colorutil.Blue,
		MeasurementTextColor:  colorutil.Blue,
		MeasurementLineWidth:  2,
		PointSize:             4,
		ShowLabels:            true,
		LabelBackground:       true,
		LabelBGColor:          colorutil.White,
		ShowRulers:            false,
		RulerColor:            colorutil.Black,
		RulerBGColor:          color.RGBA{R: 224, G: 224, B: 224, A: 255},
		Watermark:             true,
	}
}

// Render burns the calibration line, every measurement, optional labels and
// rulers, and a watermark into a scaled copy of the image. The session is
// read only. Labels and rulers are skipped when no calibration is active;
// the geometry is still drawn.
func Render(src image.Image, s *measure.Session, opts Options) (image.Image, error) {
	if src == nil {
		return nil, &measure.InvalidStateError{Reason: "no image loaded"}
	}
	if opts.Scale <= 0 {
		opts.Scale = 1.0
	}

	bounds := src.Bounds()
	w := int(math.Round(float64(bounds.Dx()) * opts.Scale))
	h := int(math.Round(float64(bounds.Dy()) * opts.Scale))
	if w < 1 || h < 1 {
		return nil, &measure.InvalidStateError{Reason: "export size is empty"}
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, xdraw.Over, nil)

	dc := gg.NewContextForImage(scaled)
	dc.SetFontFace(basicfont.Face7x13)

	if cal := s.Calibration; cal != nil {
		drawSegment(dc, cal.ReferenceStart, cal.ReferenceEnd, opts.Scale,
			opts.CalibrationLineColor, opts.CalibrationLineColor,
			opts.CalibrationLineWidth, opts.PointSize)
	}

	for _, m := range s.Log.Items() {
		lineColor := opts.MeasurementLineColor
		pointColor := opts.MeasurementPointColor
		textColor := opts.MeasurementTextColor
		lineWidth := opts.MeasurementLineWidth
		if st := m.Style; st != nil {
			lineColor = colorutil.ParseHex(st.LineColor, lineColor)
			pointColor = colorutil.ParseHex(st.PointColor, pointColor)
			textColor = colorutil.ParseHex(st.TextColor, textColor)
			if st.LineWidth > 0 {
				lineWidth = st.LineWidth
			}
		}

		drawSegment(dc, m.Start, m.End, opts.Scale, lineColor, pointColor, lineWidth, opts.PointSize)

		if opts.ShowLabels && s.Calibrated() {
			val, err := m.Value(s.Calibration, s.DisplayUnit)
			if err != nil {
				return nil, err
			}
			label := fmt.Sprintf("%.2f %s", val, s.DisplayUnit.Abbrev())
			mid := m.Start.Midpoint(m.End).Scale(opts.Scale)
			drawLabel(dc, label, mid.X, mid.Y-10, textColor, opts.LabelBackground, opts.LabelBGColor)
		}
	}

	if opts.ShowRulers && s.Calibrated() {
		drawRulers(dc, w, h, s, opts)
	}

	if opts.Watermark {
		info := fmt.Sprintf("MeasureMate | %s", time.Now().Format("2006-01-02 15:04"))
		if s.Calibrated() {
			info += fmt.Sprintf(" | Unit: %s | Zoom: %d%%",
				s.Calibration.DeclaredUnit, int(s.View.Zoom*100))
		}
		drawLabel(dc, info, 10+textWidth(dc, info)/2, float64(h)-14, colorutil.Black, true, colorutil.White)
	}

	return dc.Image(), nil
}

// drawSegment draws one measurement or calibration line with endpoint dots,
// scaling image coordinates into output coordinates.
func drawSegment(dc *gg.Context, start, end geometry.Point2D, scale float64,
	lineColor, pointColor color.RGBA, width, pointSize float64) {

	p1 := start.Scale(scale)
	p2 := end.Scale(scale)

	dc.SetColor(lineColor)
	dc.SetLineWidth(width)
	dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	dc.Stroke()

	dc.SetColor(pointColor)
	dc.DrawCircle(p1.X, p1.Y, pointSize)
	dc.Fill()
	dc.DrawCircle(p2.X, p2.Y, pointSize)
	dc.Fill()
}

// drawLabel draws centered text with an optional padded background box.
func drawLabel(dc *gg.Context, text string, x, y float64, textColor color.RGBA, background bool, bgColor color.RGBA) {
	if background {
		tw, th := dc.MeasureString(text)
		pad := 2.0
		dc.SetColor(bgColor)
		dc.DrawRectangle(x-tw/2-pad, y-th/2-pad, tw+2*pad, th+2*pad)
		dc.Fill()
	}
	dc.SetColor(textColor)
	dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

func textWidth(dc *gg.Context, text string) float64 {
	w, _ := dc.MeasureString(text)
	return w
}

// drawRulers draws calibrated tick rulers along the top and left edges,
// with nice round declared-unit values per tick.
func drawRulers(dc *gg.Context, w, h int, s *measure.Session, opts Options) {
	const rulerSize = 30.0

	// Output pixels per declared unit.
	ppu := s.Calibration.PixelsPerUnit * opts.Scale
	stepUnits := measure.TickStep(ppu, 100)
	step := stepUnits * ppu
	if step < 4 {
		return
	}

	dc.SetColor(opts.RulerBGColor)
	dc.DrawRectangle(0, 0, float64(w), rulerSize)
	dc.Fill()
	dc.DrawRectangle(0, 0, rulerSize, float64(h))
	dc.Fill()

	dc.SetColor(opts.RulerColor)
	dc.SetLineWidth(1)

	unit := s.Calibration.DeclaredUnit.Abbrev()
	for i := 0; ; i++ {
		x := float64(i) * step
		if x > float64(w) {
			break
		}
		dc.DrawLine(x, rulerSize-8, x, rulerSize)
		dc.Stroke()
		if i > 0 {
			label := fmt.Sprintf("%.4g%s", float64(i)*stepUnits, unit)
			dc.DrawStringAnchored(label, x, rulerSize-16, 0.5, 0.5)
		}
	}
	for i := 1; ; i++ {
		y := float64(i) * step
		if y > float64(h) {
			break
		}
		dc.DrawLine(rulerSize-8, y, rulerSize, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%.4g", float64(i)*stepUnits), rulerSize-18, y, 0.5, 0.5)
	}
}

// SaveImage encodes img to path, picking the format from the extension.
// PNG, JPEG, TIFF have explicit encoders; BMP falls through to x/image.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	case ".tif", ".tiff":
		return tiff.Encode(f, img, nil)
	case ".bmp":
		return bmp.Encode(f, img)
	default:
		return png.Encode(f, img)
	}
}
