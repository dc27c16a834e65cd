package dashboard

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/a-h/templ"
	"github.com/kaireichart/flight-delay-predictor/risk"
)

type GaugeStep struct {
	From, To float64
	Color    string
}

// onTimeSteps shade the on-time gauge by Band3 applied to 100 - onTime:
// high below 60, moderate up to 90, low from 90.
var onTimeSteps = []GaugeStep{
	{0, 60, "#fce4e4"},
	{60, 90, "#fff8e1"},
	{90, 100, "#e8f5e9"},
}

func riskSteps() []GaugeStep {
	steps := make([]GaugeStep, len(risk.GaugeSteps))
	for i, s := range risk.GaugeSteps {
		steps[i] = GaugeStep{s.From, s.To, s.Color}
	}
	return steps
}

const (
	gaugeCX     = 120.0
	gaugeCY     = 120.0
	gaugeRadius = 95.0
)

// gaugePoint maps a 0..100 value onto the upper half circle, 0 on the left.
func gaugePoint(v float64) (x, y float64) {
	v = risk.Clamp(v)
	theta := math.Pi * (1 - v/100)
	return gaugeCX + gaugeRadius*math.Cos(theta), gaugeCY - gaugeRadius*math.Sin(theta)
}

func arcPath(from, to float64) string {
	x1, y1 := gaugePoint(from)
	x2, y2 := gaugePoint(to)
	return fmt.Sprintf("M %.2f %.2f A %.0f %.0f 0 0 1 %.2f %.2f", x1, y1, gaugeRadius, gaugeRadius, x2, y2)
}

// Gauge draws a half circle gauge with shaded steps and a bar up to value.
func Gauge(value float64, color string, steps []GaugeStep) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprint(w, `<svg class="gauge" viewBox="0 0 240 150" role="img" xmlns="http://www.w3.org/2000/svg">`); err != nil {
			return err
		}
		for _, s := range steps {
			if _, err := fmt.Fprintf(w, `<path d="%s" stroke="%s" stroke-width="34" fill="none"/>`, arcPath(s.From, s.To), s.Color); err != nil {
				return err
			}
		}
		if value > 0 {
			if _, err := fmt.Fprintf(w, `<path class="gauge-bar" d="%s" stroke="%s" stroke-width="14" fill="none"/>`, arcPath(0, value), color); err != nil {
				return err
			}
		}
		for _, tick := range []float64{0, 25, 50, 75, 100} {
			x, y := gaugePoint(tick)
			if _, err := fmt.Fprintf(w, `<text x="%.1f" y="%.1f" font-size="10" text-anchor="middle">%.0f</text>`, x, y+24, tick); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<title>%.1f</title></svg>`, risk.Clamp(value))
		return err
	})
}
