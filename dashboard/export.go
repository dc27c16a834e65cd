package dashboard

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/kaireichart/flight-delay-predictor/events"
	"github.com/kaireichart/flight-delay-predictor/flight_data"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Sheet1"

// ExportAnalysis writes the result of a flight to an XLSX workbook with a
// summary block, the penalty breakdown and the raw weather readings.
func ExportAnalysis(a Analysis, names flight_data.AirportNames) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	rec := a.Record
	w := rec.Weather
	rows := [][]any{
		{"Field", "Value"},
		{"Flight", rec.FlightNumber},
		{"Source", rec.Source},
		{"Airline", rec.Airline},
		{"Origin", AirportDisplay(names, rec.Origin)},
		{"Destination", AirportDisplay(names, rec.Dest)},
		{"Date", rec.Date},
		{"Departs", FormatDepTime(rec.DepTime)},
		{"Distance (mi)", rec.Distance},
		{a.HeadlineLabel, round1(a.Headline)},
		{"Heuristic risk score", round1(a.Heuristic)},
		{"Status", a.Band.Title},
		{},
		{"Penalty", "Points"},
	}
	for _, p := range a.Breakdown {
		rows = append(rows, []any{p.Name, p.Points})
	}
	rows = append(rows,
		[]any{},
		[]any{"Weather", "Value"},
		[]any{"Average temperature (°C)", round1(w.Tavg)},
		[]any{"Precipitation (mm)", round1(w.Prcp)},
		[]any{"Snow (mm)", round1(w.Snow)},
		[]any{"Wind speed (km/h)", round1(w.Wspd)},
		[]any{"Pressure (hPa)", round1(w.Pres)},
	)

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
		if len(row) == 2 && (row[0] == "Field" || row[0] == "Penalty" || row[0] == "Weather") {
			start, _ := excelize.CoordinatesToCellName(1, i+1)
			end, _ := excelize.CoordinatesToCellName(2, i+1)
			if err := f.SetCellStyle(exportSheet, start, end, bold); err != nil {
				return nil, fmt.Errorf("failed to style header: %w", err)
			}
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "A", 32); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(exportSheet, "B", "B", 40); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok {
		http.Error(w, "No session", http.StatusBadRequest)
		return
	}
	snap := sess.Snapshot()
	if snap.State != StateResult || snap.Selected == nil {
		http.Error(w, "No result to export", http.StatusBadRequest)
		return
	}

	buf, err := ExportAnalysis(Analyze(*snap.Selected, snap.OnTime), s.deps.Airports)
	if err != nil {
		s.log.Error("export", zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to export: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_risk_report.xlsx", snap.Selected.FlightNumber)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warn("write export", zap.Error(err))
		return
	}

	events.LogEvent(events.Event{Type: events.TypeExport, Flight: snap.Selected.FlightNumber, Timestamp: time.Now()})
}
