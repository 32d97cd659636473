package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/boxdrop/internal/sim"
)

type ExportData struct {
	Meta       RunMetadata        `json:"meta"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Frames     [][]float64        `json:"frames"`
	PairCounts []int              `json:"pair_counts"`
	Metrics    map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		Meta:       *meta,
		Steps:      len(result.Times),
		Times:      result.Times,
		Frames:     result.Frames,
		PairCounts: result.PairCounts,
		Metrics:    meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// BodySeries pulls one value (0=x, 1=y, 2=vx, 3=vy) of one body out of
// every frame.
func BodySeries(result *sim.Result, body, field int) []float64 {
	idx := body*sim.FrameWidth + field
	series := make([]float64, 0, len(result.Frames))
	for _, f := range result.Frames {
		if idx < len(f) {
			series = append(series, f[idx])
		}
	}
	return series
}
