package render

import (
	"context"
	"time"

	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	pixelCount    = stats.Int64("prism/pixels", "Primary rays shaded", stats.UnitDimensionless)
	renderLatency = stats.Float64("prism/render_latency", "Wall time of a complete render", stats.UnitMilliseconds)

	labelKey = tag.MustNewKey("label")
)

// Views returns the metric views render records into.  Register them with
// view.Register to export them.
func Views() []*view.View {
	return []*view.View{
		{
			Name:        "prism/pixels",
			Description: "Primary rays shaded",
			TagKeys:     []tag.Key{labelKey},
			Measure:     pixelCount,
			Aggregation: view.Sum(),
		},
		{
			Name:        "prism/render_latency",
			Description: "Wall time of a complete render",
			TagKeys:     []tag.Key{labelKey},
			Measure:     renderLatency,
			Aggregation: view.Distribution(100, 500, 1000, 5000, 10000, 30000, 60000, 300000),
		},
	}
}

func recordRender(ctx context.Context, label string, rays int, elapsed time.Duration) {
	err := stats.RecordWithOptions(
		ctx,
		stats.WithTags(tag.Upsert(labelKey, label)),
		stats.WithMeasurements(
			pixelCount.M(int64(rays)),
			renderLatency.M(float64(elapsed)/float64(time.Millisecond)),
		),
	)
	if err != nil {
		glog.Errorf("Failed to record render metrics: %v", err)
	}
}
