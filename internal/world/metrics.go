package world

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "flightsim/internal/world"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	ticks     metric.Int64Counter
	shots     metric.Int64Counter
	crashes   metric.Int64Counter
	respawns  metric.Int64Counter
	buildTime metric.Float64Histogram

	attrs metric.MeasurementOption
}

func newMetrics(m metric.Meter, scenario string) (*metrics, error) {
	if m == nil {
		m = meter()
	}
	var (
		out = &metrics{attrs: metric.WithAttributes(attribute.String("scenario", scenario))}
		err error
	)
	out.ticks, err = m.Int64Counter(
		"flightsim.world.ticks",
		metric.WithDescription("Simulation ticks executed"),
	)
	if err != nil {
		return nil, err
	}
	out.shots, err = m.Int64Counter(
		"flightsim.world.shots",
		metric.WithDescription("Projectiles fired"),
	)
	if err != nil {
		return nil, err
	}
	out.crashes, err = m.Int64Counter(
		"flightsim.world.crashes",
		metric.WithDescription("Aircraft losses to the sea"),
	)
	if err != nil {
		return nil, err
	}
	out.respawns, err = m.Int64Counter(
		"flightsim.world.respawns",
		metric.WithDescription("Respawns into a regenerated world"),
	)
	if err != nil {
		return nil, err
	}
	out.buildTime, err = m.Float64Histogram(
		"flightsim.world.build_time",
		metric.WithDescription("Time spent generating the terrain meshes"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// noopMetrics is used when instrument creation fails.
func noopMetrics() *metrics {
	m, _ := newMetrics(noop.NewMeterProvider().Meter(instrumentationName), "")
	return m
}

func (m *metrics) tick() {
	m.ticks.Add(context.Background(), 1, m.attrs)
}

func (m *metrics) shot() {
	m.shots.Add(context.Background(), 1, m.attrs)
}

func (m *metrics) crash() {
	m.crashes.Add(context.Background(), 1, m.attrs)
}

func (m *metrics) respawn() {
	m.respawns.Add(context.Background(), 1, m.attrs)
}

func (m *metrics) built(d time.Duration) {
	m.buildTime.Record(context.Background(), float64(d.Microseconds())/1000, m.attrs)
}
