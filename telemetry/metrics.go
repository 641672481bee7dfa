package telemetry

// This package is how the openings library reports metrics. By default
// they are no-ops, but a user can provide an implementation if they want
// their metrics to go somewhere.

type Metrics interface {
	SetCount(key string, value int64)
	SetGauge(key string, value float64)
}

type NOPMetrics struct {
}

func (n NOPMetrics) SetCount(key string, value int64) {
}
func (n NOPMetrics) SetGauge(key string, value float64) {
}
