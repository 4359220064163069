// Package telemetry exposes live flight data as Prometheus gauges.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	altitudeGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rocket_altitude_km",
		Help: "Current rocket altitude in kilometers.",
	})
	speedGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rocket_speed_kmh",
		Help: "Current rocket speed in km/h.",
	})
	fuelGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rocket_fuel_percent",
		Help: "Remaining fuel as a percentage of capacity.",
	})
	stageGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rocket_stage",
		Help: "Current rocket stage.",
	})
	missionTimeGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mission_time_seconds",
		Help: "Elapsed mission time in seconds.",
	})
)

// Publish updates every gauge with the given flight snapshot.
func Publish(stage int, fuelPercent, altitude, speed float64, missionTime int) {
	stageGauge.Set(float64(stage))
	fuelGauge.Set(fuelPercent)
	altitudeGauge.Set(altitude)
	speedGauge.Set(speed)
	missionTimeGauge.Set(float64(missionTime))
}

// Reset zeroes every gauge, for use between missions.
func Reset() {
	Publish(0, 0, 0, 0, 0)
}

// Serve exposes the /metrics endpoint on addr. It blocks, so run it in its
// own goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
