package delivery

import (
	"math"
	"time"
)

type Point struct {
	Lat float64
	Lng float64
}

type Flight struct {
	OrderID    string
	From       Point
	To         Point
	DistanceKM float64
	Duration   time.Duration
	Waypoints  []Point
}

// flightSteps matches the marker animation the storefront always shipped:
// the drone position is interpolated over a fixed number of steps between
// takeoff and drop-off.
const flightSteps = 100

const earthRadiusKM = 6371.0

// PlanFlight computes the straight-line drone route from shop to customer.
func PlanFlight(orderID string, from, to Point, speedKMH float64) Flight {
	f := Flight{
		OrderID:    orderID,
		From:       from,
		To:         to,
		DistanceKM: haversineKM(from, to),
	}

	if speedKMH > 0 {
		f.Duration = time.Duration(f.DistanceKM / speedKMH * float64(time.Hour))
	}

	f.Waypoints = make([]Point, 0, flightSteps)
	for i := 1; i <= flightSteps; i++ {
		frac := float64(i) / flightSteps
		f.Waypoints = append(f.Waypoints, Point{
			Lat: from.Lat + (to.Lat-from.Lat)*frac,
			Lng: from.Lng + (to.Lng-from.Lng)*frac,
		})
	}

	return f
}

func haversineKM(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}
