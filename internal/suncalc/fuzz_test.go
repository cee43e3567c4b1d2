package suncalc

import (
	"math"
	"testing"
	"time"
)

// FuzzNight checks that arbitrary observers and dates never panic
func FuzzNight(f *testing.F) {
	f.Add(41.71, -121.51, int64(1436832000)) // 2015-07-14, Lava Beds
	f.Add(71.0, 25.0, int64(1719014400))     // Arctic midsummer
	f.Add(-71.0, 0.0, int64(1719014400))     // Antarctic winter
	f.Add(90.0, 0.0, int64(1703203200))      // North Pole, winter solstice
	f.Add(0.0, 180.0, int64(0))              // Dateline at the epoch

	f.Fuzz(func(t *testing.T, lat, lon float64, unixSec int64) {
		if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
			return
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return
		}
		if unixSec < -62135596800 || unixSec > 253402300799 {
			return
		}

		sc := NewSunCalc(lat, lon, time.UTC)
		_, _ = sc.Night(time.Unix(unixSec, 0).UTC())
	})
}
