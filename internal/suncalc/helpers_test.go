package suncalc

import "time"

// Lava Beds National Monument, where the logger data was first plotted
const (
	testLatitude  = 41.71
	testLongitude = -121.51
)

// pdt is Pacific daylight time without relying on the tz database
var pdt = time.FixedZone("PDT", -7*60*60)

func newTestSunCalc() *SunCalc {
	return NewSunCalc(testLatitude, testLongitude, pdt)
}

// summerNight is the evening of July 14, 2015 in local time
func summerNight() time.Time {
	return time.Date(2015, 7, 14, 0, 0, 0, 0, pdt)
}
