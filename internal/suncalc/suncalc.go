// Package suncalc computes sunset and sunrise around each recorded night for
// the heatmap overlay.
package suncalc

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sj14/astral/pkg/astral"

	"github.com/tphakala/roostlogger/internal/errors"
)

// SunEventTimes holds the sun events of one calendar date in local time
type SunEventTimes struct {
	CivilDawn time.Time // zero when civil twilight does not end
	Sunrise   time.Time
	Sunset    time.Time
	CivilDusk time.Time // zero when civil twilight does not end
}

// NightEvents are the sun events bracketing one night: the evening of the
// night's date and the following morning
type NightEvents struct {
	Night     time.Time
	Sunset    time.Time
	CivilDusk time.Time
	CivilDawn time.Time
	Sunrise   time.Time
}

// SunCalc calculates and caches sun event times for one observer
type SunCalc struct {
	cache    *cache.Cache // date -> SunEventTimes, never expires
	observer astral.Observer
	location *time.Location
}

// NewSunCalc creates a SunCalc reporting times in loc
func NewSunCalc(latitude, longitude float64, loc *time.Location) *SunCalc {
	if loc == nil {
		loc = time.Local
	}
	return &SunCalc{
		cache:    cache.New(cache.NoExpiration, 0),
		observer: astral.Observer{Latitude: latitude, Longitude: longitude},
		location: loc,
	}
}

// GetSunEventTimes returns the sun event times for the calendar date of date
func (sc *SunCalc) GetSunEventTimes(date time.Time) (SunEventTimes, error) {
	dateKey := date.Format(time.DateOnly)
	if cached, found := sc.cache.Get(dateKey); found {
		return cached.(SunEventTimes), nil
	}

	times, err := sc.calculateSunEventTimes(date)
	if err != nil {
		return SunEventTimes{}, err
	}
	sc.cache.Set(dateKey, times, cache.NoExpiration)
	return times, nil
}

// Night returns sunset and dusk on the night's date and dawn and sunrise on
// the next morning
func (sc *SunCalc) Night(night time.Time) (NightEvents, error) {
	evening, err := sc.GetSunEventTimes(night)
	if err != nil {
		return NightEvents{}, err
	}
	y, m, d := night.Date()
	morning, err := sc.GetSunEventTimes(time.Date(y, m, d+1, 0, 0, 0, 0, night.Location()))
	if err != nil {
		return NightEvents{}, err
	}
	return NightEvents{
		Night:     night,
		Sunset:    evening.Sunset,
		CivilDusk: evening.CivilDusk,
		CivilDawn: morning.CivilDawn,
		Sunrise:   morning.Sunrise,
	}, nil
}

// calculateSunEventTimes asks astral for the date's events. Sunrise and sunset
// are required; civil twilight is left zero where the sun never gets 6
// degrees below the horizon.
func (sc *SunCalc) calculateSunEventTimes(date time.Time) (SunEventTimes, error) {
	// astral works on the UTC calendar date
	y, m, d := date.Date()
	utcDate := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	sunrise, err := astral.Sunrise(sc.observer, utcDate)
	if err != nil {
		return SunEventTimes{}, sc.newError(fmt.Errorf("failed to calculate sunrise: %w", err), utcDate)
	}
	sunset, err := astral.Sunset(sc.observer, utcDate)
	if err != nil {
		return SunEventTimes{}, sc.newError(fmt.Errorf("failed to calculate sunset: %w", err), utcDate)
	}

	times := SunEventTimes{
		Sunrise: sunrise.In(sc.location),
		Sunset:  sunset.In(sc.location),
	}
	if dawn, err := astral.Dawn(sc.observer, utcDate, astral.DepressionCivil); err == nil {
		times.CivilDawn = dawn.In(sc.location)
	}
	if dusk, err := astral.Dusk(sc.observer, utcDate, astral.DepressionCivil); err == nil {
		times.CivilDusk = dusk.In(sc.location)
	}
	return times, nil
}

func (sc *SunCalc) newError(err error, date time.Time) *errors.EnhancedError {
	return errors.New(err).
		Component("suncalc").
		Category(errors.CategoryGeneric).
		Context("date", date.Format(time.DateOnly)).
		Context("latitude", sc.observer.Latitude).
		Context("longitude", sc.observer.Longitude).
		Build()
}
