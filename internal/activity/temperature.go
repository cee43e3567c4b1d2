package activity

import (
	"math"
	"slices"
	"time"

	"github.com/tphakala/roostlogger/internal/roostlog"
)

// DailyTemperature summarizes one calendar date of readings
type DailyTemperature struct {
	Date     time.Time
	Min      float64
	Max      float64
	Mean     float64
	Readings int
}

// DailyTemperatures returns min, max and mean per calendar date, ascending.
// Dates without readings are absent.
func DailyTemperatures(temps []roostlog.TemperatureRecord) []DailyTemperature {
	byDay := make(map[int]*DailyTemperature)
	sums := make(map[int]float64)

	for _, r := range temps {
		n := dayNumber(r.Timestamp)
		d, ok := byDay[n]
		if !ok {
			d = &DailyTemperature{Date: midnight(r.Timestamp), Min: r.Celsius, Max: r.Celsius}
			byDay[n] = d
		}
		d.Min = min(d.Min, r.Celsius)
		d.Max = max(d.Max, r.Celsius)
		d.Readings++
		sums[n] += r.Celsius
	}

	days := make([]int, 0, len(byDay))
	for n := range byDay {
		days = append(days, n)
	}
	slices.Sort(days)

	out := make([]DailyTemperature, 0, len(days))
	for _, n := range days {
		d := byDay[n]
		d.Mean = sums[n] / float64(d.Readings)
		out = append(out, *d)
	}
	return out
}

// TemperatureMatrix holds readings indexed by [date][bucket] with buckets
// starting at midnight. Cells without a reading are NaN.
type TemperatureMatrix struct {
	Dates   []time.Time
	BinSize time.Duration
	Values  [][]float64
}

// BuildTemperatureMatrix places each reading in its date and time bucket.
// When several readings share a cell the last one in input order wins.
// Only dates with readings get a row.
func BuildTemperatureMatrix(temps []roostlog.TemperatureRecord, binSize time.Duration) (*TemperatureMatrix, error) {
	if err := validateOptions(binSize, 0); err != nil {
		return nil, err
	}

	tm := &TemperatureMatrix{BinSize: binSize}
	if len(temps) == 0 {
		return tm, nil
	}

	rows := make(map[int]int)
	var days []int
	for _, r := range temps {
		n := dayNumber(r.Timestamp)
		if _, ok := rows[n]; !ok {
			rows[n] = 0
			days = append(days, n)
		}
	}
	slices.Sort(days)

	buckets := int(day / binSize)
	tm.Dates = make([]time.Time, len(days))
	tm.Values = make([][]float64, len(days))
	for i, n := range days {
		rows[n] = i
		row := make([]float64, buckets)
		for j := range row {
			row[j] = math.NaN()
		}
		tm.Values[i] = row
	}

	for _, r := range temps {
		i := rows[dayNumber(r.Timestamp)]
		if tm.Dates[i].IsZero() {
			tm.Dates[i] = midnight(r.Timestamp)
		}
		tm.Values[i][int(timeOfDay(r.Timestamp)/binSize)] = r.Celsius
	}
	return tm, nil
}

// Buckets is the number of time buckets per date
func (tm *TemperatureMatrix) Buckets() int {
	if tm.BinSize <= 0 {
		return 0
	}
	return int(day / tm.BinSize)
}

// Empty reports whether the matrix has no dates
func (tm *TemperatureMatrix) Empty() bool {
	return len(tm.Dates) == 0
}

// Range returns the lowest and highest reading, ok is false when every cell is empty
func (tm *TemperatureMatrix) Range() (lo, hi float64, ok bool) {
	for _, row := range tm.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if !ok {
				lo, hi, ok = v, v, true
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi, ok
}

// CelsiusToFahrenheit converts a temperature for the secondary axis
func CelsiusToFahrenheit(c float64) float64 {
	return c*1.8 + 32
}
