package normalize

import (
	"fmt"
	"time"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// Conditions normalizes a current-conditions payload.
func Conditions(s WeatherSchema, raw map[string]any, requestTime time.Time, debug bool) (domain.Conditions, error) {
	if s.CurrentRecord == nil {
		return domain.Conditions{}, fmt.Errorf("%s: schema has no current-record selector", s.Vendor)
	}
	rec, err := s.CurrentRecord(raw)
	if err != nil {
		return domain.Conditions{}, err
	}

	cond := fillConditions(s, rec)
	cond.Time = requestTime.UTC()
	if s.ObservationTime != nil {
		if t, ok := s.ObservationTime(rec); ok {
			cond.Time = t.UTC()
		}
	}
	if debug {
		cond.Raw = raw
	}
	return cond, nil
}

// HistoricalConditions normalizes a time-series payload down to the single
// hour bucket matching the requested time (floored to the hour). A response
// that lacks the bucket yields domain.ErrNoResults — an absent hour is a
// real answer, not a zero-filled record.
func HistoricalConditions(s WeatherSchema, raw map[string]any, requested time.Time, debug bool) (domain.Conditions, error) {
	if s.HourlyRecords == nil || s.BucketTime == nil {
		return domain.Conditions{}, fmt.Errorf("%s: vendor has no historical mode", s.Vendor)
	}
	records, err := s.HourlyRecords(raw)
	if err != nil {
		return domain.Conditions{}, err
	}

	want := requested.UTC().Truncate(time.Hour)
	for _, rec := range records {
		t, ok := s.BucketTime(rec)
		if !ok {
			continue
		}
		if t.UTC().Truncate(time.Hour).Equal(want) {
			cond := fillConditions(s, rec)
			cond.Time = want
			if debug {
				cond.Raw = raw
			}
			return cond, nil
		}
	}
	return domain.Conditions{}, fmt.Errorf("%s: hour %s: %w", s.Vendor, want.Format(time.RFC3339), domain.ErrNoResults)
}

// fillConditions resolves every canonical quantity through its field chain,
// converting to SI, and applies the vendor's condition table.
func fillConditions(s WeatherSchema, rec map[string]any) domain.Conditions {
	var cond domain.Conditions

	cond.Temperature = resolveField(rec, s.Fields.Temperature)
	cond.Dewpoint = resolveField(rec, s.Fields.Dewpoint)
	cond.Humidity = resolveField(rec, s.Fields.Humidity)
	cond.Pressure = resolveField(rec, s.Fields.Pressure)
	cond.Cloudiness = resolveField(rec, s.Fields.Cloudiness)
	cond.Rain = resolveField(rec, s.Fields.Rain)
	cond.Snow = resolveField(rec, s.Fields.Snow)
	cond.Visibility = resolveField(rec, s.Fields.Visibility)
	cond.UVIndex = resolveField(rec, s.Fields.UVIndex)

	if v := resolveField(rec, s.Fields.WindSpeed); v != nil {
		cond.Wind.Speed = *v
	}
	if v := resolveField(rec, s.Fields.WindDegree); v != nil {
		cond.Wind.Degree = *v
	}
	cond.Wind.Gust = resolveField(rec, s.Fields.WindGust)

	if s.Condition != nil {
		cond.Code, cond.Summary = s.Condition(rec)
	}
	if cond.Summary == "" && cond.Code != domain.CodeUnknown {
		cond.Summary = domain.CodeSummary(cond.Code)
	}
	return cond
}

func resolveField(rec map[string]any, f Field) *float64 {
	if len(f.Keys) == 0 {
		return nil
	}
	v, ok := ResolveFloat(rec, f.Keys...)
	if !ok {
		return nil
	}
	if f.Convert != nil {
		v = f.Convert(v)
	}
	return domain.Float64(v)
}
