package query

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/models"
)

// Params is the per-request mapping of parameter name to raw value.
type Params map[string]string

// ParamsFromValues keeps the first value of every key.
func ParamsFromValues(v url.Values) Params {
	p := make(Params, len(v))
	for k, vals := range v {
		if len(vals) > 0 {
			p[k] = vals[0]
		}
	}
	return p
}

func (p Params) lookup(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

var boundPattern = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2})(?:[T ](\d{2}:\d{2})(?::(\d{2})(?:\.(\d+))?)?)?\s*(?:[Zz]|[+-]\d{2}(?::?\d{2})?)?$`)

// ParseTimeBound accepts an ISO-8601-like date or date-time. Fractional
// seconds are cut or zero-padded to six digits and any zone designator is
// dropped, leaving a naive timestamp.
func ParseTimeBound(raw string) (models.Timestamp, error) {
	m := boundPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return models.Timestamp{}, fmt.Errorf("unrecognised date-time %q", raw)
	}
	date, hm, sec, frac := m[1], m[2], m[3], m[4]
	if hm == "" {
		hm = "00:00"
	}
	if sec == "" {
		sec = "00"
	}
	if len(frac) > 6 {
		frac = frac[:6]
	}
	frac += strings.Repeat("0", 6-len(frac))

	t, err := time.Parse("2006-01-02T15:04:05.000000", date+"T"+hm+":"+sec+"."+frac)
	if err != nil {
		return models.Timestamp{}, err
	}
	return models.NewTimestamp(t), nil
}

func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

type rangeParams struct {
	field    models.Field
	min, max string
}

var rangeKeys = []rangeParams{
	{models.FieldTemperature, "min_temp", "max_temp"},
	{models.FieldSalinity, "min_sal", "max_sal"},
	{models.FieldODO, "min_odo", "max_odo"},
}

// ParseFilter builds a Filter from start/end and the per-field min/max keys.
// Absent or blank parameters leave the bound open.
func ParseFilter(p Params) (models.Filter, error) {
	var f models.Filter
	for _, key := range []string{"start", "end"} {
		raw, ok := p.lookup(key)
		if !ok {
			continue
		}
		ts, err := ParseTimeBound(raw)
		if err != nil {
			return models.Filter{}, &Error{
				Kind:    KindValidation,
				Message: fmt.Sprintf("Invalid '%s' date format.", key),
				Err:     err,
			}
		}
		if key == "start" {
			f.Start = &ts
		} else {
			f.End = &ts
		}
	}

	for _, rk := range rangeKeys {
		r, err := parseRange(p, rk)
		if err != nil {
			return models.Filter{}, err
		}
		switch rk.field {
		case models.FieldTemperature:
			f.Temperature = r
		case models.FieldSalinity:
			f.Salinity = r
		case models.FieldODO:
			f.ODO = r
		}
	}
	return f, nil
}

func parseRange(p Params, rk rangeParams) (models.Range, error) {
	var r models.Range
	for _, key := range []string{rk.min, rk.max} {
		raw, ok := p.lookup(key)
		if !ok {
			continue
		}
		v, err := parseNumber(raw)
		if err != nil {
			return models.Range{}, &Error{
				Kind:    KindValidation,
				Message: fmt.Sprintf("Invalid value for %s or %s. Must be a number.", rk.min, rk.max),
				Err:     err,
			}
		}
		if key == rk.min {
			r.Min = &v
		} else {
			r.Max = &v
		}
	}
	return r, nil
}

// parsePage reads limit and skip. The limit defaults to def and is capped at maxLimit.
func parsePage(p Params, def, maxLimit int) (skip, limit int, err error) {
	limit = def
	if raw, ok := p.lookup("limit"); ok {
		if limit, err = strconv.Atoi(raw); err != nil {
			return 0, 0, &Error{Kind: KindValidation, Message: "Limit and skip must be valid integers.", Err: err}
		}
	}
	if raw, ok := p.lookup("skip"); ok {
		if skip, err = strconv.Atoi(raw); err != nil {
			return 0, 0, &Error{Kind: KindValidation, Message: "Limit and skip must be valid integers.", Err: err}
		}
	}
	if limit < 0 || skip < 0 {
		return 0, 0, validationError("Limit and skip must be non-negative.")
	}
	return skip, min(limit, maxLimit), nil
}
