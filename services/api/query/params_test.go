package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeBound(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"nanoseconds truncated", "2022-01-01T00:00:00.1234567", "2022-01-01T00:00:00.123456"},
		{"short fraction padded", "2022-01-01T00:00:00.5", "2022-01-01T00:00:00.500000"},
		{"date only", "2022-01-01", "2022-01-01T00:00:00"},
		{"space separator without seconds", "2022-01-01 10:30", "2022-01-01T10:30:00"},
		{"utc marker dropped", "2022-01-01T10:30:00Z", "2022-01-01T10:30:00"},
		{"offset dropped not converted", "2022-01-01T10:30:00+05:30", "2022-01-01T10:30:00"},
		{"compact offset", "2022-01-01T10:30:00.25-0400", "2022-01-01T10:30:00.250000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeBound(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseTimeBoundRejects(t *testing.T) {
	for _, raw := range []string{"", "yesterday", "2022-13-01", "2022-01-01T25:00:00", "01/02/2022", "2022-01-01T10:00.5"} {
		_, err := ParseTimeBound(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(Params{
		"start":    "2021-10-21T00:00:00",
		"end":      "2021-10-22",
		"min_temp": "20.5",
		"max_odo":  "8",
		"min_sal":  "  ",
	})
	require.NoError(t, err)
	require.NotNil(t, f.Start)
	require.NotNil(t, f.End)
	assert.Equal(t, "2021-10-22T00:00:00", f.End.String())
	require.NotNil(t, f.Temperature.Min)
	assert.Equal(t, 20.5, *f.Temperature.Min)
	assert.Nil(t, f.Temperature.Max)
	require.NotNil(t, f.ODO.Max)
	assert.Equal(t, 8.0, *f.ODO.Max)
	assert.True(t, f.Salinity.IsZero())
}

func TestParseFilterErrors(t *testing.T) {
	tests := []struct {
		params Params
		msg    string
	}{
		{Params{"start": "soon"}, "Invalid 'start' date format."},
		{Params{"end": "2021-02-30"}, "Invalid 'end' date format."},
		{Params{"max_temp": "warm"}, "Invalid value for min_temp or max_temp. Must be a number."},
		{Params{"min_sal": "NaN"}, "Invalid value for min_sal or max_sal. Must be a number."},
	}
	for _, tt := range tests {
		_, err := ParseFilter(tt.params)
		var qerr *Error
		require.ErrorAs(t, err, &qerr)
		assert.Equal(t, KindValidation, qerr.Kind)
		assert.True(t, qerr.ClientError())
		assert.Equal(t, tt.msg, qerr.Message)
	}
}

func TestParsePage(t *testing.T) {
	skip, limit, err := parsePage(Params{}, 100, 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, skip)
	assert.Equal(t, 100, limit)

	skip, limit, err = parsePage(Params{"skip": "20", "limit": "5000"}, 100, 1000)
	require.NoError(t, err)
	assert.Equal(t, 20, skip)
	assert.Equal(t, 1000, limit)

	_, _, err = parsePage(Params{"limit": "-1"}, 100, 1000)
	assert.EqualError(t, err, "validation: Limit and skip must be non-negative.")

	_, _, err = parsePage(Params{"skip": "1.5"}, 100, 1000)
	var qerr *Error
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, "Limit and skip must be valid integers.", qerr.Message)
}

func TestParamsFromValues(t *testing.T) {
	p := ParamsFromValues(url.Values{"limit": {"5", "7"}, "empty": {}})
	assert.Equal(t, Params{"limit": "5"}, p)
}
