package query

import (
	"errors"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/models"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/stats"
)

// Outlier detection methods.
const (
	MethodIQR    = "iqr"
	MethodZScore = "zscore"
)

// Default sensitivity factors per method.
const (
	DefaultIQRFactor    = 1.5
	DefaultZScoreFactor = 3.0
)

type outlierRequest struct {
	Field  string `validate:"required,oneof=temperature salinity odo"`
	Method string `validate:"required,oneof=iqr zscore"`
}

// OutlierQuery is a validated outlier query.
type OutlierQuery struct {
	Field  models.Field
	Method string
	K      float64
}

// ParseOutlierQuery validates field, method and k. The method defaults to
// iqr; k defaults per method.
func (e *Engine) ParseOutlierQuery(p Params) (OutlierQuery, error) {
	req := outlierRequest{Method: MethodIQR}
	req.Field, _ = p.lookup("field")
	if m, ok := p.lookup("method"); ok {
		req.Method = m
	}

	if err := e.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Method" {
			return OutlierQuery{}, &Error{Kind: KindValidation, Message: "Invalid outlier method. Use 'iqr' or 'zscore'.", Err: err}
		}
		return OutlierQuery{}, &Error{Kind: KindValidation, Message: "Invalid field specified.", Err: err}
	}

	oq := OutlierQuery{Method: req.Method, K: DefaultIQRFactor}
	oq.Field, _ = models.ParseField(req.Field)
	if oq.Method == MethodZScore {
		oq.K = DefaultZScoreFactor
	}
	if raw, ok := p.lookup("k"); ok {
		k, err := parseNumber(raw)
		if err != nil {
			return OutlierQuery{}, &Error{Kind: KindValidation, Message: "Invalid factor 'k'.", Err: err}
		}
		oq.K = k
	}
	return oq, nil
}

// Outliers flags rows of the whole cleaned dataset whose value in the
// requested field falls outside the method's bounds.
func (e *Engine) Outliers(p Params) (res models.OutlierResult, qerr *Error) {
	defer e.guard("outlier detection", &qerr)

	oq, err := e.ParseOutlierQuery(p)
	if err != nil {
		return res, asError(err)
	}
	snap, qerr := e.snapshot()
	if qerr != nil {
		return res, qerr
	}
	flagged := DetectOutliers(snap.Store.All(), oq)
	return models.OutlierResult{Outliers: flagged, Count: len(flagged)}, nil
}

// DetectOutliers applies oq to obs. Rows without a value in the field take
// no part in the computation and are never flagged.
func DetectOutliers(obs []models.Observation, oq OutlierQuery) []models.Observation {
	rows := make([]models.Observation, 0, len(obs))
	values := make([]float64, 0, len(obs))
	for _, o := range obs {
		v, ok := o.Value(oq.Field)
		if !ok || math.IsNaN(v) {
			continue
		}
		rows = append(rows, o)
		values = append(values, v)
	}

	out := []models.Observation{}
	if len(values) == 0 {
		return out
	}

	var isOutlier func(v float64) bool
	switch oq.Method {
	case MethodZScore:
		mean := stats.Mean(values)
		std := stats.StdDev(values, mean)
		if std == 0 {
			return out
		}
		isOutlier = func(v float64) bool { return stats.ZScore(v, mean, std) > oq.K }
	default:
		sorted := stats.Sorted(values)
		q1 := stats.Quantile(sorted, 0.25)
		q3 := stats.Quantile(sorted, 0.75)
		iqr := q3 - q1
		lower, upper := q1-oq.K*iqr, q3+oq.K*iqr
		isOutlier = func(v float64) bool { return v < lower || v > upper }
	}

	for i, v := range values {
		if isOutlier(v) {
			out = append(out, rows[i])
		}
	}
	return out
}
