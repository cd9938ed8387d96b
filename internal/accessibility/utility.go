package accessibility

import "math"

// Evaluator computes the systematic utility of a record. It holds no state
// beyond its read-only inputs and may be shared freely.
type Evaluator struct {
	Coefs Coefficients
	// Vars are socio-demographic attribute names; each contributes
	// {var}_{mode} * value when both are present.
	Vars []string
	// RequireTime rejects records without travel time. When false the
	// utility of such a record is NaN.
	RequireTime bool
}

// Evaluate computes one record's utility, requiring travel time.
func Evaluate(coefs Coefficients, rec Record, vars []string) (float64, error) {
	return Evaluator{Coefs: coefs, Vars: vars, RequireTime: true}.Utility(rec)
}

// Utility returns the linear-in-parameters utility of rec.
func (e Evaluator) Utility(rec Record) (float64, error) {
	mode, err := ModeFromCode(rec.AltCode)
	if err != nil {
		return 0, &UnknownModeError{Row: rec.Row, PersonID: rec.PersonID, Code: rec.AltCode}
	}

	u := 0.0
	if mode != Reference {
		u += e.Coefs.Weight(Term(KindASC, mode))
	}

	// Time always contributes; a missing time is never read as zero.
	if !rec.Time.Valid {
		if e.RequireTime {
			return 0, &MissingRequiredFieldError{Row: rec.Row, PersonID: rec.PersonID, Field: "time"}
		}
		return math.NaN(), nil
	}
	u += e.Coefs.Weight(Term(KindTime, mode)) * rec.Time.Float

	if w, ok := e.Coefs.Lookup(Term(KindCost, mode)); ok && rec.Cost.Valid {
		u += w * rec.Cost.Float
	}

	for _, v := range e.Vars {
		w, ok := e.Coefs.Lookup(Term(v, mode))
		if !ok {
			continue
		}
		if x := rec.Attr(v); x.Valid {
			u += w * x.Float
		}
	}
	return u, nil
}
