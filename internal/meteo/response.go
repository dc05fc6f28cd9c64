package meteo

import (
	"fmt"
	"iter"
	"time"
)

// VariableNotFoundError reports a requested variable missing from the
// response. It indicates a mismatch between the request's variable list and
// what the collaborator returned; reportable, never retryable.
type VariableNotFoundError struct {
	Variable    Variable
	Altitude    int
	HasAltitude bool
}

func (e *VariableNotFoundError) Error() string {
	if e.HasAltitude {
		return fmt.Sprintf("variable %s at altitude %d not found in response", e.Variable, e.Altitude)
	}
	return fmt.Sprintf("variable %s not found in response", e.Variable)
}

// Series is one variable's numeric samples, self-describing via its variable
// identifier and altitude/depth tag. Read-only once returned.
type Series struct {
	Variable Variable
	Altitude int
	Values   []float64
}

// Reading is a single instantaneous sample from the current block.
type Reading struct {
	Variable Variable
	Altitude int
	Value    float64
}

// Hourly holds the hourly time axis and the per-variable series in response
// order. Start and Interval are unix seconds; End is exclusive.
type Hourly struct {
	Start    int64
	End      int64
	Interval int64
	Series   []Series
}

// Times returns the reconstructed hourly time axis as a lazy sequence.
// The sequence is finite and restartable: each range over it replays the
// same timestamps.
func (h *Hourly) Times() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if h.Interval <= 0 {
			return
		}
		for t := h.Start; t < h.End; t += h.Interval {
			if !yield(time.Unix(t, 0).UTC()) {
				return
			}
		}
	}
}

// Len returns the number of samples on the time axis.
func (h *Hourly) Len() int {
	if h.Interval <= 0 || h.End <= h.Start {
		return 0
	}
	return int((h.End - h.Start + h.Interval - 1) / h.Interval)
}

// Find returns the first series matching the variable, in response order.
// When several series share a variable at different altitudes, the first one
// wins; that tie-break is intentional, not a detected bug.
func (h *Hourly) Find(v Variable) (Series, error) {
	for _, s := range h.Series {
		if s.Variable == v {
			return s, nil
		}
	}
	return Series{}, &VariableNotFoundError{Variable: v}
}

// FindAt returns the first series matching both the variable and the
// altitude/depth tag.
func (h *Hourly) FindAt(v Variable, altitude int) (Series, error) {
	for _, s := range h.Series {
		if s.Variable == v && s.Altitude == altitude {
			return s, nil
		}
	}
	return Series{}, &VariableNotFoundError{Variable: v, Altitude: altitude, HasAltitude: true}
}

// FindKind looks up the series for a declared kind. Because request order
// matches declaration order, the kind's position usually lands directly on
// its series; the tag-based scan remains the authoritative fallback since
// the response collaborator is not under our control.
func (h *Hourly) FindKind(k Kind) (Series, error) {
	if i := KindIndex(k.Variable, k.Altitude); i >= 0 && i < len(h.Series) {
		if s := h.Series[i]; s.Variable == k.Variable && s.Altitude == k.Altitude {
			return s, nil
		}
	}
	return h.FindAt(k.Variable, k.Altitude)
}

// Current holds instantaneous readings and their sample time (unix seconds).
type Current struct {
	Time     int64
	Readings []Reading
}

// Find returns the first reading matching both tags, response order winning
// ties like the hourly scan.
func (c *Current) Find(v Variable, altitude int) (Reading, error) {
	for _, r := range c.Readings {
		if r.Variable == v && r.Altitude == altitude {
			return r, nil
		}
	}
	return Reading{}, &VariableNotFoundError{Variable: v, Altitude: altitude, HasAltitude: true}
}

// Response is the decoded forecast payload for one coordinate.
type Response struct {
	Latitude             float64
	Longitude            float64
	Elevation            float64
	Timezone             string
	TimezoneAbbreviation string
	UTCOffsetSeconds     int
	Hourly               Hourly
	Current              Current
}
