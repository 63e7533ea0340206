package aggregate

import "github.com/dexwatch/stats-api/models"

// PercentChange returns the change from previous to current as a
// percentage of a blended base, current plus half of previous. The
// blend damps the huge swings a plain previous-denominated change shows
// on small bases. Consumers have keyed on these exact numbers for a long
// time, so the formula stays as is, asymmetry included.
//
// Division by a zero base yields NaN or an infinity; those propagate to
// the caller unchanged and render as null on the wire.
func PercentChange(current, previous float64) models.PercentValue {
	delta := current - previous
	return models.PercentValue(delta / (current + previous/2) * 100)
}
