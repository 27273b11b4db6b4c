package progress

import "github.com/zero2one-app/zero2one/internal/domain"

// Factors is the multiplier breakdown for one completion.
// Multipliers compose multiplicatively; an absent slot is 1.0.
type Factors struct {
	Job    float64 `json:"job"`
	Event  float64 `json:"event"`
	Streak float64 `json:"streak"`
}

// Total returns the combined multiplier.
func (f Factors) Total() float64 {
	return f.Job * f.Event * f.Streak
}

// Resolve reads the multiplier slots that apply to a completion posting
// points to the given attribute. An attribute-scoped event boost takes
// precedence over the global event multiplier. Never mutates state.
func Resolve(st *domain.UserState, attribute string) Factors {
	event := st.Multipliers.Event
	if f, ok := st.AttributeMultipliers[attribute]; ok && f > 0 {
		event = f
	}
	return Factors{
		Job:    st.Multipliers.Job,
		Event:  event,
		Streak: st.Multipliers.Streak,
	}
}

// EffectivePoints computes the points a completion awards:
// base × job × event × streak.
func EffectivePoints(st *domain.UserState, basePoints float64, attribute string) float64 {
	return basePoints * Resolve(st, attribute).Total()
}
