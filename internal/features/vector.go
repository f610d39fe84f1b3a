package features

import (
	"fmt"
	"io"
	"strings"
)

// Vector holds the value of each feature, and whether it is defined.
// The zero value has no feature defined.
type Vector struct {
	Values  [NumIds]float32
	Defined [NumIds]bool
}

// Set the value of a feature, marking it as defined.
func (v *Vector) Set(id Id, value float32) {
	v.Values[id] = value
	v.Defined[id] = true
}

// Get returns the feature value and whether it is defined. Undefined features return 0.
func (v *Vector) Get(id Id) (float32, bool) {
	if !v.Defined[id] {
		return 0, false
	}
	return v.Values[id], true
}

// IsDefined returns whether the feature was set.
func (v *Vector) IsDefined(id Id) bool {
	return v.Defined[id]
}

// String returns a one line representation of the vector, with "-" for undefined features.
func (v Vector) String() string {
	parts := make([]string, 0, NumIds)
	for id := range NumIds {
		if value, ok := v.Get(id); ok {
			parts = append(parts, fmt.Sprintf("%s=%g", id, value))
		} else {
			parts = append(parts, fmt.Sprintf("%s=-", id))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Weights of each feature used to compute the score of a Vector.
type Weights [NumIds]float32

// Dot returns the weighted sum of the defined features. Undefined features contribute 0,
// regardless of their weight.
func Dot(v Vector, w Weights) (score float32) {
	for id := range NumIds {
		if v.Defined[id] {
			score += v.Values[id] * w[id]
		}
	}
	return
}

// PrettyPrint writes one line per feature, with its value, weight and contribution to the score.
func PrettyPrint(out io.Writer, v Vector, w Weights) {
	for id := range NumIds {
		if value, ok := v.Get(id); ok {
			fmt.Fprintf(out, "\t%-24s %8.2f x %8.2f = %10.2f\n", id, value, w[id], value*w[id])
		} else {
			fmt.Fprintf(out, "\t%-24s %8s\n", id, "-")
		}
	}
	fmt.Fprintf(out, "\t%-24s %32.2f\n", "score", Dot(v, w))
}
