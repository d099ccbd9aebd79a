package tween

import (
	"fmt"
	"math"
	"strings"
)

// Ease maps normalized progress [0, 1] to eased progress
type Ease func(t float64) float64

// Power curves follow the usual animation naming: power1 is quadratic,
// power2 cubic, power3 quartic, power4 quintic

// Linear is the identity ease
func Linear(t float64) float64 { return t }

func powIn(n float64) Ease {
	return func(t float64) float64 { return math.Pow(t, n) }
}

func powOut(n float64) Ease {
	return func(t float64) float64 { return 1 - math.Pow(1-t, n) }
}

func powInOut(n float64) Ease {
	return func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(2*t, n) / 2
		}
		return 1 - math.Pow(2*(1-t), n)/2
	}
}

var (
	Power1In    = powIn(2)
	Power1Out   = powOut(2)
	Power1InOut = powInOut(2)
	Power2In    = powIn(3)
	Power2Out   = powOut(3)
	Power2InOut = powInOut(3)
	Power3In    = powIn(4)
	Power3Out   = powOut(4)
	Power3InOut = powInOut(4)
	Power4In    = powIn(5)
	Power4Out   = powOut(5)
	Power4InOut = powInOut(5)
)

// ByName resolves an ease from its config name, case-insensitive
// A bare "powerN" means the out variant
func ByName(name string) (Ease, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "linear":
		return Linear, nil
	case "power1.in":
		return Power1In, nil
	case "power1", "power1.out":
		return Power1Out, nil
	case "power1.inout":
		return Power1InOut, nil
	case "power2.in":
		return Power2In, nil
	case "power2", "power2.out":
		return Power2Out, nil
	case "power2.inout":
		return Power2InOut, nil
	case "power3.in":
		return Power3In, nil
	case "power3", "power3.out":
		return Power3Out, nil
	case "power3.inout":
		return Power3InOut, nil
	case "power4.in":
		return Power4In, nil
	case "power4", "power4.out":
		return Power4Out, nil
	case "power4.inout":
		return Power4InOut, nil
	}
	return nil, fmt.Errorf("unknown ease %q", name)
}
