package scene

import (
	"fmt"
	"strings"
)

// LightingModel picks the exposure table used for HDR tonemapping.
type LightingModel int

const (
	// TwoLight keys exposure on the point and spot lights.
	TwoLight LightingModel = iota
	// ThreeLight also takes the directional light into account.
	ThreeLight
)

func (m LightingModel) String() string {
	switch m {
	case TwoLight:
		return "two-light"
	case ThreeLight:
		return "three-light"
	}
	return fmt.Sprintf("LightingModel(%d)", int(m))
}

func ParseLightingModel(s string) (LightingModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "two-light", "two":
		return TwoLight, nil
	case "three-light", "three":
		return ThreeLight, nil
	}
	return TwoLight, fmt.Errorf("unknown lighting model %q", s)
}

// exposureTwoLight is indexed [point][spot].
var exposureTwoLight = [2][2]float32{
	{0.7, 2.0},
	{0.3, 0.2},
}

// exposureThreeLight is indexed [dir][point][spot]. With the directional
// light off it matches the two-light table.
var exposureThreeLight = [2][2][2]float32{
	{
		{0.7, 2.0},
		{0.3, 0.2},
	},
	{
		{1.0, 1.5},
		{0.25, 0.18},
	},
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Exposure is the tonemap exposure for the two-light demo.
func Exposure(point, spot bool) float32 {
	return exposureTwoLight[b2i(point)][b2i(spot)]
}

// ExposureThreeLight is the tonemap exposure for the three-light demo.
func ExposureThreeLight(dir, point, spot bool) float32 {
	return exposureThreeLight[b2i(dir)][b2i(point)][b2i(spot)]
}

// Exposure picks the table entry for t under model m.
func (m LightingModel) Exposure(t Toggles) float32 {
	if m == ThreeLight {
		return ExposureThreeLight(t.Dir, t.Point, t.Spot)
	}
	return Exposure(t.Point, t.Spot)
}
