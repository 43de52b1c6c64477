package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExposure_TwoLightTable(t *testing.T) {
	cases := []struct {
		point, spot bool
		want        float32
	}{
		{false, false, 0.7},
		{true, false, 0.3},
		{false, true, 2.0},
		{true, true, 0.2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Exposure(c.point, c.spot), "point=%v spot=%v", c.point, c.spot)
	}
}

func TestExposure_ThreeLightMatchesTwoLightWithoutDir(t *testing.T) {
	for _, point := range []bool{false, true} {
		for _, spot := range []bool{false, true} {
			assert.Equal(t, Exposure(point, spot), ExposureThreeLight(false, point, spot))
		}
	}
	assert.Equal(t, float32(1.0), ExposureThreeLight(true, false, false))
	assert.Equal(t, float32(0.18), ExposureThreeLight(true, true, true))
}

func TestLightingModelExposure(t *testing.T) {
	tg := Toggles{Dir: true, Point: true, Spot: false}
	assert.Equal(t, float32(0.3), TwoLight.Exposure(tg), "two-light ignores the directional light")
	assert.Equal(t, float32(0.25), ThreeLight.Exposure(tg))
}

func TestParseLightingModel(t *testing.T) {
	m, err := ParseLightingModel("")
	require.NoError(t, err)
	assert.Equal(t, TwoLight, m)

	m, err = ParseLightingModel("Three-Light")
	require.NoError(t, err)
	assert.Equal(t, ThreeLight, m)
	assert.Equal(t, "three-light", m.String())

	_, err = ParseLightingModel("four")
	assert.Error(t, err)
}
