package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tt := []struct {
		payload string
		value   float64
	}{
		{"42", 42},
		{"12.5", 12.5},
		{"  7", 7},
		{"-3", -3},
		{".5", 0.5},
		{"12.5.3", 12.5},
		{"80%", 80},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{"+", 0},
	}

	for _, tc := range tt {
		t.Run(tc.payload, func(t *testing.T) {
			assert.Equal(t, tc.value, ParseNumber(tc.payload))
		})
	}
}

func TestBrightnessOutOfRange(t *testing.T) {
	m := NewMailbox()
	NewIntake(m).Apply(Brightness, "150")

	p := m.Take()
	assert.False(t, p.BrightnessSet)
	assert.Nil(t, p.Power)
}

func TestBrightnessImpliesOn(t *testing.T) {
	m := NewMailbox()
	in := NewIntake(m)

	in.Apply(Brightness, "40")
	p := m.Take()
	require.True(t, p.BrightnessSet)
	assert.Equal(t, 40.0, p.Brightness)
	require.NotNil(t, p.Power)
	assert.True(t, *p.Power)

	in.Apply(Brightness, "0")
	p = m.Take()
	require.True(t, p.BrightnessSet)
	assert.Equal(t, 0.0, p.Brightness)
	assert.Nil(t, p.Power)
}

func TestNegativeBrightnessClamped(t *testing.T) {
	m := NewMailbox()
	NewIntake(m).Apply(Brightness, "-20")

	p := m.Take()
	assert.True(t, p.BrightnessSet)
	assert.Equal(t, 0.0, p.Brightness)
	assert.Nil(t, p.Power)
}

func TestPowerPayloads(t *testing.T) {
	tt := []struct {
		name    string
		payload string
		power   *bool
		rainbow bool
	}{
		{"on", "true", boolPtr(true), false},
		{"rainbow", "rainbow", nil, true},
		{"off", "false", boolPtr(false), false},
		{"garbage is off", "yes please", boolPtr(false), false},
		{"case sensitive", "TRUE", boolPtr(false), false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMailbox()
			NewIntake(m).Apply(Power, tc.payload)

			p := m.Take()
			assert.Equal(t, tc.power, p.Power)
			assert.Equal(t, tc.rainbow, p.Rainbow)
		})
	}
}

func TestColorChannels(t *testing.T) {
	m := NewMailbox()
	in := NewIntake(m)

	in.Apply(Hue, "400")
	in.Apply(Saturation, "55.5")

	p := m.Take()
	assert.True(t, p.ColorSet())
	assert.Equal(t, 360.0, p.Hue)
	assert.Equal(t, 55.5, p.Saturation)
}

func TestUnknownChannel(t *testing.T) {
	m := NewMailbox()
	NewIntake(m).Apply("flicker", "1")
	assert.Equal(t, Pending{}, m.Take())
}

func boolPtr(b bool) *bool {
	return &b
}
