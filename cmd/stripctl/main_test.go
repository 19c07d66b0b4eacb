package main

import (
	"testing"

	"github.com/callebjorkell/ledstrip/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages(t *testing.T) {
	tt := []struct {
		name     string
		args     []string
		expected []message
	}{
		{"on", []string{"on"}, []message{{command.Power, "true"}}},
		{"off", []string{"off"}, []message{{command.Power, "false"}}},
		{"rainbow", []string{"rainbow"}, []message{{command.Power, "rainbow"}}},
		{"brightness", []string{"brightness", "42.5"}, []message{{command.Brightness, "42.5"}}},
		{"color", []string{"color", "120", "50"}, []message{{command.Hue, "120"}, {command.Saturation, "50"}}},
		{"color default saturation", []string{"color", "300"}, []message{{command.Hue, "300"}, {command.Saturation, "100"}}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := app.Parse(tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, messages(cmd))
		})
	}
}
