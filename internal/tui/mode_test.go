package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectOutputMode(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	tests := []struct {
		name       string
		forceColor bool
		noColor    bool
		plain      bool
		tty        bool
		env        map[string]string
		want       OutputMode
	}{
		{name: "terminal", tty: true, want: OutputModeStyled},
		{name: "pipe", tty: false, want: OutputModePlain},
		{name: "plain flag wins", plain: true, forceColor: true, tty: true, want: OutputModePlain},
		{name: "force color on pipe", forceColor: true, want: OutputModeStyled},
		{name: "no color flag", noColor: true, tty: true, want: OutputModePlain},
		{name: "NO_COLOR", tty: true, env: map[string]string{"NO_COLOR": "1"}, want: OutputModePlain},
		{name: "dumb terminal", tty: true, env: map[string]string{"TERM": "dumb"}, want: OutputModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOutputMode(tt.forceColor, tt.noColor, tt.plain, tt.tty, env(tt.env))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputModeString(t *testing.T) {
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
}
