package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseThresholdMinutes(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid value", value: "5", want: 5},
		{name: "minimum of one", value: "1", want: 1},
		{name: "unset", value: "", want: 10},
		{name: "not a number", value: "soon", want: 10},
		{name: "zero", value: "0", want: 10},
		{name: "negative", value: "-3", want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseThresholdMinutes(tt.value))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("RESERVATION_THRESHOLD_MIN", "")

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DBHost)
	assert.Equal(t, 10, cfg.ReservationThresholdMin)
}
