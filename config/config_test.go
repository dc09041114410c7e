package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("REMINDER_HOUR", "18")
	t.Setenv("ENV", "production")

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "itufk", AppConfig.DatabaseName)
	assert.Equal(t, 18, AppConfig.ReminderHour)
	assert.Equal(t, 1, AppConfig.ReminderWindowMinDays)
	assert.Equal(t, 7, AppConfig.ReminderWindowMaxDays)
	assert.Equal(t, 720*time.Hour, AppConfig.SessionTTL)
	assert.Equal(t, 5*time.Minute, AppConfig.SessionSweep)
	assert.True(t, AppConfig.ReminderUniqueDayIndex)
	assert.True(t, IsProduction())
}

func TestReminderLocation(t *testing.T) {
	AppConfig.ReminderTimezone = "Europe/Istanbul"
	loc := ReminderLocation()
	require.NotNil(t, loc)
	assert.Equal(t, "Europe/Istanbul", loc.String())

	AppConfig.ReminderTimezone = "Not/AZone"
	assert.Equal(t, time.Local, ReminderLocation())

	AppConfig.ReminderTimezone = ""
	assert.Equal(t, time.Local, ReminderLocation())
}
