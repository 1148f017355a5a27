package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUpcomingCutoffIsUTCInstant(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2026, 3, 5, 2, 30, 0, 0, loc)

	// 02:30 at UTC+5 is still the previous day in UTC
	assert.Equal(t, "2026-03-04T21:30:00Z", upcomingCutoff(now))
}

func TestTodayLabelIsLocalZeroPadded(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2026, 3, 5, 2, 30, 0, 0, loc)

	// same instant, but the label follows the local calendar day
	assert.Equal(t, "2026-03-05", todayLabel(now))
}

func TestTodayLabelZeroPadsSingleDigits(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-02", todayLabel(now))
}
