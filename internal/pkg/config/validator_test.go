package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "nightly sweep", schedule: "0 4 * * *"},
		{name: "every six hours", schedule: "0 */6 * * *"},
		{name: "weekdays only", schedule: "30 9 * * 1-5"},
		{name: "empty", schedule: "", wantErr: true},
		{name: "too few fields", schedule: "0 4 *", wantErr: true},
		{name: "prose", schedule: "daily at four", wantErr: true},
		{name: "minute out of range", schedule: "61 4 * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "utc", timezone: "UTC"},
		{name: "iana name", timezone: "Asia/Tokyo"},
		{name: "empty", timezone: "", wantErr: true},
		{name: "offset instead of name", timezone: "+09:00", wantErr: true},
		{name: "typo", timezone: "Asia/Tokio", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimezone(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDuration(t *testing.T) {
	min, max := time.Minute, time.Hour

	assert.NoError(t, ValidateDuration(time.Minute, min, max))
	assert.NoError(t, ValidateDuration(time.Hour, min, max))
	assert.NoError(t, ValidateDuration(10*time.Minute, min, max))

	assert.Error(t, ValidateDuration(time.Second, min, max))
	assert.Error(t, ValidateDuration(2*time.Hour, min, max))
	assert.Error(t, ValidateDuration(10*time.Minute, max, min), "inverted range is rejected")
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(1024, 1024, 65535))
	assert.NoError(t, ValidateIntRange(65535, 1024, 65535))

	assert.Error(t, ValidateIntRange(80, 1024, 65535))
	assert.Error(t, ValidateIntRange(70000, 1024, 65535))
	assert.Error(t, ValidateIntRange(5, 10, 1), "inverted range is rejected")
}

func TestValidateDuration_ErrorNamesBounds(t *testing.T) {
	err := ValidateDuration(time.Second, time.Minute, time.Hour)
	assert.ErrorContains(t, err, "below minimum")
	assert.ErrorContains(t, err, "1m0s")
}
