package timezone_test

import (
	"testing"

	"trattoria/shared/constant"
	"trattoria/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestParseFormatRoundTrip(t *testing.T) {
	value := "2025-01-01 19:00:00"

	parsed, err := timezone.Parse(constant.TimestampFormat, value)
	assert.NoError(t, err)
	assert.Equal(t, value, timezone.Format(parsed, constant.TimestampFormat))
}

func TestParse_RejectsWrongShape(t *testing.T) {
	_, err := timezone.Parse(constant.TimestampFormat, "2025/01/01 19:00")
	assert.Error(t, err)
}

func TestNow_UsesAppLocation(t *testing.T) {
	now := timezone.Now()
	assert.Equal(t, timezone.GetLocation(), now.Location())
}
