package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingDays(t *testing.T) {
	days, err := Config{SalonWorkingDays: "1, 2,3,,6"}.WorkingDays()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 6}, days)

	days, err = Config{}.WorkingDays()
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = Config{SalonWorkingDays: "1,7"}.WorkingDays()
	assert.Error(t, err)
	_, err = Config{SalonWorkingDays: "mon"}.WorkingDays()
	assert.Error(t, err)
}

func TestOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"},
		Config{CORSOrigins: " https://a.example ,https://b.example,"}.Origins())
	assert.Nil(t, Config{}.Origins())
}
