package preferences

import (
	"testing"

	"meridian/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFormUpdatesConfig(t *testing.T) {
	config, err := applyForm(model.DefaultClockConfig(), formValues{
		NeighborLimit: " 5 ",
		NightStart:    "22",
		NightEnd:      "7",
		DefaultZones:  "Asia/Kolkata\n\n Europe/Paris ,Asia/Tokyo",
		ShowLocal:     false,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, config.NeighborLimit)
	assert.Equal(t, model.NightWindow{StartHour: 22, EndHour: 7}, config.Night)
	assert.Equal(t, []string{"Asia/Kolkata", "Europe/Paris", "Asia/Tokyo"}, config.DefaultZones)
	assert.False(t, config.ShowLocal)
	assert.Equal(t, model.DefaultClockConfig().TickInterval, config.TickInterval)
}

func TestApplyFormRejectsInvalidValues(t *testing.T) {
	valid := formValues{NeighborLimit: "15", NightStart: "18", NightEnd: "6"}
	cases := map[string]func(*formValues){
		"zero limit":     func(values *formValues) { values.NeighborLimit = "0" },
		"text limit":     func(values *formValues) { values.NeighborLimit = "many" },
		"late start":     func(values *formValues) { values.NightStart = "24" },
		"negative end":   func(values *formValues) { values.NightEnd = "-1" },
		"empty end hour": func(values *formValues) { values.NightEnd = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			values := valid
			mutate(&values)
			original := model.DefaultClockConfig()

			config, err := applyForm(original, values)
			assert.Error(t, err)
			assert.Equal(t, original, config)
		})
	}
}

func TestSplitZonesEmpty(t *testing.T) {
	assert.Equal(t, []string{}, splitZones(" \n , "))
}
