package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableColumns(t *testing.T) {
	t.Run("EmptyTableHasNoColumns", func(t *testing.T) {
		assert.Empty(t, NewTable(nil).Columns())
		var nilTable *Table
		assert.Empty(t, nilTable.Columns())
	})

	t.Run("NonEmptyTableHasCoreColumns", func(t *testing.T) {
		tbl := NewTable([]AccessLog{{IP: "10.0.0.1"}})
		assert.Equal(t, RequiredColumns, tbl.Columns())
		assert.Empty(t, MissingColumns(tbl))
		assert.NoError(t, Validate(tbl))
	})
}

func TestValidateEmptyTable(t *testing.T) {
	err := Validate(NewTable(nil))
	require.Error(t, err)

	var mce *MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"ip", "method", "size", "status", "timestamp", "url"}, mce.Columns)
	assert.Contains(t, err.Error(), "size")
}

func TestSummaryJSON(t *testing.T) {
	t.Run("NaNMeanIsNull", func(t *testing.T) {
		b, err := json.Marshal(Summary{MeanSize: math.NaN()})
		require.NoError(t, err)
		assert.Contains(t, string(b), `"mean_size":null`)

		var back Summary
		require.NoError(t, json.Unmarshal(b, &back))
		assert.True(t, math.IsNaN(back.MeanSize))
	})

	t.Run("MeanSurvivesRoundTrip", func(t *testing.T) {
		in := Summary{
			Rows:          3,
			TopPages:      []PageCount{{URL: "/", Count: 2}},
			NotFound:      1,
			HourlyTraffic: []HourCount{{Hour: 13, Count: 3}},
			MeanSize:      512.5,
		}
		b, err := json.Marshal(in)
		require.NoError(t, err)

		var back Summary
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, in, back)
	})
}
