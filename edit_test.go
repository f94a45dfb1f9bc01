package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var snapshot = Load{
	ID: "l1", Date: "2025-12-01", PickupZip: "90210", DeliveryZip: "IL",
	TotalMiles: 1000, Rate: 2500, RPMTotal: 2.5, Trailer: "Dry Van",
}

func TestApplyFieldEditMilesRecomputesRPM(t *testing.T) {
	u, err := applyFieldEdit(snapshot, "miles", "500")
	require.NoError(t, err)
	require.NotNil(t, u.TotalMiles)
	assert.Equal(t, 500.0, *u.TotalMiles)
	require.NotNil(t, u.RPMTotal, "derived field recomputed with the record's existing rate")
	assert.Equal(t, 5.0, *u.RPMTotal)
	assert.Nil(t, u.Rate)
}

func TestApplyFieldEditRateRecomputesRPM(t *testing.T) {
	u, err := applyFieldEdit(snapshot, "rate", "$3,000")
	require.NoError(t, err)
	require.NotNil(t, u.Rate)
	assert.Equal(t, 3000.0, *u.Rate)
	require.NotNil(t, u.RPMTotal)
	assert.Equal(t, 3.0, *u.RPMTotal, "recomputed with the record's existing distance")
}

func TestApplyFieldEditRateWithZeroStoredMiles(t *testing.T) {
	zeroMiles := snapshot
	zeroMiles.TotalMiles = 0

	u, err := applyFieldEdit(zeroMiles, "rate", "500")
	require.NoError(t, err)
	require.NotNil(t, u.RPMTotal)
	assert.Equal(t, 0.0, *u.RPMTotal, "undefined marker, not an arithmetic fault")
}

func TestApplyFieldEditTextFieldsLeaveRPMAlone(t *testing.T) {
	for field, value := range map[string]string{
		"pickup":   "TX",
		"delivery": "60601",
		"trailer":  "Reefer",
		"comment":  "updated",
	} {
		u, err := applyFieldEdit(snapshot, field, value)
		require.NoError(t, err, field)
		assert.Nil(t, u.RPMTotal, field)
	}
}

func TestApplyFieldEditBadNumber(t *testing.T) {
	_, err := applyFieldEdit(snapshot, "miles", "far")
	assert.Error(t, err)
	_, err = applyFieldEdit(snapshot, "rate", "")
	assert.Error(t, err)
}

func TestApplyFieldEditUnknownField(t *testing.T) {
	_, err := applyFieldEdit(snapshot, "rpm", "9.99")
	assert.Error(t, err, "the derived metric is never independently editable")
}

func TestEditWritesPartialUpdate(t *testing.T) {
	openTestDB(t)
	require.NoError(t, insertLoad(snapshot))

	u, err := applyFieldEdit(snapshot, "miles", "2,000")
	require.NoError(t, err)
	updated, err := updateLoad(snapshot.ID, u)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, updated.TotalMiles)
	assert.Equal(t, 1.25, updated.RPMTotal)
	assert.Equal(t, 2500.0, updated.Rate, "only the changed field plus the derived one written")
	assert.Equal(t, "Long", updated.LengthCategory(), "category follows the new distance")
}
