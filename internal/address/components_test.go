package address_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/addrcheck/internal/address"
)

func TestExtractComponents_Defaults(t *testing.T) {
	table, count := address.ExtractComponents([]address.RawComponent{{}})

	assert.Equal(t, 1, count)
	c, ok := table.Lookup("")
	assert.True(t, ok, "a component without a type is keyed by the empty string")
	assert.Equal(t, address.Component{}, c)
}

func TestExtractComponents_LastDuplicateWins(t *testing.T) {
	raw := []address.RawComponent{
		{ComponentType: "route", ComponentName: address.ComponentName{Text: "Main St"}},
		{ComponentType: "locality", ComponentName: address.ComponentName{Text: "Seattle"}},
		{ComponentType: "route", ComponentName: address.ComponentName{Text: "Main Street"}, Replaced: true},
	}

	table, count := address.ExtractComponents(raw)

	assert.Equal(t, 2, count, "count is the number of distinct component types")
	route, _ := table.Lookup("route")
	assert.Equal(t, "Main Street", route.Text)
	assert.True(t, route.Replaced)
}

func TestExtractComponents_Idempotent(t *testing.T) {
	raw := []address.RawComponent{
		{ComponentType: "postal_code", ComponentName: address.ComponentName{Text: "98101"}, ConfirmationLevel: address.ConfirmationConfirmed},
		{ComponentType: "postal_code_suffix", ComponentName: address.ComponentName{Text: "1234"}, Inferred: true},
		{ComponentType: "postal_code", ComponentName: address.ComponentName{Text: "98102"}},
	}

	first, firstCount := address.ExtractComponents(raw)
	second, secondCount := address.ExtractComponents(raw)

	assert.Equal(t, first, second)
	assert.Equal(t, firstCount, secondCount)
}

func TestExtractComponents_Empty(t *testing.T) {
	table, count := address.ExtractComponents(nil)

	assert.Equal(t, 0, count)
	assert.Empty(t, table)
}

func TestExtractComponents_ConfirmationLevels(t *testing.T) {
	body := `[
		{"componentType": "route", "confirmationLevel": "CONFIRMED"},
		{"componentType": "street_number", "confirmationLevel": "UNCONFIRMED"},
		{"componentType": "locality", "confirmationLevel": "UNCONFIRMED_BUT_PLAUSIBLE"},
		{"componentType": "subpremise", "confirmationLevel": "UNCONFIRMED_AND_SUSPICIOUS"},
		{"componentType": "postal_code"}
	]`
	var raw []address.RawComponent
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	table, _ := address.ExtractComponents(raw)

	assert.Equal(t, address.ConfirmationConfirmed, table["route"].ConfirmationLevel)
	assert.Equal(t, address.ConfirmationUnconfirmed, table["street_number"].ConfirmationLevel)
	assert.Equal(t, address.ConfirmationUnconfirmedButPlausible, table["locality"].ConfirmationLevel)
	assert.Equal(t, address.ConfirmationUnconfirmedAndSuspicious, table["subpremise"].ConfirmationLevel)
	assert.Equal(t, address.ConfirmationUnknown, table["postal_code"].ConfirmationLevel, "absent level reads as unknown")
}
