package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ClickRequest(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		req     ClickRequest
		wantErr bool
	}{
		{"valid harvest click", ClickRequest{Player: testPlayer, CellIndex: 0}, false},
		{"valid plant click", ClickRequest{Player: testPlayer, PlotID: 2, CellIndex: 11, SeedType: 3}, false},
		{"lowercase address", ClickRequest{Player: "0xabcdef0123456789abcdef0123456789abcdef01"}, false},

		{"missing player", ClickRequest{CellIndex: 1}, true},
		{"address without prefix", ClickRequest{Player: "abcdef0123456789abcdef0123456789abcdef01"}, true},
		{"short address", ClickRequest{Player: "0x1234"}, true},
		{"cell too large", ClickRequest{Player: testPlayer, CellIndex: 12}, true},
		{"negative cell", ClickRequest{Player: testPlayer, CellIndex: -1}, true},
		{"seed type beyond 14 bits", ClickRequest{Player: testPlayer, SeedType: 1 << 14}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_TradeRequest(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(TradeRequest{SeedType: 1, Quantity: 1}))
	assert.Error(t, v.ValidateStruct(TradeRequest{SeedType: 0, Quantity: 1}), "seed is required")
	assert.Error(t, v.ValidateStruct(TradeRequest{SeedType: 1, Quantity: 0}))
	assert.Error(t, v.ValidateStruct(TradeRequest{SeedType: 1, Quantity: -4}))
	assert.Error(t, v.ValidateStruct(TradeRequest{SeedType: 1, Quantity: 1_000_001}))
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	err := v.ValidateStruct(TradeRequest{Quantity: 0})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["seedtype"])
	assert.Equal(t, "This field is required", fields["quantity"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
