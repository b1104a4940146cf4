package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

func TestPrice_Major(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "two fractional digits", cents: 1234, want: "12.34"},
		{name: "trailing zero kept", cents: 1230, want: "12.30"},
		{name: "whole amount", cents: 500, want: "5.00"},
		{name: "sub unit", cents: 7, want: "0.07"},
		{name: "zero", cents: 0, want: "0.00"},
		{name: "large amount", cents: 123456789, want: "1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := domain.Price{Cents: tt.cents, Currency: "EUR"}
			assert.Equal(t, tt.want, p.Major())
		})
	}
}

func TestParseCondition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    domain.Condition
		wantErr bool
	}{
		{input: "Mint", want: domain.ConditionMint},
		{input: "Near Mint", want: domain.ConditionNearMint},
		{input: "  slightly played ", want: domain.ConditionSlightlyPlayed},
		{input: "MP", want: domain.ConditionModeratelyPlayed},
		{input: "Heavily Played", want: domain.ConditionHeavilyPlayed},
		{input: "Poor", want: domain.ConditionPoor},
		{input: "Damaged", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := domain.ParseCondition(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown condition")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCondition_AtLeast(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.ConditionMint.AtLeast(domain.ConditionNearMint))
	assert.True(t, domain.ConditionNearMint.AtLeast(domain.ConditionNearMint))
	assert.False(t, domain.ConditionPlayed.AtLeast(domain.ConditionNearMint))
}

func TestCondition_JSON(t *testing.T) {
	t.Parallel()

	var props domain.Properties
	require.NoError(t, json.Unmarshal([]byte(`{"condition":"Near Mint"}`), &props))
	require.NotNil(t, props.Condition)
	assert.Equal(t, domain.ConditionNearMint, *props.Condition)

	out, err := json.Marshal(props)
	require.NoError(t, err)
	assert.JSONEq(t, `{"condition":"Near Mint"}`, string(out))
}

func TestEventKind_Favorable(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.EventAppeared.Favorable())
	assert.True(t, domain.EventPriceDecreased.Favorable())
	assert.False(t, domain.EventPriceIncreased.Favorable())
	assert.False(t, domain.EventBecameUnavailable.Favorable())
}
