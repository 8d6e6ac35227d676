package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewValidator(t *testing.T) {
	type payload struct {
		Amount decimal.Decimal  `validate:"required,gt=0"`
		Limit  *decimal.Decimal `validate:"omitempty,gt=0"`
		Date   string           `validate:"required,isodate"`
	}

	negative := decimal.NewFromInt(-5)
	positive := decimal.RequireFromString("0.01")

	tests := []struct {
		name    string
		input   payload
		wantErr bool
	}{
		{name: "valid", input: payload{Amount: decimal.RequireFromString("12.50"), Date: "2024-05-01"}},
		{name: "valid optional limit", input: payload{Amount: decimal.NewFromInt(1), Limit: &positive, Date: "2024-05-01"}},
		{name: "zero amount", input: payload{Amount: decimal.Zero, Date: "2024-05-01"}, wantErr: true},
		{name: "negative limit", input: payload{Amount: decimal.NewFromInt(1), Limit: &negative, Date: "2024-05-01"}, wantErr: true},
		{name: "bad date", input: payload{Amount: decimal.NewFromInt(1), Date: "1.5.2024"}, wantErr: true},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
