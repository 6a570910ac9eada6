package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalized(t *testing.T) {
	tests := []struct {
		name       string
		in         FilterCriteria
		wantLimit  int
		wantOffset int
	}{
		{"defaults applied", FilterCriteria{}, DefaultLimit, 0},
		{"negative offset resets", FilterCriteria{Limit: 10, Offset: -5}, 10, 0},
		{"oversized limit clamps", FilterCriteria{Limit: 10000}, MaxLimit, 0},
		{"in-range values pass through", FilterCriteria{Limit: 100, Offset: 200}, 100, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestValidate(t *testing.T) {
	neg := -1.0

	tests := []struct {
		name    string
		in      FilterCriteria
		wantErr bool
	}{
		{"empty is valid", FilterCriteria{}, false},
		{"mode all is valid", FilterCriteria{Mode: ModeAll}, false},
		{"unknown mode", FilterCriteria{Mode: "rail"}, true},
		{"well-formed dates", FilterCriteria{DateFrom: "2024-01-01", DateTo: "2024-12-31"}, false},
		{"malformed date", FilterCriteria{DateFrom: "01/15/2024"}, true},
		{"impossible calendar date", FilterCriteria{DateTo: "2024-02-30"}, true},
		{"negative min value", FilterCriteria{MinValue: &neg}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTextOnly(t *testing.T) {
	min := 100.0
	c := FilterCriteria{Query: "coffee", Mode: ModeOcean, OriginCountry: "Brazil", MinValue: &min, Limit: 10}

	assert.Equal(t, FilterCriteria{Query: "coffee"}, c.TextOnly())
}
