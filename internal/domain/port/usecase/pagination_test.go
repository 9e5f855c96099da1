package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Page
		expected Page
	}{
		{"zero value gets defaults", Page{}, Page{Offset: 0, Limit: DefaultPageLimit}},
		{"negative offset clamps to zero", Page{Offset: -10, Limit: 50}, Page{Offset: 0, Limit: 50}},
		{"negative limit gets default", Page{Offset: 5, Limit: -1}, Page{Offset: 5, Limit: DefaultPageLimit}},
		{"oversized limit clamps to max", Page{Limit: 99999}, Page{Offset: 0, Limit: MaxPageLimit}},
		{"limit at max passes through", Page{Limit: MaxPageLimit}, Page{Offset: 0, Limit: MaxPageLimit}},
		{"valid page unchanged", Page{Offset: 200, Limit: 25}, Page{Offset: 200, Limit: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.Normalize())
		})
	}
}
