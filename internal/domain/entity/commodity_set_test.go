package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCommoditySet(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantKey string
	}{
		{name: "single", input: []string{"Nickel"}, wantKey: "nickel"},
		{name: "order independent", input: []string{"zinc", "nickel"}, wantKey: "nickel|zinc"},
		{name: "duplicates and case", input: []string{"Zinc", " zinc ", "NICKEL"}, wantKey: "nickel|zinc"},
		{name: "blank dropped", input: []string{"", "  ", "lithium"}, wantKey: "lithium"},
		{name: "empty", input: nil, wantKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewCommoditySet(tt.input...)
			assert.Equal(t, tt.wantKey, set.Key())
			assert.Equal(t, tt.wantKey == "", set.Empty())
		})
	}
}
