package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLFor(t *testing.T) {
	tests := []struct {
		category string
		want     time.Duration
	}{
		{CategoryCompany, 10 * time.Minute},
		{CategoryStats, 2 * time.Minute},
		{CategoryMessages, 1 * time.Minute},
		{"default", 5 * time.Minute},
		{"sessions", 5 * time.Minute},
		{"", 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run("category "+tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, TTLFor(tt.category))
		})
	}
}
