package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		in   string
		want Environment
	}{
		{"production", Production},
		{" PRODUCTION ", Production},
		{"staging", Staging},
		{"testing", Testing},
		{"", Development},
		{"qa", Development},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEnvironment(tt.in))
		})
	}
	assert.True(t, Production.IsProduction())
	assert.False(t, Staging.IsProduction())
}
