package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 210.0, Round2(210))
	assert.Equal(t, 10.5, Round2(10.504))
	assert.Equal(t, 10.51, Round2(10.505))
	assert.Equal(t, -1.23, Round2(-1.234))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "210.00", FormatAmount(210))
	assert.Equal(t, "10.50", FormatAmount(10.5))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5))
	assert.Equal(t, 5.0, Clamp(5))
}
