package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	offset, limit := NormalizePage(0, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, DefaultPageSize, limit)

	offset, limit = NormalizePage(3, 10)
	assert.Equal(t, 20, offset)
	assert.Equal(t, 10, limit)

	_, limit = NormalizePage(1, 500)
	assert.Equal(t, MaxPageSize, limit)

	offset, _ = NormalizePage(-5, 10)
	assert.Equal(t, 0, offset)
}
