package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	t.Run("Canonicalize", func(t *testing.T) {
		canonicalizer := NewCanonicalizer()

		assert.Equal(t, "A1", canonicalizer.Canonicalize("a1"))
		assert.Equal(t, "A1", canonicalizer.Canonicalize("A1"))
		assert.Equal(t, "A1", canonicalizer.Canonicalize(" a1 "))
		assert.Equal(t, "TOTAL_SPEED", canonicalizer.Canonicalize("total_speed"))
		assert.Equal(t, "", canonicalizer.Canonicalize("  "))
	})
}
