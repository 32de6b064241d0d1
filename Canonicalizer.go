package main

import (
	"strings"
)

// Canonicalizer folds cell ids to one canonical spelling so `a1` and
// `A1` address the same cell. Unit symbols never pass through here; the
// library resolves them case-insensitively on its own.
type Canonicalizer struct{}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{}
}

func (c *Canonicalizer) Canonicalize(cellId string) string {
	return strings.ToUpper(strings.TrimSpace(cellId))
}
