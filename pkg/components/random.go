package components

import (
	"math/rand/v2"

	"github.com/aretw0/skilltree/pkg/domain"
)

func randFloat(c *domain.Cast) float64 {
	if c.Rand != nil {
		return c.Rand.Float64()
	}
	return rand.Float64()
}

func intN(c *domain.Cast, n int) int {
	if c.Rand != nil {
		return c.Rand.IntN(n)
	}
	return rand.IntN(n)
}
