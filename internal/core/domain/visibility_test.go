package domain_test

import (
	"testing"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestVisibilityScope_Contains(t *testing.T) {
	unrestricted := domain.ScopeAll()
	assert.True(t, unrestricted.Contains("anyone"))
	assert.True(t, unrestricted.Contains(""))

	scoped := domain.ScopeOwners("u1", "u2")
	assert.True(t, scoped.Contains("u1"))
	assert.True(t, scoped.Contains("u2"))
	assert.False(t, scoped.Contains("u3"))

	// An empty scope matches nothing: broken hierarchy resolution must never
	// widen visibility.
	empty := domain.ScopeOwners()
	assert.False(t, empty.Contains("u1"))
}
