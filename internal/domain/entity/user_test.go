package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

func TestIsValidRole(t *testing.T) {
	for _, r := range []string{entity.RoleAdmin, entity.RoleManager, entity.RoleStaff, entity.RoleViewer} {
		assert.True(t, entity.IsValidRole(r), r)
	}
	assert.False(t, entity.IsValidRole(""))
	assert.False(t, entity.IsValidRole("ADMIN"))
	assert.False(t, entity.IsValidRole("owner"))
}
