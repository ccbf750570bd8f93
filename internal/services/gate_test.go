package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fleet_tracker/internal/apperrors"
	"fleet_tracker/internal/models"
)

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role   string
		owner  bool
		police bool
	}{
		{models.RoleIndividual, true, false},
		{models.RoleCompany, true, false},
		{models.RolePolice, false, true},
		{"admin", false, false},
		{"", false, false},
	}
	for _, tc := range cases {
		owner, police := RoleCapabilities(tc.role)
		assert.Equal(t, tc.owner, owner, "ownerCapable for %q", tc.role)
		assert.Equal(t, tc.police, police, "policeCapable for %q", tc.role)
	}
}

func TestAuthorize(t *testing.T) {
	t.Run("nil session is unauthorized", func(t *testing.T) {
		_, err := Authorize(nil, CapabilityOwner)
		assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	})

	t.Run("zero id is unauthorized", func(t *testing.T) {
		_, err := Authorize(&Requester{Role: models.RoleCompany}, CapabilityOwner)
		assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	})

	t.Run("operators get owner capability only", func(t *testing.T) {
		r := &Requester{ID: 1, Name: "John Doe", Role: models.RoleIndividual}
		got, err := Authorize(r, CapabilityOwner)
		assert.NoError(t, err)
		assert.Equal(t, r, got)

		_, err = Authorize(r, CapabilityPolice)
		assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	})

	t.Run("police get police capability only", func(t *testing.T) {
		r := &Requester{ID: 2, Name: "Officer", Role: models.RolePolice}
		_, err := Authorize(r, CapabilityPolice)
		assert.NoError(t, err)

		_, err = Authorize(r, CapabilityOwner)
		assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	})

	t.Run("unknown role holds nothing", func(t *testing.T) {
		r := &Requester{ID: 3, Role: "commuter"}
		_, err := Authorize(r, CapabilityOwner)
		assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
		_, err = Authorize(r, CapabilityPolice)
		assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	})
}
