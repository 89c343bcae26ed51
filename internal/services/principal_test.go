package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePrincipal(t *testing.T) {
	cases := []struct {
		name    string
		user    models.User
		role    services.Role
		active  bool
		wantErr error
	}{
		{"active notary", models.User{ID: 1, IsNotary: true, IsActiveNotary: true}, services.RoleNotary, true, nil},
		{"pending notary", models.User{ID: 2, IsNotary: true}, services.RoleNotary, false, nil},
		{"employee", models.User{ID: 3, IsEmployee: true, IsActiveEmployee: true}, services.RoleEmployee, false, nil},
		{"super", models.User{ID: 4, IsEmployee: true, IsActiveEmployee: true, IsSuper: true}, services.RoleSuper, false, nil},
		{"revoked employee", models.User{ID: 5, IsEmployee: true}, 0, false, services.ErrRevokedEmployee},
		{"both tracks", models.User{ID: 6, IsNotary: true, IsEmployee: true, IsActiveEmployee: true}, 0, false, services.ErrRoleInvariant},
		{"super notary", models.User{ID: 7, IsNotary: true, IsSuper: true}, 0, false, services.ErrRoleInvariant},
		{"no track", models.User{ID: 8}, 0, false, services.ErrRoleInvariant},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := services.DerivePrincipal(&tc.user)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.user.ID, p.ID)
			assert.Equal(t, tc.role, p.Role)
			assert.Equal(t, tc.active, p.IsActiveNotary())
		})
	}
}

func TestPrincipalFlags(t *testing.T) {
	super := services.Principal{ID: 1, Role: services.RoleSuper}
	assert.True(t, super.IsEmployee())
	assert.True(t, super.IsSuper())
	assert.False(t, super.IsNotary())
	assert.Empty(t, super.Flags().Violations())

	notary := services.Principal{ID: 2, Role: services.RoleNotary, ActiveNotary: true}
	assert.True(t, notary.IsActiveNotary())
	assert.False(t, notary.IsEmployee())
	assert.Equal(t, "notary", notary.Role.String())

	// an active flag never leaks onto a non-notary
	employee := services.Principal{ID: 3, Role: services.RoleEmployee, ActiveNotary: true}
	assert.False(t, employee.IsActiveNotary())
}

func TestStorePrincipalsSeesRevocationImmediately(t *testing.T) {
	ctx := context.Background()
	users := repository.New[models.User](testutil.NewDB(t))
	resolver := services.NewStorePrincipals(users)

	employee := &models.User{
		Email: "e@notary.test", FirstName: "E", LastName: "Mp", PhoneNumber: "555", Password: "x",
		IsEmployee: true, IsActiveEmployee: true,
	}
	require.NoError(t, users.Create(ctx, employee))

	p, err := resolver.Resolve(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, services.RoleEmployee, p.Role)

	_, err = users.Update(ctx, map[string]any{"is_active_employee": false}, repository.Predicate{"id": employee.ID})
	require.NoError(t, err)

	_, err = resolver.Resolve(ctx, employee.ID)
	assert.ErrorIs(t, err, services.ErrRevokedEmployee)

	_, err = resolver.Resolve(ctx, employee.ID+1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
