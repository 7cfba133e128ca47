package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amit-sw/ChatAuthenticated/internal/domain"
)

func verifiedUser(email string) domain.User {
	return domain.User{
		ID:    "u-1",
		Email: email,
		UserMetadata: map[string]any{
			"email_verified": true,
			"name":           "Test User",
			"picture":        "https://img.test/u-1.png",
		},
	}
}

func TestRoute_RoleMapping(t *testing.T) {
	cases := []struct {
		name     string
		record   *domain.AuthorizedUser
		wantKind ViewKind
		wantRole domain.Role
	}{
		{"superadmin", &domain.AuthorizedUser{Email: "user@x.com", Role: "superadmin"}, ViewDashboard, domain.RoleSuperAdmin},
		{"admin", &domain.AuthorizedUser{Email: "user@x.com", Role: "admin"}, ViewDashboard, domain.RoleAdmin},
		{"user", &domain.AuthorizedUser{Email: "user@x.com", Role: "user"}, ViewDashboard, domain.RoleUser},
		{"guest", &domain.AuthorizedUser{Email: "user@x.com", Role: "guest"}, ViewGuest, domain.RoleGuest},
		{"missing record", nil, ViewGuest, domain.RoleGuest},
		{"empty role field", &domain.AuthorizedUser{Email: "user@x.com", Role: ""}, ViewGuest, domain.RoleGuest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeRoleStore{record: tc.record}
			router := NewRouter(store, zap.NewNop())

			view, err := router.Route(context.Background(), verifiedUser("user@x.com"))
			require.NoError(t, err)
			require.Equal(t, tc.wantKind, view.Kind)
			require.Equal(t, tc.wantRole, view.Role)
			require.Equal(t, "user@x.com", view.Sidebar.Email)
		})
	}
}

func TestRoute_NavSetsDifferPerRole(t *testing.T) {
	ctx := context.Background()
	user := verifiedUser("user@x.com")

	super, err := NewRouter(&fakeRoleStore{record: &domain.AuthorizedUser{Role: "superadmin"}}, nil).Route(ctx, user)
	require.NoError(t, err)
	admin, err := NewRouter(&fakeRoleStore{record: &domain.AuthorizedUser{Role: "admin"}}, nil).Route(ctx, user)
	require.NoError(t, err)
	core, err := NewRouter(&fakeRoleStore{record: &domain.AuthorizedUser{Role: "user"}}, nil).Route(ctx, user)
	require.NoError(t, err)

	require.NotEmpty(t, super.Nav)
	require.NotEmpty(t, admin.Nav)
	require.NotEmpty(t, core.Nav)
	require.NotEqual(t, super.Nav[0].Title, admin.Nav[0].Title)
	require.NotEqual(t, admin.Nav[0].Title, core.Nav[0].Title)
}

func TestRoute_UnknownRoleNamesTheValue(t *testing.T) {
	store := &fakeRoleStore{record: &domain.AuthorizedUser{Email: "user@x.com", Role: "editor"}}
	router := NewRouter(store, zap.NewNop())

	view, err := router.Route(context.Background(), verifiedUser("user@x.com"))
	require.NoError(t, err)
	require.Equal(t, ViewUnknownRole, view.Kind)
	require.Equal(t, "editor", view.RawRole)
}

func TestRoute_VerificationGatePrecedesLookup(t *testing.T) {
	store := &fakeRoleStore{record: &domain.AuthorizedUser{Role: "superadmin"}}
	router := NewRouter(store, zap.NewNop())

	user := domain.User{
		ID:           "u-1",
		Email:        "user@x.com",
		UserMetadata: map[string]any{"email_verified": false},
	}
	view, err := router.Route(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, ViewUnverified, view.Kind)
	require.Zero(t, store.lookupCalls, "unverified users must not trigger a role lookup")
}

func TestRoute_LookupFailureAssumesNoRole(t *testing.T) {
	store := &fakeRoleStore{err: errors.New("connection refused")}
	router := NewRouter(store, zap.NewNop())

	_, err := router.Route(context.Background(), verifiedUser("user@x.com"))
	require.ErrorIs(t, err, domain.ErrRoleLookup)
}

func TestFindPage(t *testing.T) {
	view := View{Nav: adminNav}

	group, page, ok := view.FindPage("admin-4", "page-5")
	require.True(t, ok)
	require.Equal(t, "Admin Group 4", group.Title)
	require.Equal(t, "Page 5", page.Title)

	_, _, ok = view.FindPage("super-1", "page-1")
	require.False(t, ok, "pages outside the role's nav set must not resolve")
}

type fakeRoleStore struct {
	record      *domain.AuthorizedUser
	err         error
	lookupCalls int
}

func (f *fakeRoleStore) Lookup(context.Context, string) (*domain.AuthorizedUser, error) {
	f.lookupCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}
