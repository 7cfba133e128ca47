package roles

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/amit-sw/ChatAuthenticated/internal/domain"
	"github.com/amit-sw/ChatAuthenticated/internal/repository"
)

// ViewKind identifies which page variant a render cycle should show.
type ViewKind int

const (
	// ViewUnverified asks the user to log in with a verified email.
	ViewUnverified ViewKind = iota
	// ViewDashboard shows the role-specific navigation.
	ViewDashboard
	// ViewGuest shows the static no-access page.
	ViewGuest
	// ViewUnknownRole reports a role value outside the recognized set.
	ViewUnknownRole
)

// Sidebar carries the identity summary rendered above every dashboard.
type Sidebar struct {
	Name          string
	Email         string
	AvatarURL     string
	EmailVerified bool
}

// View is the outcome of one routing decision. Returning a value instead of
// rendering directly keeps the router pure: the HTTP layer decides what
// "stop rendering" means.
type View struct {
	Kind    ViewKind
	Role    domain.Role
	RawRole string
	Sidebar Sidebar
	Nav     []NavGroup
}

// Router gates on email verification, resolves the user's role, and picks
// the matching view. State is recomputed on every call; a role change in the
// backend takes effect on the very next render.
type Router struct {
	roles  repository.RoleStore
	logger *zap.Logger
}

// NewRouter wires the role router.
func NewRouter(roles repository.RoleStore, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.L()
	}
	return &Router{roles: roles, logger: logger}
}

// Route maps an authenticated user onto a view. The verification gate runs
// before any backend call: an unverified user never triggers a role lookup.
// A lookup failure returns an error classed ErrRoleLookup and no view; no
// role is ever assumed on connectivity problems.
func (r *Router) Route(ctx context.Context, user domain.User) (View, error) {
	sidebar := Sidebar{
		Name:          user.Name(),
		Email:         user.Email,
		AvatarURL:     user.Picture(),
		EmailVerified: user.EmailVerified(),
	}

	if !user.EmailVerified() {
		return View{Kind: ViewUnverified, Sidebar: sidebar}, nil
	}

	record, err := r.roles.Lookup(ctx, user.Email)
	if err != nil {
		return View{}, fmt.Errorf("%w: %v", domain.ErrRoleLookup, err)
	}

	// No row, or a row with an empty role field, reads as guest.
	rawRole := string(domain.RoleGuest)
	if record != nil && strings.TrimSpace(record.Role) != "" {
		rawRole = record.Role
	}

	role, ok := domain.ParseRole(rawRole)
	if !ok {
		r.logger.Warn("unknown role in authorized_users",
			zap.String("email", user.Email),
			zap.String("role", rawRole),
		)
		return View{Kind: ViewUnknownRole, RawRole: rawRole, Sidebar: sidebar}, nil
	}

	switch role {
	case domain.RoleSuperAdmin:
		return View{Kind: ViewDashboard, Role: role, Sidebar: sidebar, Nav: superAdminNav}, nil
	case domain.RoleAdmin:
		return View{Kind: ViewDashboard, Role: role, Sidebar: sidebar, Nav: adminNav}, nil
	case domain.RoleUser:
		return View{Kind: ViewDashboard, Role: role, Sidebar: sidebar, Nav: coreNav}, nil
	default:
		return View{Kind: ViewGuest, Role: domain.RoleGuest, Sidebar: sidebar}, nil
	}
}

// FindPage resolves a navigation slug pair against a view's nav set.
func (v View) FindPage(groupSlug, pageSlug string) (NavGroup, Page, bool) {
	for _, group := range v.Nav {
		if group.Slug != groupSlug {
			continue
		}
		for _, page := range group.Pages {
			if page.Slug == pageSlug {
				return group, page, true
			}
		}
	}
	return NavGroup{}, Page{}, false
}
