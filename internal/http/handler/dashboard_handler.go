package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amit-sw/ChatAuthenticated/internal/config"
	"github.com/amit-sw/ChatAuthenticated/internal/domain"
	"github.com/amit-sw/ChatAuthenticated/internal/http/middleware"
	"github.com/amit-sw/ChatAuthenticated/internal/service/roles"
	"github.com/amit-sw/ChatAuthenticated/internal/service/session"
)

// DashboardHandler drives the render cycle: complete any pending OAuth
// callback, then show the page the session + role state machine selects.
type DashboardHandler struct {
	cfg      config.Config
	sessions *session.Manager
	router   *roles.Router
	logger   *zap.Logger
}

// NewDashboardHandler creates the handler set.
func NewDashboardHandler(cfg config.Config, sessions *session.Manager, router *roles.Router, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &DashboardHandler{cfg: cfg, sessions: sessions, router: router, logger: logger}
}

type loginData struct {
	Title    string
	LoginURL string
	Notice   string
	Error    string
}

type dashboardData struct {
	Title       string
	Sidebar     roles.Sidebar
	Nav         []roles.NavGroup
	PageTitle   string
	SessionJSON string
}

type pageData struct {
	Title   string
	Sidebar roles.Sidebar
	Email   string
	Role    string
	Message string
	Notice  string
}

// Index is the OAuth redirect target and the render-cycle entry point.
func (h *DashboardHandler) Index(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	ctx := c.Request.Context()

	result, err := h.sessions.HandleCallback(ctx, sessionID, c.Request.URL.Query())
	if err != nil {
		h.logger.Warn("oauth callback failed", zap.Error(err))
		if errors.Is(err, domain.ErrCallback) {
			h.renderLogin(c, loginData{Error: fmt.Sprintf("Could not exchange auth code: %v", err)})
			return
		}
		// Session-store trouble, not a bad code: keep the backend detail
		// out of the page.
		c.HTML(http.StatusInternalServerError, "error", pageData{Title: "Error", Message: "Could not load your session."})
		return
	}
	if result.ErrorDescription != "" {
		h.renderLogin(c, loginData{Error: result.ErrorDescription})
		return
	}
	if result.ClearParams {
		// Redirect to a clean URL so a refresh cannot replay the code.
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		return
	}

	h.renderCycle(c, "", "")
}

// Page renders one placeholder dashboard page. The full state machine runs
// again so role changes take effect immediately.
func (h *DashboardHandler) Page(c *gin.Context) {
	h.renderCycle(c, c.Param("group"), c.Param("page"))
}

// Logout signs out and returns to the login screen.
func (h *DashboardHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
		h.logger.Warn("logout failed", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Health is a liveness probe.
func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *DashboardHandler) renderCycle(c *gin.Context, groupSlug, pageSlug string) {
	sessionID := middleware.SessionID(c)
	ctx := c.Request.Context()

	sess, err := h.sessions.Session(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionExpired) {
		h.renderLogin(c, loginData{Notice: "Session expired. Please sign in again."})
		return
	}
	if err != nil {
		h.logger.Error("load session", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error", pageData{Title: "Error", Message: "Could not load your session."})
		return
	}
	if sess == nil {
		h.renderLogin(c, loginData{})
		return
	}

	view, err := h.router.Route(ctx, sess.User)
	if err != nil {
		h.logger.Error("role lookup", zap.Error(err))
		c.HTML(http.StatusBadGateway, "error", pageData{Title: "Error", Message: "Could not connect to Supabase."})
		return
	}

	switch view.Kind {
	case roles.ViewUnverified:
		c.HTML(http.StatusOK, "unverified", pageData{Title: "Verification required", Sidebar: view.Sidebar})
	case roles.ViewGuest:
		c.HTML(http.StatusOK, "guest", pageData{Title: "Guest Access", Email: sess.User.Email})
	case roles.ViewUnknownRole:
		c.HTML(http.StatusOK, "unknown_role", pageData{Title: "Unknown role", Role: view.RawRole})
	case roles.ViewDashboard:
		h.renderDashboard(c, sess, view, groupSlug, pageSlug)
	default:
		c.HTML(http.StatusInternalServerError, "error", pageData{Title: "Error", Message: "Unhandled view."})
	}
}

func (h *DashboardHandler) renderDashboard(c *gin.Context, sess *domain.Session, view roles.View, groupSlug, pageSlug string) {
	pageTitle := ""
	if groupSlug == "" && pageSlug == "" {
		if len(view.Nav) > 0 && len(view.Nav[0].Pages) > 0 {
			pageTitle = view.Nav[0].Pages[0].Title
		}
	} else {
		_, page, ok := view.FindPage(groupSlug, pageSlug)
		if !ok {
			c.HTML(http.StatusNotFound, "error", pageData{Title: "Not found", Message: "That page is not in your navigation."})
			return
		}
		pageTitle = page.Title
	}

	c.HTML(http.StatusOK, "dashboard", dashboardData{
		Title:       pageTitle,
		Sidebar:     view.Sidebar,
		Nav:         view.Nav,
		PageTitle:   pageTitle,
		SessionJSON: sessionJSON(sess),
	})
}

func (h *DashboardHandler) renderLogin(c *gin.Context, data loginData) {
	data.Title = "Sign in"
	loginURL, err := h.sessions.LoginURL(h.cfg.RedirectURL)
	if err != nil {
		h.logger.Warn("login url", zap.Error(err))
		if data.Error == "" {
			data.Error = fmt.Sprintf("Unable to create Google login link: %v", err)
		}
	} else {
		data.LoginURL = loginURL
	}
	c.HTML(http.StatusOK, "login", data)
}

func sessionJSON(sess *domain.Session) string {
	// Tokens are redacted: the details view is about shape, not secrets.
	redacted := *sess
	redacted.AccessToken = redact(redacted.AccessToken)
	redacted.RefreshToken = redact(redacted.RefreshToken)
	pretty, err := json.MarshalIndent(redacted, "", "  ")
	if err != nil {
		return ""
	}
	return string(pretty)
}

func redact(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
