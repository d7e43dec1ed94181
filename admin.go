package devopsite

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
)

const dashboardWindow = 30 * 24 * time.Hour

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	a.loginLimiter.Record(ip)
	a.logger.Warn().Str("ip", ip).Msg("failed admin login")
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// handleAdminReload re-reads the content tree. A failed reload leaves the
// current snapshot serving and reports the error on the dashboard.
func (a *App) handleAdminReload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	msg := "Content reloaded."
	if err := a.Content.Reload(); err != nil {
		msg = "Reload failed: " + err.Error()
	}
	return c.Redirect(http.StatusSeeOther, "/admin?msg="+url.QueryEscape(msg))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	lib := a.Content.Library()
	ctx := c.Request().Context()
	data := DashboardData{
		SiteName:         a.Config.Name,
		Stats:            lib.Stats(a.signals(ctx), a.Config.RecentCount),
		AnalyticsEnabled: a.analyticsStore != nil,
		Status:           a.Content.Status(),
		Message:          msg,
		CSRFToken:        CsrfToken(c),
	}
	for _, p := range lib.AllPosts() {
		if p.Draft {
			data.Drafts = append(data.Drafts, p)
		}
	}
	if a.analyticsStore != nil {
		now := a.now()
		top, err := a.analyticsStore.TopPosts(ctx, now.Add(-dashboardWindow), 10)
		if err != nil {
			a.logger.Warn().Err(err).Msg("dashboard top posts")
		}
		daily, err := a.analyticsStore.DailyViews(ctx, now.Add(-dashboardWindow), now)
		if err != nil {
			a.logger.Warn().Err(err).Msg("dashboard daily views")
		}
		data.TopPosts, data.DailyViews = top, daily
	}
	return Render(c, a.Views.AdminDashboard(data))
}
