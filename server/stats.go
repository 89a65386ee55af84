package server

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pressgen/analytics"
	"github.com/eringen/pressgen/views"
)

func (s *Server) handleStats(c echo.Context) error {
	if !isStatsUser(c) {
		return renderHTML(c, http.StatusOK, views.StatsLogin(s.site(), false, csrfToken(c)))
	}
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)
	sum, err := s.store.Summarize(from, to, 20)
	if err != nil {
		return err
	}
	return renderHTML(c, http.StatusOK, views.StatsDashboard(s.site(), toViewSummary(sum), csrfToken(c)))
}

func (s *Server) handleStatsLogin(c echo.Context) error {
	ip := c.RealIP()
	if !s.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(s.Config.StatsPassword)) == 1 {
		if err := setStatsSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/stats/")
	}
	s.loginLimiter.Record(ip)
	return renderHTML(c, http.StatusOK, views.StatsLogin(s.site(), true, csrfToken(c)))
}

func handleStatsLogout(c echo.Context) error {
	if err := clearStatsSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/stats/")
}

func toViewSummary(sum *analytics.Summary) views.StatsSummary {
	out := views.StatsSummary{
		TotalVisits:    sum.TotalVisits,
		UniqueVisitors: sum.UniqueVisitors,
	}
	for _, p := range sum.TopPages {
		out.TopPages = append(out.TopPages, views.PathCount{Path: p.Path, Count: p.Count})
	}
	for _, d := range sum.Days {
		out.Days = append(out.Days, views.DayCount{Day: d.Day, Count: d.Count})
	}
	return out
}

// renderHTML writes a templ component as an HTML response.
func renderHTML(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}
