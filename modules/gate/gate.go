// Package gate implements the optional pre-launch password wall. When a
// site password is configured every page request must carry a signed
// access cookie; API routes and the health endpoint stay reachable so
// monitoring and the form itself keep working.
package gate

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"embed"
	"encoding/hex"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oddlzenie/intake/pkg/cookie"
	"github.com/oddlzenie/intake/pkg/logger"
)

//go:embed templates/prompt.html
var templateFS embed.FS

var promptTemplate = template.Must(template.ParseFS(templateFS, "templates/prompt.html"))

const (
	cookieName  = "oddlzenie_access"
	cookieValue = "granted"
)

// Config controls the password wall. An empty SitePassword disables the
// gate entirely.
type Config struct {
	SitePassword  string        `env:"SITE_PASSWORD"`                        // Empty disables the gate.
	CookieSecret  string        `env:"GATE_COOKIE_SECRET"`                   // Signing secret; derived from the password when unset.
	CookieTTL     time.Duration `env:"GATE_COOKIE_TTL" envDefault:"168h"`    // How long one successful unlock lasts.
	SecureCookies bool          `env:"GATE_SECURE_COOKIES" envDefault:"false"` // Set behind TLS.
}

// Gate holds the configured password wall.
type Gate struct {
	cfg     Config
	cookies *cookie.Manager
	log     *slog.Logger
}

// New creates a Gate. With no site password the returned gate is a no-op.
// With no explicit cookie secret the signing key is derived from the
// password, so rotating the password invalidates outstanding grants.
func New(cfg Config, log *slog.Logger) (*Gate, error) {
	g := &Gate{cfg: cfg, log: log}
	if cfg.SitePassword == "" {
		return g, nil
	}

	secret := cfg.CookieSecret
	if secret == "" {
		sum := sha256.Sum256([]byte(cfg.SitePassword))
		secret = hex.EncodeToString(sum[:])
	}

	cookies, err := cookie.New([]string{secret}, cookie.WithSecure(cfg.SecureCookies))
	if err != nil {
		return nil, err
	}
	g.cookies = cookies
	return g, nil
}

// Enabled reports whether a site password is configured.
func (g *Gate) Enabled() bool {
	return g.cfg.SitePassword != ""
}

// Middleware blocks page requests without a valid access grant, serving
// the password prompt in their place. API and health routes pass through
// untouched.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	if !g.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.bypassed(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if value, err := g.cookies.GetSigned(r, cookieName); err == nil && value == cookieValue {
			next.ServeHTTP(w, r)
			return
		}

		g.renderPrompt(w, r, promptData{Redirect: sanitizeRedirect(r.URL.Path)}, http.StatusOK)
	})
}

// VerifyHandler checks the submitted password and grants access via a
// signed cookie. Mount it under a bypassed path so locked-out visitors can
// reach it.
func (g *Gate) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	if !g.Enabled() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		g.renderPrompt(w, r, promptData{Redirect: "/", Error: "Nesprávne heslo. Skúste znova."}, http.StatusBadRequest)
		return
	}

	password := r.PostFormValue("password")
	redirect := sanitizeRedirect(r.PostFormValue("redirect"))

	if subtle.ConstantTimeCompare([]byte(password), []byte(g.cfg.SitePassword)) != 1 {
		g.log.WarnContext(r.Context(), "gate password rejected")
		g.renderPrompt(w, r, promptData{Redirect: redirect, Error: "Nesprávne heslo. Skúste znova."}, http.StatusUnauthorized)
		return
	}

	g.cookies.SetSigned(w, cookieName, cookieValue, cookie.WithMaxAge(int(g.cfg.CookieTTL.Seconds())))
	g.log.InfoContext(r.Context(), "gate access granted")
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

type promptData struct {
	Redirect string
	Error    string
}

func (g *Gate) renderPrompt(w http.ResponseWriter, r *http.Request, data promptData, status int) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		g.log.ErrorContext(r.Context(), "prompt render failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// bypassed paths stay reachable without a grant: the API the form posts
// to, the verify endpoint itself, and health monitoring.
func (g *Gate) bypassed(path string) bool {
	return path == "/health" || path == "/api" || strings.HasPrefix(path, "/api/")
}

// sanitizeRedirect confines the post-unlock redirect to same-site paths.
// Anything absolute, scheme-relative, or malformed falls back to "/".
func sanitizeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") {
		return "/"
	}
	if strings.HasPrefix(target, "//") || strings.ContainsAny(target, "\\\r\n") {
		return "/"
	}
	return target
}
