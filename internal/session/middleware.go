package session

import (
	"context"
	"net/http"
)

type contextKey struct{}

// FromContext returns the session placed on the request by Ensure.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}

// Ensure guarantees every request runs with a session, issuing an anonymous
// one when the browser presents no valid cookie. Handlers downstream can
// rely on FromContext returning a non-nil session.
func (m *Manager) Ensure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Resolve(r.Context(), r)
		if err != nil {
			id, issueErr := m.Issue(r.Context(), w, Identity{})
			if issueErr != nil {
				http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
				return
			}
			s = &Session{ID: id}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, s)))
	})
}

// RequireUser redirects anonymous requests to the login page with a
// warning notice.
func (m *Manager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := FromContext(r.Context())
		if !s.Authenticated() {
			m.Flash(r.Context(), sessionIDOf(s), NoticeWarning, "Debes iniciar sesión para acceder.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole guards privileged routes. A role mismatch is answered with a
// denial notice and a redirect to the dashboard, never a bare error page.
func (m *Manager) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := FromContext(r.Context())
			if !s.Authenticated() {
				m.Flash(r.Context(), sessionIDOf(s), NoticeWarning, "Debes iniciar sesión para acceder.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if s.Identity.Role != role {
				m.Flash(r.Context(), s.ID, NoticeDanger, "No tienes permiso para realizar esta acción.")
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionIDOf(s *Session) string {
	if s == nil {
		return ""
	}
	return s.ID
}
