package shield

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// BasicAuth returns middleware that requires HTTP basic auth with a
// password matching the given bcrypt hash. The username is ignored; this
// guards a single-operator local surface, not a user system. An empty
// hash disables the check.
func BasicAuth(passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if passwordHash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, pass, ok := r.BasicAuth()
			if !ok || bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pass)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="domdrive"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
