package auth

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/mind-engage/campusmate/internal/rbac"
)

// AttachRoleFromDB replaces the token role with the stored one so role changes
// take effect before the token expires. Unknown subjects are rejected.
func AttachRoleFromDB(db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var role string
			err := db.QueryRowContext(ctx, `SELECT role FROM users WHERE id=$1`, SubjectFromContext(ctx)).Scan(&role)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "forbidden", http.StatusForbidden)
			case err != nil:
				http.Error(w, "db error", http.StatusInternalServerError)
			default:
				next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, role)))
			}
		})
	}
}
