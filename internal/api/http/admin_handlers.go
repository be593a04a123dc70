package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/campusmate/internal/logger"
	"github.com/mind-engage/campusmate/internal/rbac"
	"github.com/mind-engage/campusmate/internal/records"
)

// POST /admin/records/import[?replace=true]
// Accepts a multipart file= (CSV or JSON array) or a raw JSON array body.
// When reload is set the served store is reloaded from SQL afterwards.
func ImportRecordsHandler(db *sql.DB, data *records.Live, reload bool, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []records.Record
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			f, _, err := r.FormFile("file")
			if err != nil {
				http.Error(w, "file required", http.StatusBadRequest)
				return
			}
			defer f.Close()
			rs, err := readRecords(f)
			if err != nil {
				http.Error(w, "bad file: "+err.Error(), http.StatusBadRequest)
				return
			}
			rows = rs
		} else if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			http.Error(w, "expected JSON array or multipart file", http.StatusBadRequest)
			return
		}
		if len(rows) == 0 {
			writeJSON(w, http.StatusOK, map[string]any{"imported": 0})
			return
		}

		replace := r.URL.Query().Get("replace") == "true"
		n, err := records.Import(r.Context(), db, rows, replace)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		out := map[string]any{"imported": n, "replaced": replace}
		if reload {
			s, err := data.Reload(r.Context())
			if err != nil {
				log.Error("reload after import failed", "error", err)
				http.Error(w, "imported but reload failed", http.StatusInternalServerError)
				return
			}
			out["records"] = s.Len()
		}
		log.Info("records imported", "count", n, "replace", replace)
		writeJSON(w, http.StatusOK, out)
	}
}

// readRecords sniffs CSV vs JSON by the first non-space byte.
func readRecords(f io.Reader) ([]records.Record, error) {
	body, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, errors.New("empty file")
	}
	if trimmed[0] == '[' {
		var rows []records.Record
		if err := json.Unmarshal([]byte(trimmed), &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	return records.ParseCSV(strings.NewReader(trimmed))
}

// POST /admin/users/{email}/role  { "role": "counselor" }
func UpdateUserRoleHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "email")))
		if email == "" {
			http.Error(w, "missing email", http.StatusBadRequest)
			return
		}
		var req struct {
			Role string `json:"role"`
		}
		if !decode(w, r, &req) {
			return
		}
		role := strings.ToLower(strings.TrimSpace(req.Role))
		if !rbac.KnownRole(role) {
			http.Error(w, "invalid role", http.StatusBadRequest)
			return
		}

		var curRole string
		err := db.QueryRowContext(r.Context(), `SELECT role FROM users WHERE email=$1`, email).Scan(&curRole)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		// never demote the last admin
		if curRole == rbac.RoleAdmin && role != rbac.RoleAdmin {
			var admins int
			if err := db.QueryRowContext(r.Context(),
				`SELECT COUNT(1) FROM users WHERE role=$1`, rbac.RoleAdmin).Scan(&admins); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if admins <= 1 {
				http.Error(w, "cannot demote the last admin", http.StatusBadRequest)
				return
			}
		}

		if _, err := db.ExecContext(r.Context(), `UPDATE users SET role=$1 WHERE email=$2`, role, email); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
