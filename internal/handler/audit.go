package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/viajastore/backend/internal/audit"
)

// GetSlugAudit handles GET /admin/slugs/audit.
// ?format=json (default) returns the structured result, text the
// human-readable report, csv one row per finding.
func (s *Server) GetSlugAudit(w http.ResponseWriter, r *http.Request) {
	format, err := queryString(r, "format", false)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	switch format {
	case "", "json", "text", "csv":
	default:
		badRequest(w, "format must be one of json, text, csv")
		return
	}

	result, err := s.audits.Run(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	switch format {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(audit.Report(result)))
	case "csv":
		var buf bytes.Buffer
		if err := audit.WriteCSV(&buf, result); err != nil {
			s.writeError(w, r, err, "")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="slug-audit.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	default:
		writeJSON(w, http.StatusOK, result)
	}
}
