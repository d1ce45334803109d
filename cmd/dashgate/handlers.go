package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/paylens/dashgate/core/kpi"
	"github.com/paylens/dashgate/core/logger"
	"github.com/paylens/dashgate/middleware"
)

type kpiResponse struct {
	Data     *kpi.Dataset `json:"data"`
	Error    string       `json:"error,omitempty"`
	IsValid  bool         `json:"isValid"`
	Redirect string       `json:"redirect,omitempty"`
}

// handleKPI serves the dashboard's KPI dataset for the requesting company.
// The company identity comes from the header the route guard attached after
// its local check; the fetcher re-validates the session remotely before any
// data is read.
func handleKPI(fetcher *kpi.Fetcher, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID := r.Header.Get(middleware.HeaderCompanyID)
		period := r.URL.Query().Get("period")

		res := fetcher.Fetch(r.Context(), companyID, period)

		resp := kpiResponse{Data: res.Data, IsValid: res.IsValid()}
		status := http.StatusOK

		switch {
		case res.Unauthorized:
			status = http.StatusUnauthorized
			resp.Error = res.Err.Error()
			resp.Redirect = "/login"
		case res.Err != nil:
			status = http.StatusBadGateway
			resp.Error = res.Err.Error()
			log.ErrorContext(r.Context(), "kpi fetch failed",
				logger.Component("api"), logger.Error(res.Err),
				"company_id", companyID, "period", period)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.ErrorContext(r.Context(), "failed to encode response", logger.Error(err))
		}
	}
}
