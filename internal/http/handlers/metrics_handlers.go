package handlers

import (
	"net/http"
	"sort"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics over the synced movements
// @Tags metrics
// @Produce json
// @Param start query string false "First day (yyyy-MM-dd)"
// @Param end query string false "Last day (yyyy-MM-dd)"
// @Success 200 {object} DashboardMetrics
// @Failure 400 {string} string "Invalid input"
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}

	all := syncer.Movements()
	inRange := filteredMovements(rng)

	m := DashboardMetrics{
		TotalMovements: len(all),
		InRange:        len(inRange),
		ByStatus:       []StatusCount{},
	}
	counts := map[string]int{}
	for _, mv := range inRange {
		if mv.HasPhoto() {
			m.WithPhoto++
		}
		counts[mv.Status]++
	}
	for status, count := range counts {
		m.ByStatus = append(m.ByStatus, StatusCount{Status: status, Count: count})
	}
	sort.Slice(m.ByStatus, func(i, j int) bool {
		if m.ByStatus[i].Count != m.ByStatus[j].Count {
			return m.ByStatus[i].Count > m.ByStatus[j].Count
		}
		return m.ByStatus[i].Status < m.ByStatus[j].Status
	})

	respondJSON(w, http.StatusOK, m)
}
