package metrics

import (
	"time"
)

// RecordRecommendationRequest records the outcome of a recommendation request.
// Status should be "success", "partial", or "failure". A request is partial
// when some templates were dropped but at least one recommendation survived.
func RecordRecommendationRequest(status string, duration time.Duration) {
	RecommendationRequestsTotal.WithLabelValues(status).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordSlotMatch records a single slot match decision.
func RecordSlotMatch(clothingType string, matched bool) {
	status := "matched"
	if !matched {
		status = "unmatched"
	}
	SlotMatchesTotal.WithLabelValues(clothingType, status).Inc()
}

// RecordTemplateFailed records a template dropped from a recommendation response.
// Reason should describe the failure class (e.g., "oracle_error", "invalid_template").
func RecordTemplateFailed(reason string) {
	TemplatesFailedTotal.WithLabelValues(reason).Inc()
}

// RecordOracleQuery records the duration of a nearest-neighbour query.
func RecordOracleQuery(clothingType string, duration time.Duration) {
	OracleQueryDuration.WithLabelValues(clothingType).Observe(duration.Seconds())
}

// RecordOracleQueryError records a failed nearest-neighbour query.
func RecordOracleQueryError(clothingType, errorType string) {
	OracleQueryErrors.WithLabelValues(clothingType, errorType).Inc()
}

// RecordSuggestionLookupSuccess records a successful substitute lookup.
func RecordSuggestionLookupSuccess(duration time.Duration) {
	SuggestionLookupsTotal.WithLabelValues("success").Inc()
	SuggestionLookupDuration.Observe(duration.Seconds())
}

// RecordSuggestionLookupFailed records a failed substitute lookup.
func RecordSuggestionLookupFailed(duration time.Duration) {
	SuggestionLookupsTotal.WithLabelValues("failure").Inc()
	SuggestionLookupDuration.Observe(duration.Seconds())
}

// RecordSuggestionLookupSkipped records a lookup that was skipped.
// This happens when suggestions are disabled or the circuit is open.
func RecordSuggestionLookupSkipped() {
	SuggestionLookupsTotal.WithLabelValues("skipped").Inc()
}

// RecordSlotDescribed records the result of a slot description generation.
func RecordSlotDescribed(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	DescriptionsTotal.WithLabelValues(status).Inc()
	DescriptionDuration.Observe(duration.Seconds())
}

// UpdateWardrobeItemsTotal updates the total count of wardrobe items.
// This gauge should be updated periodically to reflect the current state.
func UpdateWardrobeItemsTotal(count int) {
	WardrobeItemsTotal.Set(float64(count))
}

// UpdateTemplatesActiveTotal updates the count of active outfit templates.
// This gauge should be updated periodically to reflect the current state.
func UpdateTemplatesActiveTotal(count int) {
	TemplatesActiveTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_items", "insert_item").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
