package risk

import "errors"

// Fatal pipeline conditions. Each maps to a distinct caller-facing error;
// none of them is ever substituted with a default assessment.
var (
	// ErrNoSourcesConfigured means no collector is usable at all, so the
	// request is rejected before collection starts.
	ErrNoSourcesConfigured = errors.New("no data sources configured")

	// ErrNoDataFound means collection ran but returned zero items across
	// every source. Remediation: broaden the location or time window.
	ErrNoDataFound = errors.New("no data found")

	// ErrNoRelevantData means items were collected but none survived
	// filtering. Remediation: broaden the query.
	ErrNoRelevantData = errors.New("no relevant data after filtering")
)
