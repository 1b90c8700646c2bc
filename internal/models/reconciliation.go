package models

// ReconciliationError is one per-entity failure collected during a
// reconciliation pass.
type ReconciliationError struct {
	Entity  string `json:"entity"`
	Message string `json:"message"`
}

// ReconciliationCorrection describes one availability fix applied by a
// reconciliation pass.
type ReconciliationCorrection struct {
	Entity    string `json:"entity"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// ReconciliationReport is the outcome of a full batch recomputation of
// derived availability across all properties.
type ReconciliationReport struct {
	Scanned     int                        `json:"scanned"`
	Corrected   int                        `json:"corrected"`
	Corrections []ReconciliationCorrection `json:"corrections,omitempty"`
	Errors      []ReconciliationError      `json:"errors,omitempty"`
}
