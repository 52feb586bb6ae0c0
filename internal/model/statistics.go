package model

// DashboardStats bundles the five dashboard counters into one snapshot.
// Each count comes from an independent query; under concurrent writes the
// figures may disagree with each other by a row or two, which is accepted.
type DashboardStats struct {
	TotalClients     int64 `json:"totalClients"`
	TotalCases       int64 `json:"totalCases"`
	ActiveCases      int64 `json:"activeCases"`
	PendingTasks     int64 `json:"pendingTasks"`
	PendingDocuments int64 `json:"pendingDocuments"`
}
