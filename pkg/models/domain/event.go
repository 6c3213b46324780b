package domain

// EventKind enumerates the status transitions a scan emits.
type EventKind int

const (
	EventEnumerating EventKind = iota
	EventEnumerationFailed
	EventConnected
	EventConnectionFailed
	EventChecking
	EventDetected
	EventAbsent
	EventCheckFailed
	EventNotImplemented
)

// ScanEvent describes one status transition. Workspace and Feature are zero
// for subscription-scoped events.
type ScanEvent struct {
	Kind           EventKind
	SubscriptionID string
	Workspace      Workspace
	Feature        FeatureKind
	Err            error
}
