package domain

// FeatureKind identifies one deprecated Azure ML feature the scanner looks for.
type FeatureKind string

const (
	FeatureLinkedServices     FeatureKind = "linked_services"
	FeatureDataDriftMonitor   FeatureKind = "data_drift_monitor"
	FeatureV2LabeledDataAsset FeatureKind = "v2_labeled_data_asset"
)

// FeatureOrder is the fixed order in which features are checked and rendered
// for every workspace.
var FeatureOrder = [3]FeatureKind{
	FeatureLinkedServices,
	FeatureDataDriftMonitor,
	FeatureV2LabeledDataAsset,
}

func (k FeatureKind) DisplayName() string {
	switch k {
	case FeatureLinkedServices:
		return "linked services"
	case FeatureDataDriftMonitor:
		return "data drift monitors"
	case FeatureV2LabeledDataAsset:
		return "v2 labeled data assets"
	default:
		return string(k)
	}
}

// Outcome is the terminal state of one feature check against one workspace.
// It is written exactly once per check and immutable afterwards.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeConnected
	OutcomeUnreachable
	OutcomeDetected
	OutcomeAbsent
	OutcomeNotImplemented
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeConnected:
		return "connected"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeDetected:
		return "detected"
	case OutcomeAbsent:
		return "absent"
	case OutcomeNotImplemented:
		return "not_implemented"
	default:
		return "unknown"
	}
}

// FeatureCheck is one (workspace, feature) pair with its recorded outcome.
type FeatureCheck struct {
	Feature FeatureKind
	Outcome Outcome
	Err     error
}

// WorkspaceResult holds the three feature checks for one workspace, in
// FeatureOrder. Connected is false when the workspace handle could not be
// opened, in which case every check is Unreachable.
type WorkspaceResult struct {
	Workspace Workspace
	Connected bool
	Checks    []FeatureCheck
}

// SubscriptionResult groups workspace results per scanned subscription.
// Err is set when enumeration itself failed; no workspaces exist then.
type SubscriptionResult struct {
	SubscriptionID string
	Err            error
	Workspaces     []WorkspaceResult
}

// ScanResult is the aggregate of one scan pass over a tenant.
type ScanResult struct {
	TenantID      string
	Subscriptions []SubscriptionResult
}

// DetectedCount returns how many feature checks across the whole run found
// deprecated usage.
func (r ScanResult) DetectedCount() int {
	count := 0
	for _, sub := range r.Subscriptions {
		for _, ws := range sub.Workspaces {
			for _, check := range ws.Checks {
				if check.Outcome == OutcomeDetected {
					count++
				}
			}
		}
	}
	return count
}
