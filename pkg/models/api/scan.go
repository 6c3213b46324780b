package api

type Outcome string

const (
	OutcomeUnreachable    Outcome = "unreachable"
	OutcomeDetected       Outcome = "detected"
	OutcomeAbsent         Outcome = "absent"
	OutcomeNotImplemented Outcome = "not_implemented"
)

type FeatureCheck struct {
	Feature string  `json:"feature"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
}

type WorkspaceResult struct {
	SubscriptionID string         `json:"subscription_id"`
	ResourceGroup  string         `json:"resource_group"`
	Name           string         `json:"name"`
	Connected      bool           `json:"connected"`
	Checks         []FeatureCheck `json:"checks"`
}

type SubscriptionResult struct {
	SubscriptionID string            `json:"subscription_id"`
	Error          string            `json:"error,omitempty"`
	Workspaces     []WorkspaceResult `json:"workspaces"`
}

type ScanReport struct {
	TenantID      string               `json:"tenant_id"`
	Detected      int                  `json:"features_detected"`
	Subscriptions []SubscriptionResult `json:"subscriptions"`
}
