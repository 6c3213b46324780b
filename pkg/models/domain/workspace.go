package domain

import "fmt"

// Workspace identifies one Azure ML workspace discovered during enumeration.
type Workspace struct {
	SubscriptionID string
	ResourceGroup  string
	Name           string
}

// ID returns the ARM resource identifier of the workspace.
func (w Workspace) ID() string {
	return fmt.Sprintf(
		"/subscriptions/%s/resourceGroups/%s/providers/Microsoft.MachineLearningServices/workspaces/%s",
		w.SubscriptionID, w.ResourceGroup, w.Name,
	)
}
