package discovery

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"

	"github.com/de-tools/aml-scan/pkg/models/domain"
)

const workspaceQuery = `Resources
| where type =~ 'microsoft.machinelearningservices/workspaces'
| project name, resourceGroup, subscriptionId`

// Explorer lists the ML workspaces of one subscription. Workspaces come back
// in provider order; callers own the ordering across subscriptions.
type Explorer interface {
	ListWorkspaces(ctx context.Context, subscriptionID string) ([]domain.Workspace, error)
}

type graphExplorer struct {
	client *armresourcegraph.Client
}

// NewExplorer builds an Explorer backed by the Azure Resource Graph query API.
func NewExplorer(cred azcore.TokenCredential) (Explorer, error) {
	client, err := armresourcegraph.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource graph client: %w", err)
	}
	return &graphExplorer{client: client}, nil
}

func (e *graphExplorer) ListWorkspaces(ctx context.Context, subscriptionID string) ([]domain.Workspace, error) {
	resp, err := e.client.Resources(ctx, armresourcegraph.QueryRequest{
		Query:         to.Ptr(workspaceQuery),
		Subscriptions: []*string{to.Ptr(subscriptionID)},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces for subscription %s: %w", subscriptionID, err)
	}

	rows, ok := resp.Data.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected resource graph payload for subscription %s", subscriptionID)
	}

	workspaces := make([]domain.Workspace, 0, len(rows))
	for _, row := range rows {
		fields, ok := row.(map[string]any)
		if !ok {
			continue
		}
		ws := domain.Workspace{
			SubscriptionID: stringField(fields, "subscriptionId"),
			ResourceGroup:  stringField(fields, "resourceGroup"),
			Name:           stringField(fields, "name"),
		}
		if ws.Name == "" {
			continue
		}
		workspaces = append(workspaces, ws)
	}

	return workspaces, nil
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
