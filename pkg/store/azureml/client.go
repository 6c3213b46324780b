package azureml

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	armruntime "github.com/Azure/azure-sdk-for-go/sdk/azcore/arm/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/de-tools/aml-scan/pkg/models/domain"
)

const (
	moduleName    = "github.com/de-tools/aml-scan/pkg/store/azureml"
	moduleVersion = "v0.1.0"

	workspaceAPIVersion     = "2023-04-01"
	linkedServiceAPIVersion = "2020-09-01-preview"
)

// ErrNotImplemented is returned by API surfaces a workspace client does not
// support. Callers treat it as a terminal state distinct from a failure.
var ErrNotImplemented = errors.New("azureml: operation not implemented by this API surface")

// Client issues requests against the Azure ML management plane. A few of the
// endpoints it needs (linked services in particular) predate the generated
// resourcemanager SDKs, so all calls go through one hand-built ARM pipeline.
type Client struct {
	endpoint string
	pl       runtime.Pipeline
}

func NewClient(cred azcore.TokenCredential, options *arm.ClientOptions) (*Client, error) {
	if options == nil {
		options = &arm.ClientOptions{}
	}

	endpoint := cloud.AzurePublic.Services[cloud.ResourceManager].Endpoint
	if c, ok := options.Cloud.Services[cloud.ResourceManager]; ok && c.Endpoint != "" {
		endpoint = c.Endpoint
	}

	pl, err := armruntime.NewPipeline(moduleName, moduleVersion, cred, runtime.PipelineOptions{}, options)
	if err != nil {
		return nil, fmt.Errorf("failed to build ARM pipeline: %w", err)
	}

	return &Client{endpoint: endpoint, pl: pl}, nil
}

// Connect verifies the workspace resource is reachable with the current
// credential and returns a workspace-scoped handle.
func (c *Client) Connect(ctx context.Context, ws domain.Workspace) (*WorkspaceClient, error) {
	var details WorkspaceDetails
	err := c.get(ctx, ws.ID(), workspaceAPIVersion, &details)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to workspace %s: %w", ws.Name, err)
	}

	return &WorkspaceClient{client: c, workspace: ws, details: details}, nil
}

func (c *Client) get(ctx context.Context, path, apiVersion string, out any) error {
	req, err := runtime.NewRequest(ctx, http.MethodGet, runtime.JoinPaths(c.endpoint, path))
	if err != nil {
		return err
	}

	query := req.Raw().URL.Query()
	query.Set("api-version", apiVersion)
	req.Raw().URL.RawQuery = query.Encode()
	req.Raw().Header["Accept"] = []string{"application/json"}

	resp, err := c.pl.Do(req)
	if err != nil {
		return err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return runtime.NewResponseError(resp)
	}

	return runtime.UnmarshalAsJSON(resp, out)
}

// WorkspaceClient is an authenticated handle scoped to one workspace. It is
// valid for a single scan pass over that workspace.
type WorkspaceClient struct {
	client    *Client
	workspace domain.Workspace
	details   WorkspaceDetails
}

func (w *WorkspaceClient) Workspace() domain.Workspace {
	return w.workspace
}

// ListLinkedServices returns the linked-service attachments of the workspace.
func (w *WorkspaceClient) ListLinkedServices(ctx context.Context) ([]LinkedService, error) {
	var list linkedServiceList
	path := w.workspace.ID() + "/linkedServices"
	if err := w.client.get(ctx, path, linkedServiceAPIVersion, &list); err != nil {
		return nil, fmt.Errorf("failed to list linked services for %s: %w", w.workspace.Name, err)
	}
	return list.Value, nil
}

// ListSchedules returns the monitoring schedule definitions of the workspace.
// Data-drift monitors surface here as enabled schedules with a monitor action.
func (w *WorkspaceClient) ListSchedules(ctx context.Context) ([]Schedule, error) {
	var list scheduleList
	path := w.workspace.ID() + "/schedules"
	if err := w.client.get(ctx, path, workspaceAPIVersion, &list); err != nil {
		return nil, fmt.Errorf("failed to list schedules for %s: %w", w.workspace.Name, err)
	}
	return list.Value, nil
}

// ListDataAssets returns the v2 data asset containers of the workspace.
func (w *WorkspaceClient) ListDataAssets(ctx context.Context) ([]DataAsset, error) {
	var list dataAssetList
	path := w.workspace.ID() + "/data"
	if err := w.client.get(ctx, path, workspaceAPIVersion, &list); err != nil {
		return nil, fmt.Errorf("failed to list data assets for %s: %w", w.workspace.Name, err)
	}
	return list.Value, nil
}
