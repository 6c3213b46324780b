package azureml

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/aml-scan/pkg/models/domain"
)

type fakeCredential struct{}

func (fakeCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "fake", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

// fakeTransport serves canned JSON keyed by the trailing path segment.
type fakeTransport struct {
	responses map[string]string
	statuses  map[string]int
}

func (f *fakeTransport) Do(req *http.Request) (*http.Response, error) {
	segments := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
	key := segments[len(segments)-1]

	status := http.StatusOK
	if s, ok := f.statuses[key]; ok {
		status = s
	}
	body, ok := f.responses[key]
	if !ok {
		status = http.StatusNotFound
		body = `{"error":{"code":"ResourceNotFound","message":"not found"}}`
	}

	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

func newTestClient(t *testing.T, transport *fakeTransport) *Client {
	t.Helper()
	client, err := NewClient(fakeCredential{}, &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{Transport: transport},
	})
	require.NoError(t, err)
	return client
}

func testWorkspace() domain.Workspace {
	return domain.Workspace{
		SubscriptionID: "11111111-1111-1111-1111-111111111111",
		ResourceGroup:  "ml-rg",
		Name:           "ws1",
	}
}

func TestConnect_ReturnsScopedHandle(t *testing.T) {
	ctx := context.Background()
	transport := &fakeTransport{responses: map[string]string{
		"ws1": `{"id":"/subscriptions/x/ws1","name":"ws1","location":"westeurope",
			"properties":{"friendlyName":"Workspace One","provisioningState":"Succeeded"}}`,
	}}

	client := newTestClient(t, transport)
	handle, err := client.Connect(ctx, testWorkspace())
	require.NoError(t, err)
	assert.Equal(t, "ws1", handle.Workspace().Name)
}

func TestConnect_NotFound(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, &fakeTransport{responses: map[string]string{}})

	_, err := client.Connect(ctx, testWorkspace())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to workspace ws1")

	var respErr *azcore.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusNotFound, respErr.StatusCode)
}

func TestWorkspaceClient_ListLinkedServices(t *testing.T) {
	ctx := context.Background()
	transport := &fakeTransport{responses: map[string]string{
		"ws1": `{"name":"ws1"}`,
		"linkedServices": `{"value":[
			{"id":"/ls/1","name":"synapse-link","properties":{"linkType":"Synapse","linkedServiceResourceId":"/synapse/1"}}
		]}`,
	}}

	client := newTestClient(t, transport)
	handle, err := client.Connect(ctx, testWorkspace())
	require.NoError(t, err)

	services, err := handle.ListLinkedServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "synapse-link", services[0].Name)
	assert.Equal(t, "Synapse", services[0].Properties.LinkType)
}

func TestWorkspaceClient_ListSchedules(t *testing.T) {
	ctx := context.Background()
	transport := &fakeTransport{responses: map[string]string{
		"ws1": `{"name":"ws1"}`,
		"schedules": `{"value":[
			{"id":"/sch/1","name":"drift-check","properties":{"isEnabled":true,"action":{"actionType":"CreateMonitor"}}},
			{"id":"/sch/2","name":"nightly-job","properties":{"isEnabled":true,"action":{"actionType":"CreateJob"}}}
		]}`,
	}}

	client := newTestClient(t, transport)
	handle, err := client.Connect(ctx, testWorkspace())
	require.NoError(t, err)

	schedules, err := handle.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.True(t, schedules[0].IsActiveMonitor())
	assert.False(t, schedules[1].IsActiveMonitor())
}

func TestWorkspaceClient_ListDataAssets(t *testing.T) {
	ctx := context.Background()
	transport := &fakeTransport{responses: map[string]string{
		"ws1": `{"name":"ws1"}`,
		"data": `{"value":[
			{"id":"/data/1","name":"annotated-images","properties":{"dataType":"uri_folder","tags":{"labelingProjectId":"proj-1"}}},
			{"id":"/data/2","name":"raw-images","properties":{"dataType":"uri_folder"}}
		]}`,
	}}

	client := newTestClient(t, transport)
	handle, err := client.Connect(ctx, testWorkspace())
	require.NoError(t, err)

	assets, err := handle.ListDataAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.True(t, assets[0].HasLabelingMetadata())
	assert.False(t, assets[1].HasLabelingMetadata())
}

func TestWorkspaceClient_ForbiddenList(t *testing.T) {
	ctx := context.Background()
	transport := &fakeTransport{
		responses: map[string]string{
			"ws1":            `{"name":"ws1"}`,
			"linkedServices": `{"error":{"code":"AuthorizationFailed","message":"forbidden"}}`,
		},
		statuses: map[string]int{"linkedServices": http.StatusForbidden},
	}

	client := newTestClient(t, transport)
	handle, err := client.Connect(ctx, testWorkspace())
	require.NoError(t, err)

	_, err = handle.ListLinkedServices(ctx)
	require.Error(t, err)

	var respErr *azcore.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusForbidden, respErr.StatusCode)
}
