package scan

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/de-tools/aml-scan/pkg/models/domain"
	"github.com/de-tools/aml-scan/pkg/services/credentials"
	"github.com/de-tools/aml-scan/pkg/services/discovery"
)

// Service runs complete scan passes on demand: acquire a tenant credential,
// wire the enumeration and workspace clients, run the orchestrator. It backs
// the web surface, where each request names its own tenant.
type Service struct {
	credentials  credentials.Provider
	newExplorer  func(cred azcore.TokenCredential) (discovery.Explorer, error)
	newConnector func(cred azcore.TokenCredential) (Connector, error)
	concurrency  int
}

func NewService(
	provider credentials.Provider,
	newExplorer func(cred azcore.TokenCredential) (discovery.Explorer, error),
	newConnector func(cred azcore.TokenCredential) (Connector, error),
	concurrency int,
) *Service {
	return &Service{
		credentials:  provider,
		newExplorer:  newExplorer,
		newConnector: newConnector,
		concurrency:  concurrency,
	}
}

// Scan performs one pass over the tenant's subscriptions. Only credential or
// client setup failures surface as errors; everything downstream is folded
// into the result.
func (s *Service) Scan(ctx context.Context, tenantID string, subscriptionIDs []string) (domain.ScanResult, error) {
	cred, err := s.credentials.Acquire(ctx, tenantID)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("failed to acquire credential for tenant %s: %w", tenantID, err)
	}

	explorer, err := s.newExplorer(cred)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("failed to create workspace explorer: %w", err)
	}
	connector, err := s.newConnector(cred)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("failed to create workspace connector: %w", err)
	}

	orchestrator := NewOrchestrator(Options{
		Explorer:    explorer,
		Connector:   connector,
		Concurrency: s.concurrency,
	})

	return orchestrator.Run(ctx, tenantID, subscriptionIDs), nil
}
