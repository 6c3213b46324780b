package credentials

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/rs/zerolog"
)

// Provider acquires a tenant-scoped credential reused for the whole run.
type Provider interface {
	Acquire(ctx context.Context, tenantID string) (azcore.TokenCredential, error)
}

type interactiveProvider struct{}

// NewInteractiveProvider returns a Provider that prefers a cached Azure CLI
// login and falls back to an interactive browser flow, both pinned to the
// requested tenant. Acquisition failure is fatal to the run; there is no
// fallback beyond the chain itself.
func NewInteractiveProvider() Provider {
	return &interactiveProvider{}
}

func (p *interactiveProvider) Acquire(ctx context.Context, tenantID string) (azcore.TokenCredential, error) {
	logger := zerolog.Ctx(ctx)

	cliCred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
		TenantID: tenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}

	browserCred, err := azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
		TenantID: tenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create interactive browser credential: %w", err)
	}

	chain, err := azidentity.NewChainedTokenCredential(
		[]azcore.TokenCredential{cliCred, browserCred}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build credential chain: %w", err)
	}

	logger.Debug().Str("tenant", tenantID).Msg("credential chain ready")
	return chain, nil
}
