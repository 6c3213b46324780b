package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/de-tools/aml-scan/pkg/models/domain"
	"github.com/de-tools/aml-scan/pkg/runtime/terminal/export"
	"github.com/de-tools/aml-scan/pkg/services/config"
	"github.com/de-tools/aml-scan/pkg/services/credentials"
	"github.com/de-tools/aml-scan/pkg/services/discovery"
	"github.com/de-tools/aml-scan/pkg/services/scan"
)

// Deps are the collaborators the scan command wires into the orchestrator.
// The factories take the acquired credential so tests can substitute fakes.
type Deps struct {
	Credentials  credentials.Provider
	NewExplorer  func(cred azcore.TokenCredential) (discovery.Explorer, error)
	NewConnector func(cred azcore.TokenCredential) (scan.Connector, error)
}

type ScanCmd struct {
	tenantID        string
	subscriptionIDs []string
	profile         string
	configPath      string
	concurrency     int

	deps     Deps
	reporter *export.Reporter
}

func NewScanCmd(deps Deps, reporter *export.Reporter) *cobra.Command {
	sc := &ScanCmd{deps: deps, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan ML workspaces for deprecated feature usage",
		Long: "Scans every ML workspace of the given subscriptions for linked services, " +
			"data drift monitors and v2 labeled data assets, all slated for deprecation.",
		RunE:          sc.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&sc.tenantID, "tenant-id", "", "Azure tenant ID")
	cmd.Flags().StringSliceVar(&sc.subscriptionIDs, "subscription-id", nil, "Azure subscription IDs to scan (repeatable)")
	cmd.Flags().StringVar(&sc.profile, "profile", config.DefaultProfile, "Azure config profile supplying defaults when flags are omitted")
	cmd.Flags().StringVar(&sc.configPath, "config", "", "Path to the Azure config file (default is $HOME/.azure/config)")
	cmd.Flags().IntVar(&sc.concurrency, "concurrency", 0, "Number of workspaces scanned in parallel")

	return cmd
}

func (sc *ScanCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	v := viper.New()
	v.SetEnvPrefix("AMLSCAN")
	v.AutomaticEnv()
	v.SetDefault("concurrency", 1)
	_ = v.BindPFlag("concurrency", cmd.Flags().Lookup("concurrency"))

	if err := sc.applyProfileDefaults(ctx); err != nil {
		return err
	}
	if err := sc.validate(); err != nil {
		return err
	}

	cred, err := sc.deps.Credentials.Acquire(ctx, sc.tenantID)
	if err != nil {
		return fmt.Errorf("failed to acquire credential for tenant %s: %w", sc.tenantID, err)
	}

	explorer, err := sc.deps.NewExplorer(cred)
	if err != nil {
		return fmt.Errorf("failed to create workspace explorer: %w", err)
	}
	connector, err := sc.deps.NewConnector(cred)
	if err != nil {
		return fmt.Errorf("failed to create workspace connector: %w", err)
	}

	orchestrator := scan.NewOrchestrator(scan.Options{
		Explorer:    explorer,
		Connector:   connector,
		Sink:        sc.reporter,
		Concurrency: v.GetInt("concurrency"),
	})

	result := orchestrator.Run(ctx, sc.tenantID, sc.subscriptionIDs)
	sc.logSummary(&logger, result)
	return nil
}

// applyProfileDefaults fills missing tenant/subscription IDs from the Azure
// config profile. Flags always win; the file is only consulted when needed.
func (sc *ScanCmd) applyProfileDefaults(ctx context.Context) error {
	if sc.tenantID != "" && len(sc.subscriptionIDs) > 0 {
		return nil
	}

	path := sc.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	registry, err := config.NewRegistry(path)
	if err != nil {
		if sc.tenantID == "" {
			return fmt.Errorf("--tenant-id is required (no usable Azure config at %s)", path)
		}
		return fmt.Errorf("--subscription-id is required (no usable Azure config at %s)", path)
	}

	profile, err := registry.GetProfile(ctx, sc.profile)
	if err != nil {
		return err
	}
	if sc.tenantID == "" {
		sc.tenantID = profile.TenantID
	}
	if len(sc.subscriptionIDs) == 0 {
		sc.subscriptionIDs = profile.SubscriptionIDs
	}
	return nil
}

func (sc *ScanCmd) validate() error {
	if sc.tenantID == "" {
		return fmt.Errorf("--tenant-id is required")
	}
	if _, err := uuid.Parse(sc.tenantID); err != nil {
		return fmt.Errorf("invalid tenant ID %q: %w", sc.tenantID, err)
	}
	if len(sc.subscriptionIDs) == 0 {
		return fmt.Errorf("at least one --subscription-id is required")
	}
	for _, sub := range sc.subscriptionIDs {
		if _, err := uuid.Parse(sub); err != nil {
			return fmt.Errorf("invalid subscription ID %q: %w", sub, err)
		}
	}
	return nil
}

func (sc *ScanCmd) logSummary(logger *zerolog.Logger, result domain.ScanResult) {
	scanned, unreachable := 0, 0
	for _, sub := range result.Subscriptions {
		for _, ws := range sub.Workspaces {
			scanned++
			if !ws.Connected {
				unreachable++
			}
		}
	}

	logger.Info().
		Str("tenant", result.TenantID).
		Int("subscriptions", len(result.Subscriptions)).
		Int("workspaces_scanned", scanned).
		Int("workspaces_unreachable", unreachable).
		Int("features_detected", result.DetectedCount()).
		Msg("scan pass complete")
}
