package scan

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/aml-scan/pkg/models/domain"
	"github.com/de-tools/aml-scan/pkg/services/discovery"
	"github.com/de-tools/aml-scan/pkg/store/azureml"
)

// Connector opens an authenticated handle to a workspace. A failure here
// marks every feature check of that workspace unreachable.
type Connector interface {
	Connect(ctx context.Context, ws domain.Workspace) (WorkspaceAPI, error)
}

// EventSink receives one event per status transition, in order within a
// workspace. The orchestrator serializes calls to it.
type EventSink interface {
	Emit(event domain.ScanEvent)
}

type nopSink struct{}

func (nopSink) Emit(domain.ScanEvent) {}

// Options configure an Orchestrator. Explorer and Connector are required;
// Detectors defaults to DefaultDetectors, Concurrency to 1 (sequential).
type Options struct {
	Explorer    discovery.Explorer
	Connector   Connector
	Detectors   []FeatureDetector
	Sink        EventSink
	Concurrency int
}

// Orchestrator drives one scan pass: enumerate workspaces per subscription,
// connect, run each detector, collect write-once outcomes, emit progress.
// No retries anywhere; every failure is terminal for its own scope only.
type Orchestrator struct {
	explorer    discovery.Explorer
	connector   Connector
	detectors   []FeatureDetector
	sink        EventSink
	concurrency int

	mu sync.Mutex
}

func NewOrchestrator(opts Options) *Orchestrator {
	detectors := opts.Detectors
	if detectors == nil {
		detectors = DefaultDetectors()
	}
	sink := opts.Sink
	if sink == nil {
		sink = nopSink{}
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Orchestrator{
		explorer:    opts.Explorer,
		connector:   opts.Connector,
		detectors:   detectors,
		sink:        sink,
		concurrency: concurrency,
	}
}

// Run scans every subscription in the given order (duplicates included) and
// returns the aggregate result. An inaccessible subscription or workspace
// never aborts the pass; its scope is marked unreachable and the scan moves
// to the next sibling.
func (o *Orchestrator) Run(ctx context.Context, tenantID string, subscriptionIDs []string) domain.ScanResult {
	logger := zerolog.Ctx(ctx)
	result := domain.ScanResult{TenantID: tenantID}

	for _, subID := range subscriptionIDs {
		o.emit(domain.ScanEvent{Kind: domain.EventEnumerating, SubscriptionID: subID})

		workspaces, err := o.explorer.ListWorkspaces(ctx, subID)
		if err != nil {
			o.emit(domain.ScanEvent{Kind: domain.EventEnumerationFailed, SubscriptionID: subID, Err: err})
			result.Subscriptions = append(result.Subscriptions, domain.SubscriptionResult{
				SubscriptionID: subID,
				Err:            err,
			})
			continue
		}

		logger.Info().
			Str("subscription", subID).
			Int("workspaces", len(workspaces)).
			Msg("enumeration complete")

		subResult := domain.SubscriptionResult{
			SubscriptionID: subID,
			Workspaces:     make([]domain.WorkspaceResult, len(workspaces)),
		}

		// Each goroutine owns exactly one result slot, so only the sink
		// needs serializing.
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.concurrency)
		for i, ws := range workspaces {
			i, ws := i, ws
			g.Go(func() error {
				subResult.Workspaces[i] = o.scanWorkspace(gctx, ws)
				return nil
			})
		}
		_ = g.Wait()

		result.Subscriptions = append(result.Subscriptions, subResult)
	}

	return result
}

func (o *Orchestrator) scanWorkspace(ctx context.Context, ws domain.Workspace) domain.WorkspaceResult {
	res := domain.WorkspaceResult{
		Workspace: ws,
		Checks:    make([]domain.FeatureCheck, 0, len(o.detectors)),
	}

	api, err := o.connector.Connect(ctx, ws)
	if err != nil {
		o.emit(domain.ScanEvent{Kind: domain.EventConnectionFailed, SubscriptionID: ws.SubscriptionID, Workspace: ws, Err: err})
		for _, d := range o.detectors {
			res.Checks = append(res.Checks, domain.FeatureCheck{
				Feature: d.Kind(),
				Outcome: domain.OutcomeUnreachable,
				Err:     err,
			})
			o.emit(domain.ScanEvent{Kind: domain.EventCheckFailed, SubscriptionID: ws.SubscriptionID, Workspace: ws, Feature: d.Kind(), Err: err})
		}
		return res
	}

	res.Connected = true
	o.emit(domain.ScanEvent{Kind: domain.EventConnected, SubscriptionID: ws.SubscriptionID, Workspace: ws})

	for _, d := range o.detectors {
		res.Checks = append(res.Checks, o.runCheck(ctx, d, ws, api))
	}

	return res
}

func (o *Orchestrator) runCheck(ctx context.Context, d FeatureDetector, ws domain.Workspace, api WorkspaceAPI) domain.FeatureCheck {
	kind := d.Kind()
	o.emit(domain.ScanEvent{Kind: domain.EventChecking, SubscriptionID: ws.SubscriptionID, Workspace: ws, Feature: kind})

	outcome, err := d.Check(ctx, api)
	if err != nil {
		outcome = domain.OutcomeUnreachable
	}

	event := domain.ScanEvent{SubscriptionID: ws.SubscriptionID, Workspace: ws, Feature: kind, Err: err}
	switch outcome {
	case domain.OutcomeDetected:
		event.Kind = domain.EventDetected
	case domain.OutcomeAbsent:
		event.Kind = domain.EventAbsent
	case domain.OutcomeNotImplemented:
		event.Kind = domain.EventNotImplemented
	default:
		event.Kind = domain.EventCheckFailed
	}
	o.emit(event)

	return domain.FeatureCheck{Feature: kind, Outcome: outcome, Err: err}
}

func (o *Orchestrator) emit(event domain.ScanEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sink.Emit(event)
}

// NewARMConnector adapts the azureml management client to the Connector
// contract used by the orchestrator.
func NewARMConnector(client *azureml.Client) Connector {
	return armConnector{client: client}
}

type armConnector struct {
	client *azureml.Client
}

func (c armConnector) Connect(ctx context.Context, ws domain.Workspace) (WorkspaceAPI, error) {
	handle, err := c.client.Connect(ctx, ws)
	if err != nil {
		return nil, err
	}
	return handle, nil
}
