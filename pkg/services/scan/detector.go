package scan

import (
	"context"
	"errors"

	"github.com/de-tools/aml-scan/pkg/models/domain"
	"github.com/de-tools/aml-scan/pkg/store/azureml"
)

// WorkspaceAPI is the narrow view of an authenticated workspace handle the
// detectors inspect. All calls are read-only.
type WorkspaceAPI interface {
	Workspace() domain.Workspace
	ListLinkedServices(ctx context.Context) ([]azureml.LinkedService, error)
	ListSchedules(ctx context.Context) ([]azureml.Schedule, error)
	ListDataAssets(ctx context.Context) ([]azureml.DataAsset, error)
}

// FeatureDetector determines the usage state of one deprecated feature on a
// workspace. An error means the check itself failed; it never aborts the
// sibling checks of the same workspace.
type FeatureDetector interface {
	Kind() domain.FeatureKind
	Check(ctx context.Context, ws WorkspaceAPI) (domain.Outcome, error)
}

// DefaultDetectors returns the detector set in the fixed check order.
func DefaultDetectors() []FeatureDetector {
	return []FeatureDetector{
		linkedServicesDetector{},
		driftMonitorDetector{},
		labeledDataDetector{},
	}
}

type linkedServicesDetector struct{}

func (linkedServicesDetector) Kind() domain.FeatureKind {
	return domain.FeatureLinkedServices
}

func (linkedServicesDetector) Check(ctx context.Context, ws WorkspaceAPI) (domain.Outcome, error) {
	services, err := ws.ListLinkedServices(ctx)
	if err != nil {
		return domain.OutcomeUnreachable, err
	}
	if len(services) > 0 {
		return domain.OutcomeDetected, nil
	}
	return domain.OutcomeAbsent, nil
}

type driftMonitorDetector struct{}

func (driftMonitorDetector) Kind() domain.FeatureKind {
	return domain.FeatureDataDriftMonitor
}

func (driftMonitorDetector) Check(ctx context.Context, ws WorkspaceAPI) (domain.Outcome, error) {
	schedules, err := ws.ListSchedules(ctx)
	if err != nil {
		return domain.OutcomeUnreachable, err
	}
	for _, s := range schedules {
		if s.IsActiveMonitor() {
			return domain.OutcomeDetected, nil
		}
	}
	return domain.OutcomeAbsent, nil
}

type labeledDataDetector struct{}

func (labeledDataDetector) Kind() domain.FeatureKind {
	return domain.FeatureV2LabeledDataAsset
}

func (labeledDataDetector) Check(ctx context.Context, ws WorkspaceAPI) (domain.Outcome, error) {
	assets, err := ws.ListDataAssets(ctx)
	if errors.Is(err, azureml.ErrNotImplemented) {
		return domain.OutcomeNotImplemented, nil
	}
	if err != nil {
		return domain.OutcomeUnreachable, err
	}
	for _, a := range assets {
		if a.HasLabelingMetadata() {
			return domain.OutcomeDetected, nil
		}
	}
	return domain.OutcomeAbsent, nil
}
