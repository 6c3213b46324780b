package adapters

import (
	"github.com/de-tools/aml-scan/pkg/models/api"
	"github.com/de-tools/aml-scan/pkg/models/domain"
)

func MapOutcomeDomainToApi(o domain.Outcome) api.Outcome {
	switch o {
	case domain.OutcomeDetected:
		return api.OutcomeDetected
	case domain.OutcomeAbsent:
		return api.OutcomeAbsent
	case domain.OutcomeNotImplemented:
		return api.OutcomeNotImplemented
	default:
		return api.OutcomeUnreachable
	}
}

func MapFeatureCheckDomainToApi(c domain.FeatureCheck) api.FeatureCheck {
	res := api.FeatureCheck{
		Feature: string(c.Feature),
		Outcome: MapOutcomeDomainToApi(c.Outcome),
	}
	if c.Err != nil {
		res.Error = c.Err.Error()
	}
	return res
}

func MapWorkspaceResultDomainToApi(w domain.WorkspaceResult) api.WorkspaceResult {
	res := api.WorkspaceResult{
		SubscriptionID: w.Workspace.SubscriptionID,
		ResourceGroup:  w.Workspace.ResourceGroup,
		Name:           w.Workspace.Name,
		Connected:      w.Connected,
		Checks:         make([]api.FeatureCheck, 0, len(w.Checks)),
	}
	for _, c := range w.Checks {
		res.Checks = append(res.Checks, MapFeatureCheckDomainToApi(c))
	}
	return res
}

func MapScanResultDomainToApi(r domain.ScanResult) api.ScanReport {
	report := api.ScanReport{
		TenantID:      r.TenantID,
		Detected:      r.DetectedCount(),
		Subscriptions: make([]api.SubscriptionResult, 0, len(r.Subscriptions)),
	}
	for _, sub := range r.Subscriptions {
		sr := api.SubscriptionResult{
			SubscriptionID: sub.SubscriptionID,
			Workspaces:     make([]api.WorkspaceResult, 0, len(sub.Workspaces)),
		}
		if sub.Err != nil {
			sr.Error = sub.Err.Error()
		}
		for _, ws := range sub.Workspaces {
			sr.Workspaces = append(sr.Workspaces, MapWorkspaceResultDomainToApi(ws))
		}
		report.Subscriptions = append(report.Subscriptions, sr)
	}
	return report
}
