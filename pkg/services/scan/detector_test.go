package scan

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/de-tools/aml-scan/pkg/models/domain"
	"github.com/de-tools/aml-scan/pkg/store/azureml"
)

type mockWorkspaceAPI struct {
	mock.Mock
}

func (m *mockWorkspaceAPI) Workspace() domain.Workspace {
	args := m.Called()
	return args.Get(0).(domain.Workspace)
}

func (m *mockWorkspaceAPI) ListLinkedServices(ctx context.Context) ([]azureml.LinkedService, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]azureml.LinkedService), args.Error(1)
}

func (m *mockWorkspaceAPI) ListSchedules(ctx context.Context) ([]azureml.Schedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]azureml.Schedule), args.Error(1)
}

func (m *mockWorkspaceAPI) ListDataAssets(ctx context.Context) ([]azureml.DataAsset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]azureml.DataAsset), args.Error(1)
}

func monitorSchedule(name string, enabled bool, actionType string) azureml.Schedule {
	s := azureml.Schedule{Name: name}
	s.Properties.IsEnabled = enabled
	s.Properties.Action.ActionType = actionType
	return s
}

func labeledAsset(name string, labeled bool) azureml.DataAsset {
	a := azureml.DataAsset{Name: name}
	a.Properties.DataType = "uri_folder"
	if labeled {
		a.Properties.Tags = map[string]string{"labelingProjectId": "proj-1"}
	}
	return a
}

func TestDefaultDetectors_Order(t *testing.T) {
	detectors := DefaultDetectors()
	assert.Len(t, detectors, len(domain.FeatureOrder))
	for i, d := range detectors {
		assert.Equal(t, domain.FeatureOrder[i], d.Kind())
	}
}

func TestLinkedServicesDetector(t *testing.T) {
	ctx := context.Background()
	d := linkedServicesDetector{}

	t.Run("attachments present", func(t *testing.T) {
		api := new(mockWorkspaceAPI)
		api.On("ListLinkedServices", mock.Anything).
			Return([]azureml.LinkedService{{Name: "synapse-link"}}, nil)

		outcome, err := d.Check(ctx, api)
		assert.NoError(t, err)
		assert.Equal(t, domain.OutcomeDetected, outcome)
		api.AssertExpectations(t)
	})

	t.Run("no attachments", func(t *testing.T) {
		api := new(mockWorkspaceAPI)
		api.On("ListLinkedServices", mock.Anything).
			Return([]azureml.LinkedService{}, nil)

		outcome, err := d.Check(ctx, api)
		assert.NoError(t, err)
		assert.Equal(t, domain.OutcomeAbsent, outcome)
	})

	t.Run("list fails", func(t *testing.T) {
		api := new(mockWorkspaceAPI)
		errExpected := fmt.Errorf("forbidden")
		api.On("ListLinkedServices", mock.Anything).Return(nil, errExpected)

		outcome, err := d.Check(ctx, api)
		assert.ErrorIs(t, err, errExpected)
		assert.Equal(t, domain.OutcomeUnreachable, outcome)
	})
}

func TestDriftMonitorDetector(t *testing.T) {
	ctx := context.Background()
	d := driftMonitorDetector{}

	t.Run("active monitor schedule", func(t *testing.T) {
		api := new(mockWorkspaceAPI)
		api.On("ListSchedules", mock.Anything).Return([]azureml.Schedule{
			monitorSchedule("nightly-job", true, "CreateJob"),
			monitorSchedule("drift-check", true, "CreateMonitor"),
		}, nil)

		outcome, err := d.Check(ctx, api)
		assert.NoError(t, err)
		assert.Equal(t, domain.OutcomeDetected, outcome)
	})

	t.Run("only disabled or non-monitor schedules", func(t *testing.T) {
		api := new(mockWorkspaceAPI)
		api.On("ListSchedules", mock.Anything).Return([]azureml.Schedule{
			monitorSchedule("drift-check", false, "CreateMonitor"),
			monitorSchedule("nightly-job", true, "CreateJob"),
		}, nil)

		outcome, err := d.Check(ctx, api)
		assert.NoError(t, err)
		assert.Equal(t, domain.OutcomeAbsent, outcome)
	})

	t.Run("list fails", func(t *testing.T) {
		api := new(mockWorkspaceAPI)
		errExpected := fmt.Errorf("timeout")
		api.On("ListSchedules", mock.Anything).Return(nil, errExpected)

		outcome, err := d.Check(ctx, api)
		assert.ErrorIs(t, err, errExpected)
		assert.Equal(t, domain.OutcomeUnreachable, outcome)
	})
}

func TestLabeledDataDetector(t *testing.T) {
	ctx := context.Background()
	d := labeledDataDetector{}

	t.Run("labeled asset present", func(t *testing.T) {
		api := new(mockWorkspaceAPI)
		api.On("ListDataAssets", mock.Anything).Return([]azureml.DataAsset{
			labeledAsset("raw-images", false),
			labeledAsset("annotated-images", true),
		}, nil)

		outcome, err := d.Check(ctx, api)
		assert.NoError(t, err)
		assert.Equal(t, domain.OutcomeDetected, outcome)
	})

	t.Run("no labeled assets", func(t *testing.T) {
		api := new(mockWorkspaceAPI)
		api.On("ListDataAssets", mock.Anything).Return([]azureml.DataAsset{
			labeledAsset("raw-images", false),
		}, nil)

		outcome, err := d.Check(ctx, api)
		assert.NoError(t, err)
		assert.Equal(t, domain.OutcomeAbsent, outcome)
	})

	t.Run("surface not implemented", func(t *testing.T) {
		api := new(mockWorkspaceAPI)
		api.On("ListDataAssets", mock.Anything).Return(nil, azureml.ErrNotImplemented)

		outcome, err := d.Check(ctx, api)
		assert.NoError(t, err)
		assert.Equal(t, domain.OutcomeNotImplemented, outcome)
	})

	t.Run("list fails", func(t *testing.T) {
		api := new(mockWorkspaceAPI)
		errExpected := fmt.Errorf("not found")
		api.On("ListDataAssets", mock.Anything).Return(nil, errExpected)

		outcome, err := d.Check(ctx, api)
		assert.ErrorIs(t, err, errExpected)
		assert.Equal(t, domain.OutcomeUnreachable, outcome)
	})
}
