package azureml

// WorkspaceDetails is the subset of the workspace resource the scanner reads.
type WorkspaceDetails struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Properties struct {
		FriendlyName      string `json:"friendlyName"`
		ProvisioningState string `json:"provisioningState"`
	} `json:"properties"`
}

type LinkedService struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Properties struct {
		LinkType           string `json:"linkType"`
		LinkedServiceResID string `json:"linkedServiceResourceId"`
	} `json:"properties"`
}

type linkedServiceList struct {
	Value []LinkedService `json:"value"`
}

type ScheduleAction struct {
	ActionType string `json:"actionType"`
}

type Schedule struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Properties struct {
		IsEnabled bool           `json:"isEnabled"`
		Action    ScheduleAction `json:"action"`
	} `json:"properties"`
}

// IsActiveMonitor reports whether the schedule is an enabled monitoring
// definition, the shape data-drift monitors take on the v2 surface.
func (s Schedule) IsActiveMonitor() bool {
	return s.Properties.IsEnabled && s.Properties.Action.ActionType == "CreateMonitor"
}

type DataAsset struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Properties struct {
		DataType   string            `json:"dataType"`
		Tags       map[string]string `json:"tags"`
		Properties map[string]string `json:"properties"`
	} `json:"properties"`
}

// HasLabelingMetadata reports whether the asset was produced by a labeling
// project, the marker for v2 labeled data assets.
func (d DataAsset) HasLabelingMetadata() bool {
	if _, ok := d.Properties.Properties["labelingProjectId"]; ok {
		return true
	}
	_, ok := d.Properties.Tags["labelingProjectId"]
	return ok
}

type scheduleList struct {
	Value []Schedule `json:"value"`
}

type dataAssetList struct {
	Value []DataAsset `json:"value"`
}
