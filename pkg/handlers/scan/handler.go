package scan

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/aml-scan/pkg/adapters"
	"github.com/de-tools/aml-scan/pkg/models/domain"
)

// Scanner runs one scan pass for a tenant.
type Scanner interface {
	Scan(ctx context.Context, tenantID string, subscriptionIDs []string) (domain.ScanResult, error)
}

type Handler struct {
	scanner Scanner
}

func NewHandler(scanner Scanner) *Handler {
	return &Handler{scanner: scanner}
}

// RunScan runs a scan for ?tenant_id=..&subscription_id=..&subscription_id=..
// and returns the aggregate report. Unreachable subscriptions or workspaces
// are part of the report, not HTTP errors.
func (h *Handler) RunScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	tenantID := r.URL.Query().Get("tenant_id")
	subscriptionIDs := r.URL.Query()["subscription_id"]

	if _, err := uuid.Parse(tenantID); err != nil {
		http.Error(w, "tenant_id must be a valid UUID", http.StatusBadRequest)
		return
	}
	if len(subscriptionIDs) == 0 {
		http.Error(w, "at least one subscription_id is required", http.StatusBadRequest)
		return
	}
	for _, sub := range subscriptionIDs {
		if _, err := uuid.Parse(sub); err != nil {
			http.Error(w, "subscription_id must be a valid UUID", http.StatusBadRequest)
			return
		}
	}

	result, err := h.scanner.Scan(ctx, tenantID, subscriptionIDs)
	if err != nil {
		logger.Error().
			Err(err).
			Str("tenant", tenantID).
			Msg("scan failed during setup")
		http.Error(w, "scan failed during setup", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapScanResultDomainToApi(result)); err != nil {
		logger.Error().
			Err(err).
			Str("tenant", tenantID).
			Msg("failed to encode scan report")
	}
}
