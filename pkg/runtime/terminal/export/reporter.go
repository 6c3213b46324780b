package export

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/de-tools/aml-scan/pkg/models/domain"
)

const (
	glyphOngoing        = "♻️"
	glyphConnected      = "🟢"
	glyphUnreachable    = "🚫"
	glyphDetected       = "❌"
	glyphAbsent         = "✅"
	glyphNotImplemented = "🚧"
)

// Reporter renders scan events as glyph-prefixed status lines, one line per
// transition. It holds no state beyond the writer; writes are serialized so
// concurrent workspace scans keep their lines intact.
type Reporter struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewReporter creates a console reporter for scan progress.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) Emit(event domain.ScanEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.writer, r.line(event))
}

func (r *Reporter) line(event domain.ScanEvent) string {
	ws := event.Workspace
	feature := event.Feature.DisplayName()

	switch event.Kind {
	case domain.EventEnumerating:
		return fmt.Sprintf("%s Retrieving workspaces for subscription %s", glyphOngoing, event.SubscriptionID)
	case domain.EventEnumerationFailed:
		return fmt.Sprintf("%s Error retrieving workspaces for subscription %s: %v", glyphUnreachable, event.SubscriptionID, event.Err)
	case domain.EventConnected:
		return fmt.Sprintf("%s Connected to workspace: %s", glyphConnected, ws.Name)
	case domain.EventConnectionFailed:
		return fmt.Sprintf("%s Could not connect to workspace %s from resource group %s in subscription %s: %v",
			glyphUnreachable, ws.Name, ws.ResourceGroup, ws.SubscriptionID, event.Err)
	case domain.EventChecking:
		return fmt.Sprintf("\t%s Checking %s usage for workspace: %s...", glyphOngoing, feature, ws.Name)
	case domain.EventDetected:
		return fmt.Sprintf("\t%s Deprecated %s found for workspace: %s", glyphDetected, feature, ws.Name)
	case domain.EventAbsent:
		return fmt.Sprintf("\t%s No %s found for workspace: %s", glyphAbsent, feature, ws.Name)
	case domain.EventCheckFailed:
		return fmt.Sprintf("\t%s Could not retrieve %s for workspace %s: %v", glyphUnreachable, feature, ws.Name, event.Err)
	case domain.EventNotImplemented:
		return fmt.Sprintf("\t%s %s check is not implemented yet for workspace: %s", glyphNotImplemented, feature, ws.Name)
	default:
		return fmt.Sprintf("%s %s", glyphOngoing, ws.Name)
	}
}
