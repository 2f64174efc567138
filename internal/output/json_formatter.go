package output

import (
	"encoding/json"

	"github.com/popprobe/population-simulator/internal/domain"
)

// JSONFormatter serializes the projection result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }
func (j JSONFormatter) Ext() string  { return "json" }

func (j JSONFormatter) Format(results *domain.ProjectionResult) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
