// Package ops implements the string operations shared by the HTTP, MCP, and
// CLI surfaces. All validation happens here, before the store is touched.
package ops

import (
	"time"

	"github.com/hpungsan/stringlens/internal/filter"
	"github.com/hpungsan/stringlens/internal/record"
)

// ListOutput contains the result of a structured List.
type ListOutput struct {
	Data           []record.StringRecord `json:"data"`
	Count          int                   `json:"count"`
	FiltersApplied filter.Filter         `json:"filters_applied"`
}

// InterpretedQuery echoes a natural-language query and the filter it became.
type InterpretedQuery struct {
	Original      string        `json:"original"`
	ParsedFilters filter.Filter `json:"parsed_filters"`
}

// ListNaturalOutput contains the result of ListNatural.
type ListNaturalOutput struct {
	Data             []record.StringRecord `json:"data"`
	Count            int                   `json:"count"`
	InterpretedQuery InterpretedQuery      `json:"interpreted_query"`
}

// clock returns now, or time.Now when now is nil.
func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
