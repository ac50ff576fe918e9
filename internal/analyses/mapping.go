package analyses

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/beadreader/internal/interpret"
	"github.com/JaimeStill/beadreader/pkg/query"
	"github.com/JaimeStill/beadreader/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("session_id", "SessionID").
	Project("sequence", "Sequence").
	Project("advisory", "Advisory").
	Project("status", "Status").
	Project("response", "Response").
	Project("frame_key", "FrameKey").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters narrows a session's analyses. Nil fields are ignored.
type Filters struct {
	Status *string `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	return f
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var (
		a        Analysis
		sequence []byte
	)

	err := s.Scan(
		&a.ID,
		&a.SessionID,
		&sequence,
		&a.Advisory,
		&a.Status,
		&a.Response,
		&a.FrameKey,
		&a.ContentType,
		&a.SizeBytes,
		&a.ModelName,
		&a.ProviderName,
		&a.CreatedAt,
	)
	if err != nil {
		return a, err
	}

	if err := json.Unmarshal(sequence, &a.Sequence); err != nil {
		return a, fmt.Errorf("decode sequence: %w", err)
	}
	if a.Sequence == nil {
		a.Sequence = []interpret.Color{}
	}
	a.Strip = interpret.Strip(a.Sequence)

	return a, nil
}
