package sessions

import (
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/beadreader/internal/interpret"
	"github.com/JaimeStill/beadreader/pkg/repository"
)

const columns = `id, source, history, advisory, status, analysis_count, created_at, updated_at`

func scanSession(s repository.Scanner) (Session, error) {
	var (
		ss      Session
		history []byte
	)

	err := s.Scan(
		&ss.ID,
		&ss.Source,
		&history,
		&ss.Advisory,
		&ss.Status,
		&ss.Analyses,
		&ss.CreatedAt,
		&ss.UpdatedAt,
	)
	if err != nil {
		return ss, err
	}

	if err := json.Unmarshal(history, &ss.History); err != nil {
		return ss, fmt.Errorf("decode history: %w", err)
	}
	if ss.History == nil {
		ss.History = []interpret.Color{}
	}
	ss.Strip = interpret.Strip(ss.History)

	return ss, nil
}

func encodeHistory(history []interpret.Color) (string, error) {
	if history == nil {
		history = []interpret.Color{}
	}
	b, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return string(b), nil
}
