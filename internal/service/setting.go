package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/repository"
)

// SettingService exposes the free-form key/value settings.
//
// STORAGE FORMAT:
// Values live in a TEXT column. A JSON string payload is stored as the bare
// string; anything else (objects, arrays, numbers, booleans, null) is stored
// as compact JSON text. Reads reverse this opportunistically: text that
// parses as JSON is returned as JSON, anything else as a string.
type SettingService struct {
	repo   repository.SettingRepository
	logger *slog.Logger
}

func NewSettingService(repo repository.SettingRepository, logger *slog.Logger) *SettingService {
	return &SettingService{repo: repo, logger: logger}
}

// All returns every setting keyed by name with its decoded value.
func (s *SettingService) All(ctx context.Context) (map[string]any, error) {
	settings, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}

	out := make(map[string]any, len(settings))
	for _, st := range settings {
		out[st.Key] = decodeSetting(st.Value)
	}
	return out, nil
}

// Get returns the stored value as JSON when it parses, otherwise wrapped as
// {"value": raw}.
func (s *SettingService) Get(ctx context.Context, key string) (any, error) {
	st, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		return nil, err
	}
	if json.Valid([]byte(st.Value)) {
		return json.RawMessage(st.Value), nil
	}
	return map[string]string{"value": st.Value}, nil
}

// Put stores value (the raw JSON of the request's "value" member) under key.
func (s *SettingService) Put(ctx context.Context, key string, value json.RawMessage) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperror.ValidationFailed("key", "setting key is required")
	}
	if len(bytes.TrimSpace(value)) == 0 {
		return apperror.MissingFields("value")
	}

	stored, err := encodeSetting(value)
	if err != nil {
		return apperror.ValidationFailed("value", "value must be valid JSON")
	}

	if err := s.repo.UpsertSetting(ctx, key, stored); err != nil {
		s.logger.Error("failed to save setting",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("saving setting %s: %w", key, err)
	}

	s.logger.Info("setting saved", slog.String("key", key))
	return nil
}

func encodeSetting(value json.RawMessage) (string, error) {
	value = bytes.TrimSpace(value)
	if value[0] == '"' {
		var str string
		if err := json.Unmarshal(value, &str); err != nil {
			return "", err
		}
		return str, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func decodeSetting(raw string) any {
	if json.Valid([]byte(raw)) {
		return json.RawMessage(raw)
	}
	return raw
}
