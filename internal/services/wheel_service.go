package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/logging"
	"iwannabeavolunteer/portal/internal/metrics"
	"iwannabeavolunteer/portal/internal/models/dtos"
	"iwannabeavolunteer/portal/internal/providers/wheel"
)

const (
	defaultWheelTitle       = "Random Picker"
	defaultWheelDescription = "Generated via API"
	maxWheelTitle           = 50
	maxWheelDescription     = 200
)

// ErrWheelNotConfigured is returned when no wheel API key is set
var ErrWheelNotConfigured = errors.New(constants.MsgWheelKeyMissing)

// WheelCreator creates a wheel and returns its path
type WheelCreator interface {
	Configured() bool
	CreateWheel(ctx context.Context, payload dtos.WheelPayload) (string, error)
}

// WheelService turns loosely shaped picker requests into wheels
type WheelService struct {
	wheels  WheelCreator
	metrics *metrics.MetricsRegistry
}

func NewWheelService(wheels WheelCreator, m *metrics.MetricsRegistry) *WheelService {
	return &WheelService{wheels: wheels, metrics: m}
}

// CreateWheel builds the payload from the raw request body and creates the wheel.
// A body that is not a JSON object is treated as empty.
func (s *WheelService) CreateWheel(ctx context.Context, rawBody []byte) (*dtos.WheelResponse, error) {
	if !s.wheels.Configured() {
		return nil, ErrWheelNotConfigured
	}

	var body map[string]any
	if err := json.Unmarshal(rawBody, &body); err != nil || body == nil {
		body = map[string]any{}
	}

	payload, err := BuildWheelPayload(body)
	if err != nil {
		return nil, err
	}

	path, err := s.wheels.CreateWheel(ctx, payload)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.WheelsCreatedTotal.Inc()
	}
	logging.Info("Wheel created", "path", path, "entries", len(payload.WheelConfig.Entries))

	return &dtos.WheelResponse{ID: path, URL: wheel.PublicBaseURL + path}, nil
}

// BuildWheelPayload validates entries and fills in every default
func BuildWheelPayload(body map[string]any) (dtos.WheelPayload, error) {
	rawEntries, ok := body["entries"].([]any)
	if !ok || len(rawEntries) == 0 {
		return dtos.WheelPayload{}, NewValidationError(constants.MsgWheelEntriesMissing)
	}

	entries := make([]dtos.WheelEntry, 0, len(rawEntries))
	for _, e := range rawEntries {
		entries = append(entries, normalizeEntry(e))
	}

	return dtos.WheelPayload{
		ShareMode: valueOr(body, "shareMode", "copyable"),
		WheelConfig: dtos.WheelConfig{
			DisplayWinnerDialog:   valueOr(body, "displayWinnerDialog", true),
			SlowSpin:              valueOr(body, "slowSpin", false),
			PageBackgroundColor:   valueOr(body, "pageBackgroundColor", "#FFFFFF"),
			Description:           textOr(body["description"], defaultWheelDescription, maxWheelDescription),
			AnimateWinner:         false,
			Title:                 textOr(body["title"], defaultWheelTitle, maxWheelTitle),
			Type:                  "color",
			AutoRemoveWinner:      false,
			DuringSpinSound:       "ticking-sound",
			MaxNames:              1000,
			AfterSpinSoundVolume:  50,
			SpinTime:              10,
			HubSize:               "S",
			Entries:               entries,
			IsAdvanced:            false,
			ShowTitle:             true,
			DuringSpinSoundVolume: 50,
			DisplayRemoveButton:   true,
			PictureType:           "none",
			AllowDuplicates:       false,
			DrawOutlines:          false,
			LaunchConfetti:        true,
			DrawShadow:            true,
			PointerChangesColor:   true,
		},
	}, nil
}

// normalizeEntry accepts a string, an object with label or text, or any other value
func normalizeEntry(e any) dtos.WheelEntry {
	switch v := e.(type) {
	case string:
		return dtos.WheelEntry{Text: v, Enabled: true, Weight: 1}
	case map[string]any:
		label := firstPresent(v, "label", "text")
		text := objectString
		if label != nil {
			text = displayString(label)
		}
		return dtos.WheelEntry{
			Text:    text,
			Enabled: presentOr(v["enabled"], true),
			Weight:  presentOr(v["weight"], 1),
		}
	default:
		return dtos.WheelEntry{Text: displayString(v), Enabled: true, Weight: 1}
	}
}

const objectString = "[object Object]"

// displayString renders v the way a browser would print it
func displayString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			if item != nil {
				parts[i] = displayString(item)
			}
		}
		return strings.Join(parts, ",")
	default:
		return objectString
	}
}

// truthy follows loose JSON truthiness: null, false, 0 and "" are falsy
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

// textOr renders v, or fallback when v is falsy, cut to max characters
func textOr(v any, fallback string, max int) string {
	s := fallback
	if truthy(v) {
		s = displayString(v)
	}
	if r := []rune(s); len(r) > max {
		s = string(r[:max])
	}
	if s == "" {
		return fallback
	}
	return s
}

// valueOr returns body[key] when the key is present, even if null
func valueOr(body map[string]any, key string, fallback any) any {
	if v, ok := body[key]; ok {
		return v
	}
	return fallback
}

func presentOr(v any, fallback any) any {
	if v == nil {
		return fallback
	}
	return v
}

func firstPresent(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v := obj[k]; v != nil {
			return v
		}
	}
	return nil
}
