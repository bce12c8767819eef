package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-live-sync/internal/config"
	"github.com/MKhiriev/go-live-sync/internal/logger"
	"github.com/MKhiriev/go-live-sync/internal/utils"
	"github.com/MKhiriev/go-live-sync/models"
)

// disabledAPIKey is the value historically used to switch the transport off.
const disabledAPIKey = "0"

type fcmAdapter struct {
	client *utils.HTTPClient
	apiKey string
	url    string

	logger *logger.Logger
}

// NewPushAdapter returns the transport for apiKey. An empty key or "0" yields
// an adapter whose Send always fails with [ErrTransportUnconfigured].
func NewPushAdapter(apiKey string, cfg config.Adapter, logger *logger.Logger) (PushAdapter, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" || apiKey == disabledAPIKey {
		logger.Warn().Str("func", "NewPushAdapter").Msg("no push api key configured, notifications are disabled")
		return nopAdapter{}, nil
	}

	pushURL, err := normalizePushURL(cfg.PushURL)
	if err != nil {
		return nil, err
	}

	client := utils.NewHTTPClient()
	client.SetTimeout(cfg.RequestTimeout)

	return &fcmAdapter{
		client: client,
		apiKey: apiKey,
		url:    pushURL,
		logger: logger,
	}, nil
}

func normalizePushURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPushURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPushURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidPushURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidPushURL)
	}
	return u.String(), nil
}

func (a *fcmAdapter) Send(ctx context.Context, msg models.PushMessage) (models.DeliveryResult, error) {
	var result models.DeliveryResult

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "key="+a.apiKey).
		SetBody(msg).
		SetResult(&result).
		Post(a.url)
	if err != nil {
		return models.DeliveryResult{}, fmt.Errorf("push request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeliveryResult{}, err
	}

	a.logger.Debug().
		Str("func", "fcmAdapter.Send").
		Int("tokens", len(msg.RegistrationIDs)).
		Int("success", result.Success).
		Int("failure", result.Failure).
		Msg("push message accepted")

	return result, nil
}

type nopAdapter struct{}

func (nopAdapter) Send(context.Context, models.PushMessage) (models.DeliveryResult, error) {
	return models.DeliveryResult{}, ErrTransportUnconfigured
}
