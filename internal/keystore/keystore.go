package keystore

import (
	"context"
	"errors"
	"fmt"

	"FinBoard/pkg/cache"
	"FinBoard/pkg/config"
)

// Keys is one user's provider credential set. Absent keys are empty strings;
// callers treat a missing key as "skip this provider", never as fatal.
type Keys struct {
	AlphaVantage string `json:"alphaVantage"`
	Finnhub      string `json:"finnhub"`
	NewsAPI      string `json:"newsApi"`
}

// Store persists per-user provider keys. Backed by the shared cache service,
// so Redis when configured and process memory otherwise.
type Store struct {
	cache    cache.Service
	defaults Keys
}

// New creates a key store. Config-sourced keys act as the default set
// returned when a user has none saved for a provider.
func New(c cache.Service, cfg *config.Config) *Store {
	return &Store{
		cache: c,
		defaults: Keys{
			AlphaVantage: cfg.AlphaVantage.APIKey,
			Finnhub:      cfg.Finnhub.APIKey,
			NewsAPI:      cfg.NewsAPI.APIKey,
		},
	}
}

func userKey(userID string) string {
	return fmt.Sprintf("user:%s:keys", userID)
}

// Load returns the keys saved for userID, or all-empty keys when none exist.
func (s *Store) Load(ctx context.Context, userID string) (Keys, error) {
	var keys Keys
	err := s.cache.Get(ctx, userKey(userID), &keys)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return Keys{}, nil
		}
		return Keys{}, fmt.Errorf("load keys: %w", err)
	}
	return keys, nil
}

// Save stores the keys for userID without expiry.
func (s *Store) Save(ctx context.Context, userID string, keys Keys) error {
	if err := s.cache.Set(ctx, userKey(userID), keys, 0); err != nil {
		return fmt.Errorf("save keys: %w", err)
	}
	return nil
}

// Defaults returns the environment-sourced default credential set.
func (s *Store) Defaults() Keys {
	return s.defaults
}

// Resolve merges a user's saved keys over the defaults. An empty userID
// resolves to the defaults directly.
func (s *Store) Resolve(ctx context.Context, userID string) (Keys, error) {
	if userID == "" {
		return s.defaults, nil
	}

	saved, err := s.Load(ctx, userID)
	if err != nil {
		return Keys{}, err
	}

	out := saved
	if out.AlphaVantage == "" {
		out.AlphaVantage = s.defaults.AlphaVantage
	}
	if out.Finnhub == "" {
		out.Finnhub = s.defaults.Finnhub
	}
	if out.NewsAPI == "" {
		out.NewsAPI = s.defaults.NewsAPI
	}
	return out, nil
}
