package monsters

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
)

// SRDClient is the part of the dnd5e API client the store needs
type SRDClient interface {
	GetMonster(key string) (*apiEntities.Monster, error)
}

// SRDConfig configures the SRD backed store
type SRDConfig struct {
	// Client overrides the API client; HTTPClient is used to build one otherwise
	Client     SRDClient
	HTTPClient *http.Client
}

// srdRepo fetches templates from the dnd5e API and caches them
type srdRepo struct {
	client SRDClient

	mu    sync.RWMutex
	cache map[string]*Monster
}

// NewSRDRepository creates a store backed by the dnd5e API
func NewSRDRepository(cfg *SRDConfig) (Repository, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("SRDConfig cannot be nil")
	}

	client := cfg.Client
	if client == nil {
		httpClient := cfg.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: 10 * time.Second}
		}
		api, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
			Client: httpClient,
		})
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to create dnd5e client")
		}
		client = api
	}

	return &srdRepo{
		client: client,
		cache:  make(map[string]*Monster),
	}, nil
}

// Get looks the template up by SRD key ("goblin", "skeleton")
func (r *srdRepo) Get(ctx context.Context, id string) (*Monster, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("monster ID is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	cached, ok := r.cache[id]
	r.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	apiMonster, err := r.client.GetMonster(id)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to fetch monster from SRD").
			WithMeta("monster_id", id)
	}
	if apiMonster == nil {
		return nil, dnderr.NotFoundf("monster with ID '%s' not found", id).
			WithMeta("monster_id", id)
	}

	m := fromAPIMonster(id, apiMonster)
	log.Printf("[MONSTERS] loaded %s from SRD (hp %d, ac %d)", m.Name, m.HitPoints, m.ArmorClass)

	r.mu.Lock()
	r.cache[id] = m
	r.mu.Unlock()

	return m.Clone(), nil
}

func fromAPIMonster(id string, input *apiEntities.Monster) *Monster {
	m := &Monster{
		ID:           id,
		Name:         input.Name,
		CreatureType: strings.ToLower(fmt.Sprint(input.Type)),
		ArmorClass:   int(input.ArmorClass),
		HitPoints:    int(input.HitPoints),
		HitDice:      fmt.Sprint(input.HitDice),
	}
	if m.Name == "" {
		m.Name = input.Key
	}
	return m
}

// chain asks each store in order and returns the first hit
type chain struct {
	repos []Repository
}

// NewChain combines stores, e.g. a local YAML file in front of the SRD
func NewChain(repos ...Repository) Repository {
	return &chain{repos: repos}
}

func (c *chain) Get(ctx context.Context, id string) (*Monster, error) {
	var lastErr error
	for _, repo := range c.repos {
		m, err := repo.Get(ctx, id)
		if err == nil {
			return m, nil
		}
		if !dnderr.IsNotFound(err) {
			return nil, err
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = dnderr.NotFoundf("monster with ID '%s' not found", id).WithMeta("monster_id", id)
	}
	return nil, lastErr
}
