package services

import (
	"github.com/KirkDiggler/combat-engine/internal/dice"
	"github.com/KirkDiggler/combat-engine/internal/domain/features"
	"github.com/KirkDiggler/combat-engine/internal/events"
	"github.com/KirkDiggler/combat-engine/internal/repositories/characters"
	"github.com/KirkDiggler/combat-engine/internal/repositories/monsters"
	"github.com/KirkDiggler/combat-engine/internal/services/ability"
	"github.com/KirkDiggler/combat-engine/internal/services/bridge"
	"github.com/KirkDiggler/combat-engine/internal/services/condition"
)

// Provider holds the services of one combat session
type Provider struct {
	EventBus   *events.Bus
	Conditions condition.Service
	Bridge     bridge.Service
	Ability    ability.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CharacterRepository characters.Repository
	MonsterRepository   monsters.Repository

	EventBus   *events.Bus
	Catalog    *features.Catalog
	DiceRoller dice.Roller

	AutoSync        bool
	SyncConcurrency int
	ActorID         string

	// SubscribeTriggers lets bus events fire triggered features
	SubscribeTriggers bool
}

// NewProvider wires a session's services together, sharing one bus
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	// Use in-memory repositories if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	monsterRepo := cfg.MonsterRepository
	if monsterRepo == nil {
		monsterRepo = monsters.NewInMemoryRepository()
	}

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewBus()
	}

	conditionService := condition.NewService(&condition.Config{Bus: bus})

	bridgeService := bridge.NewService(&bridge.Config{
		CharacterStore:  charRepo,
		MonsterStore:    monsterRepo,
		Conditions:      conditionService,
		EventBus:        bus,
		AutoSync:        cfg.AutoSync,
		SyncConcurrency: cfg.SyncConcurrency,
		ActorID:         cfg.ActorID,
	})

	abilityService := ability.NewService(&ability.ServiceConfig{
		Bridge:     bridgeService,
		Catalog:    cfg.Catalog,
		DiceRoller: cfg.DiceRoller,
		EventBus:   bus,
	})

	if cfg.SubscribeTriggers {
		abilityService.SubscribeTriggers(bus)
	}

	return &Provider{
		EventBus:   bus,
		Conditions: conditionService,
		Bridge:     bridgeService,
		Ability:    abilityService,
	}
}
