package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/combat-engine/internal/config"
	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/repositories/characters"
	"github.com/KirkDiggler/combat-engine/internal/repositories/monsters"
)

// stores is what the demo runs against; cleanup closes any connections
type stores struct {
	characters characters.Repository
	monsters   monsters.Repository
	cleanup    func()
}

func buildStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	out := &stores{cleanup: func() {}}

	switch cfg.StoreKind() {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Printf("Using Redis character store at %s", opts.Addr)
		out.characters = characters.NewRedis(client)
		out.cleanup = func() { _ = client.Close() }
	case "sqlite":
		repo, err := characters.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Printf("Using SQLite character store at %s", cfg.SQLitePath)
		out.characters = repo
		out.cleanup = func() { _ = repo.Close() }
	default:
		log.Println("Using in-memory character store")
		out.characters = characters.NewInMemoryRepository()
	}

	chain := []monsters.Repository{monsters.NewInMemoryRepository(builtinMonsters()...)}
	if cfg.MonsterFile != "" {
		fileRepo, err := monsters.LoadFile(cfg.MonsterFile)
		if err != nil {
			out.cleanup()
			return nil, err
		}
		chain = append([]monsters.Repository{fileRepo}, chain...)
	}
	if cfg.DND5E.APIEnabled {
		srd, err := monsters.NewSRDRepository(&monsters.SRDConfig{
			HTTPClient: &http.Client{Timeout: cfg.DND5E.HTTPTimeout},
		})
		if err != nil {
			out.cleanup()
			return nil, err
		}
		chain = append(chain, srd)
	}
	out.monsters = monsters.NewChain(chain...)

	return out, nil
}

// builtinMonsters keeps the demo runnable offline
func builtinMonsters() []*monsters.Monster {
	return []*monsters.Monster{
		{
			ID:           "goblin",
			Name:         "Goblin",
			CreatureType: "humanoid",
			ArmorClass:   15,
			HitPoints:    7,
			Speed:        30,
			AbilityScores: map[combat.Ability]int{
				combat.AbilityStrength:  8,
				combat.AbilityDexterity: 14,
			},
		},
		{
			ID:                    "skeleton",
			Name:                  "Skeleton",
			CreatureType:          "undead",
			ArmorClass:            13,
			HitPoints:             13,
			Speed:                 30,
			DamageVulnerabilities: []string{"bludgeoning"},
			DamageImmunities:      []string{"poison"},
		},
	}
}
