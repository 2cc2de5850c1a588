// Package bridge keeps the combat-side view of characters and monsters in an
// encounter and writes character changes back to the character store.
package bridge

//go:generate mockgen -destination=mock/mock.go -package=mockbridge -source=types.go

import (
	"context"

	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/conditions"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
)

// Service is the entity bridge of one combat session.
// Runtime operations accept either the external ref (character id or monster
// instance key) or the internal handle, and report false for unknown ids.
type Service interface {
	// CreateFromCharacter registers a character; calling it again returns the existing entity
	CreateFromCharacter(ctx context.Context, characterID string) (*combat.Snapshot, error)

	// CreateFromMonster registers an instance of a template, keyed monsterID or monsterID#instanceName
	CreateFromMonster(ctx context.Context, monsterID, instanceName string) (*combat.Snapshot, error)

	ApplyDamage(ctx context.Context, id string, amount int, damageType damage.Type) bool
	ApplyHealing(ctx context.Context, id string, amount int) bool
	AddTemporaryHP(ctx context.Context, id string, amount int) bool

	ApplyCondition(ctx context.Context, id string, condType conditions.ConditionType, source string, duration conditions.Duration) bool
	RemoveCondition(ctx context.Context, id string, condType conditions.ConditionType) bool

	GetEntityData(id string) (*combat.Snapshot, bool)
	DefenseProfile(id string) (*damage.DefenseProfile, bool)
	CombatState(id string) (combat.CombatState, bool)
	SetCombatState(id string, state combat.CombatState) bool
	SetInitiative(id string, initiative, turnOrder int) bool

	// Entities lists the refs of every registered entity, sorted
	Entities() []string

	RemoveEntity(ctx context.Context, id string) bool

	// SyncAllToServices flushes every pending character write-back
	SyncAllToServices(ctx context.Context) error
	PendingSyncs() []string
}

// CreateInput is used by callers that build entities from a roster
type CreateInput struct {
	CharacterIDs []string
	Monsters     []MonsterInstance
}

// MonsterInstance names one monster to spawn
type MonsterInstance struct {
	MonsterID    string
	InstanceName string
}
