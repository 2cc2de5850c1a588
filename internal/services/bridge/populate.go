package bridge

import (
	"context"

	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
)

// Populate registers a whole roster, stopping at the first failure
func Populate(ctx context.Context, svc Service, input *CreateInput) ([]*combat.Snapshot, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	out := make([]*combat.Snapshot, 0, len(input.CharacterIDs)+len(input.Monsters))
	for _, id := range input.CharacterIDs {
		snap, err := svc.CreateFromCharacter(ctx, id)
		if err != nil {
			return out, err
		}
		out = append(out, snap)
	}
	for _, m := range input.Monsters {
		snap, err := svc.CreateFromMonster(ctx, m.MonsterID, m.InstanceName)
		if err != nil {
			return out, err
		}
		out = append(out, snap)
	}
	return out, nil
}
