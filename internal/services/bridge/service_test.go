package bridge_test

import (
	"context"
	"errors"
	"testing"
	"time"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/conditions"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
	"github.com/KirkDiggler/combat-engine/internal/events"
	"github.com/KirkDiggler/combat-engine/internal/repositories/characters"
	mockcharacters "github.com/KirkDiggler/combat-engine/internal/repositories/characters/mock"
	"github.com/KirkDiggler/combat-engine/internal/repositories/monsters"
	mockmonsters "github.com/KirkDiggler/combat-engine/internal/repositories/monsters/mock"
	"github.com/KirkDiggler/combat-engine/internal/services/bridge"
	"github.com/KirkDiggler/combat-engine/internal/services/condition"
	"github.com/KirkDiggler/combat-engine/internal/testutils"
	"github.com/KirkDiggler/combat-engine/internal/uuid"
)

type BridgeTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockChars    *mockcharacters.MockRepository
	mockMonsters *mockmonsters.MockRepository
	conditions   condition.Service
	bus          *events.Bus
	svc          bridge.Service
	ctx          context.Context
}

func (s *BridgeTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockChars = mockcharacters.NewMockRepository(s.ctrl)
	s.mockMonsters = mockmonsters.NewMockRepository(s.ctrl)
	s.bus = events.NewBus()
	s.conditions = condition.NewService(&condition.Config{Bus: s.bus, IDGenerator: uuid.NewSequenceGenerator("cond")})
	s.svc = bridge.NewService(&bridge.Config{
		CharacterStore: s.mockChars,
		MonsterStore:   s.mockMonsters,
		Conditions:     s.conditions,
		EventBus:       s.bus,
		IDGenerator:    uuid.NewSequenceGenerator("ent"),
	})
	s.ctx = context.Background()
}

func (s *BridgeTestSuite) TearDownTest() {
	s.bus.Close()
	s.ctrl.Finish()
}

func TestBridgeTestSuite(t *testing.T) {
	suite.Run(t, new(BridgeTestSuite))
}

func (s *BridgeTestSuite) expectCharacter(char *characters.Character) {
	s.mockChars.EXPECT().Get(gomock.Any(), char.ID).Return(char, nil).Times(1)
}

func (s *BridgeTestSuite) TestNewService_RequiresStores() {
	s.Panics(func() { bridge.NewService(nil) })
	s.Panics(func() { bridge.NewService(&bridge.Config{MonsterStore: s.mockMonsters}) })
	s.Panics(func() { bridge.NewService(&bridge.Config{CharacterStore: s.mockChars}) })
}

func (s *BridgeTestSuite) TestCreateFromCharacter() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "Brakka")
	delete(char.AbilityScores, combat.AbilityCharisma)
	char.AbilityScores[combat.AbilityWisdom] = 9
	s.expectCharacter(char)

	snap, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	s.Equal("ent-1", snap.Handle)
	s.Equal("char-1", snap.Ref)
	s.Equal(combat.KindCharacter, snap.Kind)
	s.Equal(combat.Health{Current: 12, Max: 12}, snap.Health)
	s.Equal(3, snap.Stats.Modifier(combat.AbilityStrength))
	s.Equal(-1, snap.Stats.Modifier(combat.AbilityWisdom))
	s.Equal(combat.DefaultAbilityScore, snap.Stats.Abilities[combat.AbilityCharisma])
	s.Equal(16, snap.Stats.ArmorClass)
	s.Equal(1, snap.Stats.Level)

	s.True(snap.Combat.ActionAvailable)
	s.True(snap.Combat.BonusActionAvailable)
	s.True(snap.Combat.ReactionAvailable)
	s.Equal(30, snap.Combat.MovementRemaining)
	s.Equal(0, snap.Combat.Initiative)
}

func (s *BridgeTestSuite) TestCreateFromCharacter_Idempotent() {
	s.expectCharacter(testutils.CreateTestCharacter("char-1", "owner-1", "Brakka"))

	first, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)
	second, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	s.Equal(first.Handle, second.Handle)
	s.Equal([]string{"char-1"}, s.svc.Entities())
}

func (s *BridgeTestSuite) TestCreateFromCharacter_RestoresConditions() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "Brakka")
	char.Conditions = []string{"poisoned"}
	s.expectCharacter(char)

	snap, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)
	s.Equal([]string{"poisoned"}, snap.Conditions)
}

func (s *BridgeTestSuite) TestCreateFromCharacter_NotFound() {
	s.mockChars.EXPECT().Get(gomock.Any(), "ghost").
		Return(nil, dnderr.NotFoundf("character with ID '%s' not found", "ghost"))

	_, err := s.svc.CreateFromCharacter(s.ctx, "ghost")
	s.True(dnderr.IsNotFound(err))
	s.Empty(s.svc.Entities())
}

func (s *BridgeTestSuite) TestCreateFromMonster_Instances() {
	s.mockMonsters.EXPECT().Get(gomock.Any(), "goblin").Return(testutils.CreateTestGoblin(), nil).Times(2)

	a, err := s.svc.CreateFromMonster(s.ctx, "goblin", "a")
	s.Require().NoError(err)
	b, err := s.svc.CreateFromMonster(s.ctx, "goblin", "b")
	s.Require().NoError(err)

	s.Equal("goblin#a", a.Ref)
	s.Equal("goblin#b", b.Ref)
	s.Equal("Goblin a", a.Name)
	s.Equal(7, a.Health.Max)
	s.Equal(15, a.Stats.ArmorClass)
	s.Equal(2, a.Stats.Modifier(combat.AbilityDexterity))

	s.True(s.svc.ApplyDamage(s.ctx, "goblin#a", 5, damage.TypeSlashing))
	bAfter, _ := s.svc.GetEntityData("goblin#b")
	s.Equal(7, bAfter.Health.Current, "instances do not share health")

	// same instance key is not created twice
	again, err := s.svc.CreateFromMonster(s.ctx, "goblin", "a")
	s.Require().NoError(err)
	s.Equal(a.Handle, again.Handle)
}

func (s *BridgeTestSuite) TestCreateFromMonster_HitDiceFallback() {
	s.mockMonsters.EXPECT().Get(gomock.Any(), "skeleton").Return(testutils.CreateTestSkeleton(), nil)

	snap, err := s.svc.CreateFromMonster(s.ctx, "skeleton", "")
	s.Require().NoError(err)
	s.Equal("skeleton", snap.Ref)
	s.Equal(2, snap.Health.Max)
	s.Equal("undead", snap.CreatureType)

	profile, ok := s.svc.DefenseProfile("skeleton")
	s.Require().True(ok)
	s.True(profile.IsUndead())

	res := damage.ResolveOne(damage.Instance{Amount: 4, Type: damage.TypeBludgeoning}, profile)
	s.Equal(8, res.Total)
	res = damage.ResolveOne(damage.Instance{Amount: 4, Type: damage.TypePoison}, profile)
	s.Equal(0, res.Total)
}

func (s *BridgeTestSuite) TestCreateFromMonster_NoHitPointsAtAll() {
	s.mockMonsters.EXPECT().Get(gomock.Any(), "wisp").Return(&monsters.Monster{ID: "wisp", Name: "Wisp"}, nil)

	snap, err := s.svc.CreateFromMonster(s.ctx, "wisp", "")
	s.Require().NoError(err)
	s.Equal(1, snap.Health.Max)
}

func (s *BridgeTestSuite) TestCreateFromMonster_NotFound() {
	s.mockMonsters.EXPECT().Get(gomock.Any(), "dragon").Return(nil, dnderr.NotFound("no dragons"))

	_, err := s.svc.CreateFromMonster(s.ctx, "dragon", "")
	s.True(dnderr.IsNotFound(err))
}

func (s *BridgeTestSuite) TestApplyDamage_TemporaryFirst() {
	s.expectCharacter(testutils.CreateTestCharacter("char-1", "owner-1", "Brakka"))
	_, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	s.True(s.svc.AddTemporaryHP(s.ctx, "char-1", 5))
	s.False(s.svc.AddTemporaryHP(s.ctx, "char-1", 3), "temporary HP does not stack")

	s.True(s.svc.ApplyDamage(s.ctx, "char-1", 8, damage.TypeFire))

	snap, _ := s.svc.GetEntityData("char-1")
	s.Equal(0, snap.Health.Temporary)
	s.Equal(9, snap.Health.Current)

	s.True(s.svc.ApplyDamage(s.ctx, "char-1", 50, damage.TypeFire))
	snap, _ = s.svc.GetEntityData("char-1")
	s.Equal(0, snap.Health.Current)
}

func (s *BridgeTestSuite) TestApplyHealing_ClampsToMax() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "Brakka")
	char.HitPoints.Current = 4
	s.expectCharacter(char)
	_, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	s.True(s.svc.ApplyHealing(s.ctx, "char-1", 100))
	snap, _ := s.svc.GetEntityData("char-1")
	s.Equal(12, snap.Health.Current)
}

func (s *BridgeTestSuite) TestUnknownIDsReportFalse() {
	s.False(s.svc.ApplyDamage(s.ctx, "nobody", 5, damage.TypeFire))
	s.False(s.svc.ApplyHealing(s.ctx, "nobody", 5))
	s.False(s.svc.AddTemporaryHP(s.ctx, "nobody", 5))
	s.False(s.svc.ApplyCondition(s.ctx, "nobody", conditions.Prone, "test", conditions.Permanent))
	s.False(s.svc.RemoveCondition(s.ctx, "nobody", conditions.Prone))
	s.False(s.svc.SetInitiative("nobody", 10, 1))
	s.False(s.svc.SetCombatState("nobody", combat.CombatState{}))
	s.False(s.svc.RemoveEntity(s.ctx, "nobody"))

	_, ok := s.svc.GetEntityData("nobody")
	s.False(ok)
	_, ok = s.svc.DefenseProfile("nobody")
	s.False(ok)
	_, ok = s.svc.CombatState("nobody")
	s.False(ok)
}

func (s *BridgeTestSuite) TestLookupByHandle() {
	s.expectCharacter(testutils.CreateTestCharacter("char-1", "owner-1", "Brakka"))
	snap, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	s.True(s.svc.ApplyDamage(s.ctx, snap.Handle, 2, damage.TypeCold))
	byRef, ok := s.svc.GetEntityData("char-1")
	s.Require().True(ok)
	s.Equal(10, byRef.Health.Current)
}

func (s *BridgeTestSuite) TestConditions() {
	s.expectCharacter(testutils.CreateTestCharacter("char-1", "owner-1", "Brakka"))
	_, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	s.True(s.svc.ApplyCondition(s.ctx, "char-1", conditions.Petrified, "medusa", conditions.Permanent))

	profile, ok := s.svc.DefenseProfile("char-1")
	s.Require().True(ok)
	s.Equal([]string{"petrified"}, profile.Conditions)
	s.Equal(0, damage.ResolveOne(damage.Instance{Amount: 9, Type: damage.TypePoison}, profile).Total)
	s.Equal(4, damage.ResolveOne(damage.Instance{Amount: 9, Type: damage.TypeFire}, profile).Total)

	s.True(s.svc.RemoveCondition(s.ctx, "char-1", conditions.Petrified))
	s.False(s.svc.RemoveCondition(s.ctx, "char-1", conditions.Petrified))

	snap, _ := s.svc.GetEntityData("char-1")
	s.Empty(snap.Conditions)
}

func (s *BridgeTestSuite) TestDamageEndsUntilDamagedConditions() {
	s.expectCharacter(testutils.CreateTestCharacter("char-1", "owner-1", "Brakka"))
	_, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	s.True(s.svc.ApplyCondition(s.ctx, "char-1", conditions.UncannyDodge, "uncanny_dodge",
		conditions.Duration{Type: conditions.DurationUntilDamaged}))
	s.True(s.svc.ApplyDamage(s.ctx, "char-1", 3, damage.TypeSlashing))

	s.False(s.conditions.Has("char-1", conditions.UncannyDodge))
}

func (s *BridgeTestSuite) TestApplyDamage_PublishesEvent() {
	s.expectCharacter(testutils.CreateTestCharacter("char-1", "owner-1", "Brakka"))
	_, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	var gotAmount, gotRemaining int
	var gotType, gotTarget string
	s.bus.Subscribe(events.AfterTakeDamage, 0, func(_ context.Context, e rpgevents.Event) error {
		gotAmount, _ = events.IntValue(e, events.KeyAmount)
		gotRemaining, _ = events.IntValue(e, events.KeyRemainingHP)
		gotType, _ = events.StringValue(e, events.KeyDamageType)
		gotTarget = e.Target().GetID()
		return nil
	})

	s.True(s.svc.ApplyDamage(s.ctx, "char-1", 5, damage.TypeNecrotic))

	s.Equal(5, gotAmount)
	s.Equal(7, gotRemaining)
	s.Equal("necrotic", gotType)
	s.Equal("char-1", gotTarget)
}

func (s *BridgeTestSuite) TestInitiativeAndCombatState() {
	s.expectCharacter(testutils.CreateTestCharacter("char-1", "owner-1", "Brakka"))
	_, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	s.True(s.svc.SetInitiative("char-1", 17, 2))

	state, ok := s.svc.CombatState("char-1")
	s.Require().True(ok)
	s.Equal(17, state.Initiative)
	s.Equal(2, state.TurnOrder)

	state.Spend(combat.CostAction)
	s.True(s.svc.SetCombatState("char-1", state))

	again, _ := s.svc.CombatState("char-1")
	s.False(again.ActionAvailable)
	s.Equal(17, again.Initiative)
}

func (s *BridgeTestSuite) TestRemoveEntity() {
	s.expectCharacter(testutils.CreateTestCharacter("char-1", "owner-1", "Brakka"))
	snap, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)
	s.True(s.svc.ApplyCondition(s.ctx, "char-1", conditions.Prone, "shove", conditions.Permanent))

	// the unsynced condition goes out in one last write
	written := make(chan *characters.Update, 1)
	s.mockChars.EXPECT().Update(gomock.Any(), "char-1", "combat-engine", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, update *characters.Update) (*characters.Character, error) {
			written <- update
			return &characters.Character{ID: "char-1"}, nil
		})

	s.True(s.svc.RemoveEntity(s.ctx, "char-1"))

	select {
	case update := <-written:
		s.Require().NotNil(update.Conditions)
		s.Equal([]string{"prone"}, *update.Conditions)
	case <-time.After(2 * time.Second):
		s.Fail("final write-back never sent")
	}

	_, ok := s.svc.GetEntityData("char-1")
	s.False(ok)
	_, ok = s.svc.GetEntityData(snap.Handle)
	s.False(ok)
	s.Empty(s.svc.Entities())
	s.False(s.conditions.Has("char-1", conditions.Prone))
}

func (s *BridgeTestSuite) TestMonsterChangesAreNotSynced() {
	s.mockMonsters.EXPECT().Get(gomock.Any(), "goblin").Return(testutils.CreateTestGoblin(), nil)
	_, err := s.svc.CreateFromMonster(s.ctx, "goblin", "")
	s.Require().NoError(err)

	s.True(s.svc.ApplyDamage(s.ctx, "goblin", 3, damage.TypeFire))
	s.Empty(s.svc.PendingSyncs())
	s.NoError(s.svc.SyncAllToServices(s.ctx))
}

func (s *BridgeTestSuite) TestSyncFailureStaysPending() {
	s.expectCharacter(testutils.CreateTestCharacter("char-1", "owner-1", "Brakka"))
	_, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	s.True(s.svc.ApplyDamage(s.ctx, "char-1", 3, damage.TypeFire))
	s.Equal([]string{"char-1"}, s.svc.PendingSyncs())

	s.mockChars.EXPECT().Update(gomock.Any(), "char-1", "combat-engine", gomock.Any()).
		Return(nil, errors.New("store offline"))

	err = s.svc.SyncAllToServices(s.ctx)
	s.Require().Error(err)
	s.Contains(err.Error(), "store offline")
	s.Equal([]string{"char-1"}, s.svc.PendingSyncs())
}

func (s *BridgeTestSuite) TestSyncSendsHitPointsAndConditions() {
	s.expectCharacter(testutils.CreateTestCharacter("char-1", "owner-1", "Brakka"))
	_, err := s.svc.CreateFromCharacter(s.ctx, "char-1")
	s.Require().NoError(err)

	s.True(s.svc.ApplyDamage(s.ctx, "char-1", 5, damage.TypeFire))
	s.True(s.svc.ApplyCondition(s.ctx, "char-1", conditions.Prone, "shove", conditions.Permanent))

	s.mockChars.EXPECT().Update(gomock.Any(), "char-1", "combat-engine", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, update *characters.Update) (*characters.Character, error) {
			s.Require().NotNil(update.HitPoints)
			s.Equal(7, update.HitPoints.Current)
			s.Equal(12, update.HitPoints.Max)
			s.Require().NotNil(update.Conditions)
			s.Equal([]string{"prone"}, *update.Conditions)
			s.Nil(update.Name)
			return &characters.Character{ID: "char-1"}, nil
		})

	s.Require().NoError(s.svc.SyncAllToServices(s.ctx))
	s.Empty(s.svc.PendingSyncs())
}

func TestSyncAllToServices_InMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := characters.NewInMemoryRepository()
	for _, id := range []string{"a", "b", "c"} {
		if err := store.Create(ctx, testutils.CreateTestCharacter(id, "owner-1", id)); err != nil {
			t.Fatal(err)
		}
	}

	svc := bridge.NewService(&bridge.Config{
		CharacterStore:  store,
		MonsterStore:    monsters.NewInMemoryRepository(),
		SyncConcurrency: 2,
	})

	for _, id := range []string{"a", "b", "c"} {
		if _, err := svc.CreateFromCharacter(ctx, id); err != nil {
			t.Fatal(err)
		}
		svc.ApplyDamage(ctx, id, 2, damage.TypeFire)
	}

	if got := svc.PendingSyncs(); len(got) != 3 {
		t.Fatalf("pending = %v, want 3 entries", got)
	}
	if err := svc.SyncAllToServices(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := svc.PendingSyncs(); len(got) != 0 {
		t.Fatalf("pending after sync = %v", got)
	}

	for _, id := range []string{"a", "b", "c"} {
		char, err := store.Get(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if char.HitPoints.Current != 10 {
			t.Fatalf("%s current = %d, want 10", id, char.HitPoints.Current)
		}
		if char.UpdatedBy != "combat-engine" {
			t.Fatalf("%s updated_by = %q", id, char.UpdatedBy)
		}
	}
}

func TestAutoSync_WritesInBackground(t *testing.T) {
	ctx := context.Background()
	store := characters.NewInMemoryRepository()
	if err := store.Create(ctx, testutils.CreateTestCharacter("char-1", "owner-1", "Brakka")); err != nil {
		t.Fatal(err)
	}

	svc := bridge.NewService(&bridge.Config{
		CharacterStore: store,
		MonsterStore:   monsters.NewInMemoryRepository(),
		AutoSync:       true,
		ActorID:        "session-42",
	})
	if _, err := svc.CreateFromCharacter(ctx, "char-1"); err != nil {
		t.Fatal(err)
	}

	svc.ApplyDamage(ctx, "char-1", 4, damage.TypeFire)

	deadline := time.Now().Add(2 * time.Second)
	for {
		char, err := store.Get(ctx, "char-1")
		if err != nil {
			t.Fatal(err)
		}
		if char.HitPoints.Current == 8 && char.UpdatedBy == "session-42" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("character not synced: %+v", char.HitPoints)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// slowStore holds back writes carrying one hit point value
type slowStore struct {
	characters.Repository
	slowHP int
	delay  time.Duration
}

func (s *slowStore) Update(ctx context.Context, id, actorID string, update *characters.Update) (*characters.Character, error) {
	if update.HitPoints != nil && update.HitPoints.Current == s.slowHP {
		time.Sleep(s.delay)
	}
	return s.Repository.Update(ctx, id, actorID, update)
}

func TestAutoSync_SlowWriteDoesNotOverwriteNewerState(t *testing.T) {
	ctx := context.Background()
	inner := characters.NewInMemoryRepository()
	char := testutils.CreateTestFighter("char-1")
	char.HitPoints = characters.HitPoints{Current: 30, Max: 30}
	if err := inner.Create(ctx, char); err != nil {
		t.Fatal(err)
	}

	svc := bridge.NewService(&bridge.Config{
		CharacterStore: &slowStore{Repository: inner, slowHP: 25, delay: 100 * time.Millisecond},
		MonsterStore:   monsters.NewInMemoryRepository(),
		AutoSync:       true,
	})
	if _, err := svc.CreateFromCharacter(ctx, "char-1"); err != nil {
		t.Fatal(err)
	}

	svc.ApplyDamage(ctx, "char-1", 5, damage.TypeSlashing)
	svc.ApplyDamage(ctx, "char-1", 10, damage.TypeSlashing)

	deadline := time.Now().Add(2 * time.Second)
	for len(svc.PendingSyncs()) > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("still pending: %v", svc.PendingSyncs())
		}
		time.Sleep(10 * time.Millisecond)
	}

	// give a stale write time to land if one were still in flight
	time.Sleep(250 * time.Millisecond)

	stored, err := inner.Get(ctx, "char-1")
	if err != nil {
		t.Fatal(err)
	}
	snap, _ := svc.GetEntityData("char-1")
	if stored.HitPoints.Current != 15 || snap.Health.Current != 15 {
		t.Fatalf("store HP = %d, engine HP = %d, want 15", stored.HitPoints.Current, snap.Health.Current)
	}
	if got := svc.PendingSyncs(); len(got) != 0 {
		t.Fatalf("pending = %v", got)
	}
}

func TestSyncAllToServices_WaitsForWriteInFlight(t *testing.T) {
	ctx := context.Background()
	inner := characters.NewInMemoryRepository()
	char := testutils.CreateTestFighter("char-1")
	char.HitPoints = characters.HitPoints{Current: 30, Max: 30}
	if err := inner.Create(ctx, char); err != nil {
		t.Fatal(err)
	}

	svc := bridge.NewService(&bridge.Config{
		CharacterStore: &slowStore{Repository: inner, slowHP: 27, delay: 100 * time.Millisecond},
		MonsterStore:   monsters.NewInMemoryRepository(),
		AutoSync:       true,
	})
	if _, err := svc.CreateFromCharacter(ctx, "char-1"); err != nil {
		t.Fatal(err)
	}

	svc.ApplyDamage(ctx, "char-1", 3, damage.TypeFire)
	svc.ApplyHealing(ctx, "char-1", 1)
	if err := svc.SyncAllToServices(ctx); err != nil {
		t.Fatal(err)
	}
	time.Sleep(250 * time.Millisecond)

	stored, err := inner.Get(ctx, "char-1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.HitPoints.Current != 28 {
		t.Fatalf("store HP = %d, want 28", stored.HitPoints.Current)
	}
}

func TestPopulate(t *testing.T) {
	ctx := context.Background()
	store := characters.NewInMemoryRepository()
	if err := store.Create(ctx, testutils.CreateTestFighter("fighter-1")); err != nil {
		t.Fatal(err)
	}
	svc := bridge.NewService(&bridge.Config{
		CharacterStore: store,
		MonsterStore:   monsters.NewInMemoryRepository(testutils.CreateTestGoblin()),
	})

	snaps, err := bridge.Populate(ctx, svc, &bridge.CreateInput{
		CharacterIDs: []string{"fighter-1"},
		Monsters:     []bridge.MonsterInstance{{MonsterID: "goblin", InstanceName: "1"}, {MonsterID: "goblin", InstanceName: "2"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 3 {
		t.Fatalf("got %d entities", len(snaps))
	}
	if snaps[2].Ref != "goblin#2" {
		t.Fatalf("ref = %s", snaps[2].Ref)
	}

	_, err = bridge.Populate(ctx, svc, &bridge.CreateInput{Monsters: []bridge.MonsterInstance{{MonsterID: "lich"}}})
	if !dnderr.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}
