package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/config"
)

func spawnPredator(x, y float64) Spawn {
	return Spawn{
		Pos:    r2.Vec{X: x, Y: y},
		Vitals: components.Vitals{Energy: 10000},
		Genome: components.Genome{Speed: 0.15, Vision: 15, Health: 300, Damage: 20},
		Kind:   components.KindPredator,
	}
}

func TestDecide_FleeOverridesMating(t *testing.T) {
	cfg := config.Defaults()
	f := plainsField(t, cfg, 30)
	b := NewBehaviorSystem(f, cfg)
	q := NewInfectionQueue()
	rng := rand.New(rand.NewSource(1))

	// Two ready mates in contact, a predator well inside 0.8 * vision of the first.
	_, agents := registryWith(
		spawnPrey(10, 10, 95),
		spawnPrey(11, 10, 95),
		spawnPredator(6, 10),
	)

	d := b.Decide(0, agents, rng, q)
	if d.Intent != IntentFlee {
		t.Fatalf("intent = %s, want flee", d.Intent)
	}
	if d.Desired.X >= 0 {
		t.Errorf("flee displacement %v does not point away from predator", d.Desired)
	}

	want := agents[0].Genome.Speed * cfg.Behavior.FleeSpeedFactor
	if got := r2.Norm(d.Desired); math.Abs(got-want) > 1e-9 {
		t.Errorf("flee speed = %v, want %v", got, want)
	}
}

func TestDecide_FleeIgnoresDistantPredator(t *testing.T) {
	cfg := config.Defaults()
	f := plainsField(t, cfg, 40)
	b := NewBehaviorSystem(f, cfg)

	// Vision 10, flee radius 8; predator at distance 9.
	_, agents := registryWith(
		spawnPrey(10, 10, 95),
		spawnPrey(11, 10, 95),
		spawnPredator(1, 10),
	)

	d := b.Decide(0, agents, rand.New(rand.NewSource(1)), NewInfectionQueue())
	if d.Intent != IntentSeekMate {
		t.Fatalf("intent = %s, want mate", d.Intent)
	}
	if d.Desired.X <= 0 {
		t.Errorf("mate displacement %v does not point toward mate", d.Desired)
	}
}

func TestDecide_MateRequiresBothReady(t *testing.T) {
	cfg := config.Defaults()
	f := plainsField(t, cfg, 30)
	b := NewBehaviorSystem(f, cfg)

	tests := []struct {
		name     string
		self     Spawn
		other    Spawn
		wantMate bool
	}{
		{"both ready", spawnPrey(10, 10, 95), spawnPrey(12, 10, 95), true},
		{"self hungry", spawnPrey(10, 10, 80), spawnPrey(12, 10, 95), false},
		{"other hungry", spawnPrey(10, 10, 95), spawnPrey(12, 10, 80), false},
		{"other cooling down", spawnPrey(10, 10, 95), func() Spawn {
			s := spawnPrey(12, 10, 95)
			s.Vitals.Cooldown = 3
			return s
		}(), false},
		{"out of range", spawnPrey(10, 10, 95), spawnPrey(26, 10, 95), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, agents := registryWith(tt.self, tt.other)
			d := b.Decide(0, agents, rand.New(rand.NewSource(1)), NewInfectionQueue())
			if got := d.Intent == IntentSeekMate; got != tt.wantMate {
				t.Errorf("seek mate = %v, want %v (intent %s)", got, tt.wantMate, d.Intent)
			}
		})
	}
}

func TestDecide_DesertPenalty(t *testing.T) {
	cfg := config.Defaults()
	rows := []string{
		"PPPPPPPPPPPPPPPPPPPPP",
	}
	for len(rows) < 21 {
		rows = append(rows, rows[0])
	}
	// Desert cell three cells east of the agent.
	rows[10] = "PPPPPPPPPPPPPDPPPPPPP"
	f := terrainFromRows(t, cfg, rows...)
	f.AddFood(13, 10, 80) // desert
	f.AddFood(7, 10, 80)  // plains, same distance west

	b := NewBehaviorSystem(f, cfg)
	_, agents := registryWith(spawnPrey(10.5, 10.5, 60))

	d := b.Decide(0, agents, rand.New(rand.NewSource(1)), NewInfectionQueue())
	if d.Intent != IntentSeekFood {
		t.Fatalf("intent = %s, want food", d.Intent)
	}
	if !vecNear(d.Target, r2.Vec{X: 7.5, Y: 10.5}) {
		t.Errorf("food target = %v, want plains cell (7.5, 10.5)", d.Target)
	}
	if d.Desired.X >= 0 {
		t.Errorf("displacement %v does not point toward the plains cell", d.Desired)
	}
}

func TestDecide_DesertFoodUsedWhenAlone(t *testing.T) {
	cfg := config.Defaults()
	f := terrainFromRows(t, cfg,
		"PPPPP",
		"PPPPP",
		"PPPPD",
		"PPPPP",
		"PPPPP",
	)
	f.AddFood(4, 2, 80)
	b := NewBehaviorSystem(f, cfg)
	_, agents := registryWith(spawnPrey(1.5, 2.5, 60))

	d := b.Decide(0, agents, rand.New(rand.NewSource(1)), NewInfectionQueue())
	if d.Intent != IntentSeekFood {
		t.Errorf("intent = %s, want food", d.Intent)
	}
}

func TestDecide_OceanFoodIgnored(t *testing.T) {
	cfg := config.Defaults()
	f := terrainFromRows(t, cfg,
		"PPO",
		"PPO",
		"PPO",
	)
	f.AddFood(2, 1, 80)
	b := NewBehaviorSystem(f, cfg)
	_, agents := registryWith(spawnPrey(0.5, 1.5, 60))

	d := b.Decide(0, agents, rand.New(rand.NewSource(1)), NewInfectionQueue())
	if d.Intent != IntentWander {
		t.Errorf("intent = %s, want wander", d.Intent)
	}
}

func TestDecide_WanderSpeed(t *testing.T) {
	cfg := config.Defaults()
	f := plainsField(t, cfg, 30)
	b := NewBehaviorSystem(f, cfg)
	_, agents := registryWith(spawnPrey(15, 15, 60))

	d := b.Decide(0, agents, rand.New(rand.NewSource(9)), NewInfectionQueue())
	if d.Intent != IntentWander {
		t.Fatalf("intent = %s, want wander", d.Intent)
	}
	want := agents[0].Genome.Speed * cfg.Behavior.WanderSpeedFactor
	if got := r2.Norm(d.Desired); math.Abs(got-want) > 1e-9 {
		t.Errorf("wander speed = %v, want %v", got, want)
	}
}

func TestDecide_ArrivedTargetDoesNotMove(t *testing.T) {
	cfg := config.Defaults()
	f := plainsField(t, cfg, 10)
	f.AddFood(4, 4, 80)
	b := NewBehaviorSystem(f, cfg)
	_, agents := registryWith(spawnPrey(4.5, 4.5, 60))

	d := b.Decide(0, agents, rand.New(rand.NewSource(1)), NewInfectionQueue())
	if d.Intent != IntentSeekFood {
		t.Fatalf("intent = %s, want food", d.Intent)
	}
	if d.Desired != (r2.Vec{}) {
		t.Errorf("agent on its target wants to move by %v", d.Desired)
	}
}

func TestDecide_TerrainSlowsAgent(t *testing.T) {
	cfg := config.Defaults()
	f := terrainFromRows(t, cfg,
		"MMMMM",
		"MMMMM",
		"MMMMM",
		"MMMMM",
		"MMMMM",
	)
	b := NewBehaviorSystem(f, cfg)
	_, agents := registryWith(spawnPrey(2.5, 2.5, 60))

	d := b.Decide(0, agents, rand.New(rand.NewSource(1)), NewInfectionQueue())
	want := agents[0].Genome.Speed * cfg.Terrain.Mountain.Speed * cfg.Behavior.WanderSpeedFactor
	if got := r2.Norm(d.Desired); math.Abs(got-want) > 1e-9 {
		t.Errorf("speed on mountain = %v, want %v", got, want)
	}
}

// ---------- Predators ----------

func TestDecide_PredatorPursuesNearest(t *testing.T) {
	cfg := config.Defaults()
	f := plainsField(t, cfg, 40)
	b := NewBehaviorSystem(f, cfg)
	q := NewInfectionQueue()

	_, agents := registryWith(
		spawnPrey(10, 20, 60),
		spawnPredator(20, 20),
		spawnPrey(25, 20, 60),
	)

	d := b.Decide(1, agents, rand.New(rand.NewSource(1)), q)
	if d.Intent != IntentPursue {
		t.Fatalf("intent = %s, want pursue", d.Intent)
	}
	if !vecNear(d.Target, r2.Vec{X: 25, Y: 20}) {
		t.Errorf("pursuit target = %v, want (25, 20)", d.Target)
	}
	if q.Len() != 0 {
		t.Errorf("no prey is in contact, but %d were tagged", q.Len())
	}
}

func TestDecide_PredatorTagsContactsOnce(t *testing.T) {
	cfg := config.Defaults()
	f := plainsField(t, cfg, 40)
	b := NewBehaviorSystem(f, cfg)
	q := NewInfectionQueue()
	rng := rand.New(rand.NewSource(1))

	_, agents := registryWith(
		spawnPredator(20, 20),
		spawnPrey(20.5, 20, 60),
		spawnPrey(19.5, 20.5, 60),
		spawnPredator(20, 20.5),
		spawnPrey(30, 20, 60),
	)

	b.Decide(0, agents, rng, q)
	b.Decide(3, agents, rng, q)

	if q.Len() != 2 {
		t.Errorf("tagged %d prey, want 2", q.Len())
	}
}

func TestDecide_InfectionCooldownPolicy(t *testing.T) {
	cfg := config.Defaults()
	cfg.Infection.RespectCooldown = true
	cfg.Infection.Cooldown = 30
	f := plainsField(t, cfg, 40)
	b := NewBehaviorSystem(f, cfg)

	_, agents := registryWith(
		spawnPredator(20, 20),
		spawnPrey(20.5, 20, 60),
	)

	q := NewInfectionQueue()
	b.Decide(0, agents, rand.New(rand.NewSource(1)), q)
	if q.Len() != 1 {
		t.Fatalf("tagged %d prey, want 1", q.Len())
	}
	if agents[0].Vitals.Cooldown != 30 {
		t.Errorf("predator cooldown = %v, want 30", agents[0].Vitals.Cooldown)
	}

	q.Reset()
	b.Decide(0, agents, rand.New(rand.NewSource(1)), q)
	if q.Len() != 0 {
		t.Errorf("predator on cooldown tagged %d prey", q.Len())
	}
}
