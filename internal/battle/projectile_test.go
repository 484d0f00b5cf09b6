package battle

import (
	"testing"

	"lanewars/internal/units"
)

func TestArcherFiresProjectileThatLandsOnce(t *testing.T) {
	m, _ := newTestMatch(t)
	place(m, units.Archer, Player, 300)
	target := place(m, units.Clubman, Enemy, 480)

	m.Tick()
	if len(m.projectiles) != 1 {
		t.Fatalf("Expected one projectile after the first tick, got %d", len(m.projectiles))
	}
	if target.HP != 50 {
		t.Fatalf("Expected no damage at launch, hp=%v", target.HP)
	}

	// Without clock movement the archer never becomes ready again, so only
	// the first arrow is in flight.
	for i := 0; i < 200 && len(m.projectiles) > 0; i++ {
		m.Tick()
	}
	if len(m.projectiles) != 0 {
		t.Fatal("Expected projectile to resolve")
	}
	if target.HP != 35 {
		t.Errorf("Expected a single 15 damage hit, hp=%v", target.HP)
	}
}

func TestProjectileTracksMovingTarget(t *testing.T) {
	m, _ := newTestMatch(t)
	archer := place(m, units.Archer, Player, 100)
	target := place(m, units.Knight, Enemy, 300)
	m.launchProjectile(archer, target)

	target.X = 200
	m.updateProjectiles()

	p := m.projectiles[0]
	if p.AimX != 200 {
		t.Errorf("Expected aim to follow the target to 200, got %v", p.AimX)
	}
	if p.X != 105 {
		t.Errorf("Expected projectile to move one step to 105, got %v", p.X)
	}
}

func TestProjectileKeepsLastAimWhenTargetGone(t *testing.T) {
	m, _ := newTestMatch(t)
	archer := place(m, units.Archer, Player, 100)
	target := place(m, units.Knight, Enemy, 300)
	m.launchProjectile(archer, target)

	target.X = 250
	m.updateProjectiles()
	target.HP = 0
	m.sweepDead()

	m.updateProjectiles()
	if p := m.projectiles[0]; p.AimX != 250 {
		t.Errorf("Expected last known aim 250, got %v", p.AimX)
	}

	for i := 0; i < 100 && len(m.projectiles) > 0; i++ {
		m.updateProjectiles()
	}
	if len(m.projectiles) != 0 {
		t.Error("Expected orphaned projectile to be consumed at its aim point")
	}
	if m.player.Kills != 0 || m.player.Gold != StartingGold {
		t.Error("orphaned projectile must not credit a kill")
	}
}

func TestProjectileNeverHitsDeadTarget(t *testing.T) {
	m, _ := newTestMatch(t)
	archer := place(m, units.Archer, Player, 300)
	target := place(m, units.Clubman, Enemy, 302)
	target.HP = 15

	m.launchProjectile(archer, target)
	m.launchProjectile(archer, target)
	m.updateProjectiles()

	if len(m.projectiles) != 0 {
		t.Fatalf("Expected both projectiles consumed, got %d", len(m.projectiles))
	}
	if target.HP != 0 {
		t.Errorf("Expected hp clamped at 0, got %v", target.HP)
	}
	if want := StartingGold + 25; m.player.Gold != want {
		t.Errorf("Expected one kill reward (gold %v), got %v", want, m.player.Gold)
	}
	if m.player.XP != 10 || m.player.Kills != 1 {
		t.Errorf("Expected one kill credited, xp=%d kills=%d", m.player.XP, m.player.Kills)
	}
	if m.UnitCount() != 1 {
		t.Errorf("Expected dead target swept, units=%d", m.UnitCount())
	}
}

func TestUnitKilledHook(t *testing.T) {
	m, _ := newTestMatch(t)
	var kills []UnitView
	m.OnUnitKilled = func(killer Side, victim UnitView) {
		if killer != Player {
			t.Errorf("Expected player killer, got %s", killer)
		}
		kills = append(kills, victim)
	}
	archer := place(m, units.Archer, Player, 300)
	target := place(m, units.Clubman, Enemy, 302)
	target.HP = 1
	m.launchProjectile(archer, target)
	m.updateProjectiles()

	if len(kills) != 1 || kills[0].ID != target.ID || kills[0].HP != 0 {
		t.Errorf("unexpected kill notifications: %+v", kills)
	}
}
