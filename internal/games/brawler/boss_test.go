package brawler

import (
	"testing"

	"github.com/vovakirdan/tui-brawler/internal/config"
)

func newTestBoss() *Boss {
	cfg := config.DefaultConfig()
	return NewBoss(1, 1000, 176, cfg.Boss, PhysicsFromConfig(cfg.Physics), nil)
}

func TestBossActivateOnce(t *testing.T) {
	b := newTestBoss()
	tm := NewTileMap(groundGrid(10, 60))

	x := b.X
	b.Update(farTarget(), tm)
	if b.X != x || b.Y != 176 {
		t.Fatal("dormant boss must not move")
	}

	b.Activate()
	if b.Dialogue != "You dare challenge ME?!" || b.DialogueTimer != 120 {
		t.Errorf("intro dialogue = %q (%d)", b.Dialogue, b.DialogueTimer)
	}
	b.DialogueTimer = 5
	b.Activate()
	if b.DialogueTimer != 5 {
		t.Error("second Activate must not replay the intro")
	}
}

func TestBossPhaseTransitionOnce(t *testing.T) {
	b := newTestBoss()
	b.HP = 300

	if !b.TakeDamage(10, 0) {
		t.Fatal("expected the hit to land")
	}
	if b.HP != 290 || b.Phase != 2 {
		t.Fatalf("hp=%v phase=%d, want 290 and 2", b.HP, b.Phase)
	}
	if b.InvincibleTimer != 60 || b.ActionCooldown != 60 {
		t.Errorf("phase entry: invincible=%d cooldown=%d, want 60/60", b.InvincibleTimer, b.ActionCooldown)
	}
	if b.Dialogue != "Not bad... let me step it up!" {
		t.Errorf("phase 2 dialogue = %q", b.Dialogue)
	}

	b.ActionCooldown = 99
	b.InvincibleTimer = 0
	b.TakeDamage(10, 0)
	if b.HP != 280 || b.Phase != 2 {
		t.Errorf("hp=%v phase=%d, want 280 and 2", b.HP, b.Phase)
	}
	if b.ActionCooldown != 99 || b.InvincibleTimer != 15 {
		t.Errorf("phase 2 entered twice: cooldown=%d invincible=%d", b.ActionCooldown, b.InvincibleTimer)
	}
}

func TestBossCanSkipToPhaseThree(t *testing.T) {
	b := newTestBoss()
	b.HP = 200
	b.TakeDamage(60, 0)
	if b.Phase != 3 || b.ActionCooldown != 40 {
		t.Errorf("phase=%d cooldown=%d, want 3 and 40", b.Phase, b.ActionCooldown)
	}

	b.InvincibleTimer = 0
	b.HP = 400
	b.TakeDamage(1, 0)
	if b.Phase != 3 {
		t.Errorf("phase must never decrease, got %d", b.Phase)
	}
}

func TestBossHitInvincibility(t *testing.T) {
	b := newTestBoss()
	b.TakeDamage(10, 0)
	if b.TakeDamage(10, 0) {
		t.Error("hit inside the invincibility window should be ignored")
	}
	if b.HP != 490 {
		t.Errorf("hp = %v, want 490", b.HP)
	}
}

func TestBossDeath(t *testing.T) {
	b := newTestBoss()
	b.HP = 5
	b.TakeDamage(10, 0)
	if b.HP != 0 || !b.Dead || b.Action != BossDead {
		t.Errorf("hp=%v dead=%v action=%v", b.HP, b.Dead, b.Action)
	}
	if b.TakeDamage(10, 0) {
		t.Error("dead boss ignores damage")
	}
}

func TestBossChooseAction(t *testing.T) {
	target := &Body{X: 800, Y: 176, W: 32, H: 48}

	tests := []struct {
		phase      int
		roll       float64
		wantAction BossAction
		wantShot   string
	}{
		{1, 0.1, BossCharging, ""},
		{1, 0.5, BossIdle, ProjectileDumbbell},
		{1, 0.9, BossIdle, ProjectileOil},
		{2, 0.1, BossCharging, ""},
		{2, 0.3, BossSlamming, ""},
		{2, 0.5, BossIdle, ProjectileProtein},
		{2, 0.7, BossIdle, ProjectileOil},
		{2, 0.9, BossIdle, ProjectileDumbbell},
		{3, 0.1, BossCharging, ""},
		{3, 0.3, BossSlamming, ""},
		{3, 0.45, BossJumping, ""},
		{3, 0.6, BossIdle, ProjectileOil},
		{3, 0.8, BossIdle, ProjectileDumbbell},
	}
	for _, tt := range tests {
		b := newTestBoss()
		b.Phase = tt.phase
		b.chooseAction(tt.roll, target)

		if b.Action != tt.wantAction {
			t.Errorf("phase %d roll %v: action = %v, want %v", tt.phase, tt.roll, b.Action, tt.wantAction)
		}
		events := b.DrainEvents()
		if tt.wantShot == "" {
			if len(events) != 0 {
				t.Errorf("phase %d roll %v: unexpected events %v", tt.phase, tt.roll, events)
			}
			continue
		}
		if len(events) != 1 {
			t.Errorf("phase %d roll %v: got %d events, want 1", tt.phase, tt.roll, len(events))
			continue
		}
		pr := events[0].(SpawnProjectile).Projectile
		if pr.Kind != tt.wantShot {
			t.Errorf("phase %d roll %v: projectile %q, want %q", tt.phase, tt.roll, pr.Kind, tt.wantShot)
		}
		if pr.VX >= 0 {
			t.Errorf("phase %d roll %v: projectile should fly left, VX=%v", tt.phase, tt.roll, pr.VX)
		}
	}
}

func TestBossProjectiles(t *testing.T) {
	target := &Body{X: 800, Y: 176, W: 32, H: 48}

	b := newTestBoss()
	b.Phase = 2
	b.throwDumbbell(target)
	pr := b.DrainEvents()[0].(SpawnProjectile).Projectile
	if pr.VX != -6 || pr.VY != -3 || pr.Damage != 20 || pr.Gravity != 0.15 {
		t.Errorf("dumbbell = %+v", pr)
	}

	b.throwOil(target)
	pr = b.DrainEvents()[0].(SpawnProjectile).Projectile
	if pr.Stun != 12 || pr.Damage != 10 {
		t.Errorf("oil = %+v", pr)
	}

	b.throwProtein(target)
	pr = b.DrainEvents()[0].(SpawnProjectile).Projectile
	if pr.Damage != 15 || b.Dialogue != "Have a protein shake!" {
		t.Errorf("protein = %+v dialogue=%q", pr, b.Dialogue)
	}
}

func TestBossJumpSteerIsCapped(t *testing.T) {
	b := newTestBoss()
	b.startJump(&Body{X: 0, Y: 176, W: 32, H: 48})
	if b.VY != -16 || b.VX != -6 {
		t.Errorf("jump velocity = (%v,%v), want (-6,-16)", b.VX, b.VY)
	}
}

func TestBossSlamShockwave(t *testing.T) {
	b := newTestBoss()
	b.startSlam()

	b.doSlam()
	if b.VY != -14 {
		t.Fatalf("slam should launch the boss, VY=%v", b.VY)
	}
	if len(b.Events()) != 0 {
		t.Fatal("no shockwave before landing")
	}

	b.Grounded = true
	b.doSlam()
	events := b.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected one shockwave, got %d events", len(events))
	}
	sw := events[0].(Shockwave)
	if sw.Radius != 120 || sw.Damage != 20 {
		t.Errorf("shockwave = %+v, want radius 120 damage 20", sw)
	}
	if sw.Y != b.Y+b.H || sw.X != b.CenterX() {
		t.Errorf("shockwave origin = (%v,%v)", sw.X, sw.Y)
	}
	if b.Action != BossIdle {
		t.Errorf("action after slam = %v, want idle", b.Action)
	}
}

func TestBossSlamRadiusGrowsWithPhase(t *testing.T) {
	b := newTestBoss()
	b.Phase = 3
	b.startSlam()
	b.doSlam()
	b.Grounded = true
	b.doSlam()
	sw := b.DrainEvents()[0].(Shockwave)
	if sw.Radius != 200 {
		t.Errorf("phase 3 radius = %v, want 200", sw.Radius)
	}
}

func TestBossApproachesBetweenActions(t *testing.T) {
	b := newTestBoss()
	b.Activate()
	tm := NewTileMap(groundGrid(10, 60))

	b.Update(&Body{X: 100, Y: 176, W: 32, H: 48}, tm)
	if b.Facing != -1 || b.VX != -1.5 {
		t.Errorf("facing=%v VX=%v, want -1 and -1.5", b.Facing, b.VX)
	}
}
