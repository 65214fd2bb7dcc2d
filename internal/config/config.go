// Package config provides YAML-based configuration for the brawler: physics
// tuning, player and enemy stat tables, item and power-up tables, boss
// tunables, orchestration thresholds and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// GameConfig contains all configuration for the game.
type GameConfig struct {
	Physics     PhysicsConfig            `yaml:"physics"`
	Player      PlayerConfig             `yaml:"player"`
	Camera      CameraConfig             `yaml:"camera"`
	Loop        LoopConfig               `yaml:"loop"`
	Rules       RulesConfig              `yaml:"rules"`
	Enemies     map[string]EnemyConfig   `yaml:"enemies"`
	Items       map[string]ItemConfig    `yaml:"items"`
	PowerUps    map[string]PowerUpConfig `yaml:"powerups"`
	Boss        BossConfig               `yaml:"boss"`
	Leaderboard LeaderboardConfig        `yaml:"leaderboard"`
	Difficulty  DifficultyConfig         `yaml:"difficulty"`
}

// PhysicsConfig holds the shared movement constants. Velocities are in
// pixels per tick, accelerations in pixels per tick squared.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	JumpForce        float64 `yaml:"jump_force"`
	JumpCutVelocity  float64 `yaml:"jump_cut_velocity"`
	CoyoteFrames     int     `yaml:"coyote_frames"`
	JumpBufferFrames int     `yaml:"jump_buffer_frames"`
	TileSize         int     `yaml:"tile_size"`
}

// PlayerConfig defines the player's body, stats and combat timings.
type PlayerConfig struct {
	Width               float64                 `yaml:"width"`
	Height              float64                 `yaml:"height"`
	Acceleration        float64                 `yaml:"acceleration"`
	MaxSpeed            float64                 `yaml:"max_speed"`
	AttackSpeedFactor   float64                 `yaml:"attack_speed_factor"`
	RunThreshold        float64                 `yaml:"run_threshold"`
	MaxHealth           int                     `yaml:"max_health"`
	Lives               int                     `yaml:"lives"`
	AttackDuration      int                     `yaml:"attack_duration"`
	AttackCooldown      int                     `yaml:"attack_cooldown"`
	InvincibilityFrames int                     `yaml:"invincibility_frames"`
	HurtFrames          int                     `yaml:"hurt_frames"`
	KnockbackX          float64                 `yaml:"knockback_x"`
	KnockbackY          float64                 `yaml:"knockback_y"`
	Attacks             map[string]AttackConfig `yaml:"attacks"`
}

// AttackConfig describes one attack: its damage and hitbox geometry.
// OffsetX shifts the box toward the body when facing right and is mirrored
// when facing left.
type AttackConfig struct {
	Damage  int     `yaml:"damage"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// CameraConfig defines camera follow and culling parameters.
type CameraConfig struct {
	Smoothing        float64 `yaml:"smoothing"`
	VisibleMargin    float64 `yaml:"visible_margin"`
	ActivationMargin float64 `yaml:"activation_margin"`
	ViewportW        float64 `yaml:"viewport_w"`
	ViewportH        float64 `yaml:"viewport_h"`
}

// LoopConfig defines the fixed-timestep loop.
type LoopConfig struct {
	TickRate int     `yaml:"tick_rate"`
	MaxFrame float64 `yaml:"max_frame"` // seconds
}

// RulesConfig holds orchestration thresholds.
type RulesConfig struct {
	CheckpointOffsetX    float64 `yaml:"checkpoint_offset_x"`
	ProximityX           float64 `yaml:"proximity_x"`
	ProximityY           float64 `yaml:"proximity_y"`
	PitMargin            float64 `yaml:"pit_margin"`
	GraveFrames          int     `yaml:"grave_frames"`
	RespawnInvincibility int     `yaml:"respawn_invincibility"`
	IntroConfirmDelay    int     `yaml:"intro_confirm_delay"`
	OverlayConfirmDelay  int     `yaml:"overlay_confirm_delay"`
	BossIntroDistance    float64 `yaml:"boss_intro_distance"`
	CollectRemovalMS     int     `yaml:"collect_removal_ms"`
	FloatingTextFrames   int     `yaml:"floating_text_frames"`
	PickupPadding        float64 `yaml:"pickup_padding"`
	ShockwaveSpacing     float64 `yaml:"shockwave_spacing"`
}

// EnemyConfig is one row of the enemy table.
type EnemyConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	HP       int     `yaml:"hp"`
	Speed    float64 `yaml:"speed"`
	Damage   int     `yaml:"damage"`
	Score    int     `yaml:"score"`
	Color    string  `yaml:"color"`
	Label    string  `yaml:"label"`
	Behavior string  `yaml:"behavior"` // patrol, ranged, charge, tank

	HopInterval      int     `yaml:"hop_interval,omitempty"`
	HopVelocity      float64 `yaml:"hop_velocity,omitempty"`
	ProjectileSpeed  float64 `yaml:"projectile_speed,omitempty"`
	ProjectileDamage int     `yaml:"projectile_damage,omitempty"`
	FireRate         int     `yaml:"fire_rate,omitempty"`
	DetectionRange   float64 `yaml:"detection_range,omitempty"`
	ChargeSpeed      float64 `yaml:"charge_speed,omitempty"`
	WindupFrames     int     `yaml:"windup_frames,omitempty"`
	ChargeFrames     int     `yaml:"charge_frames,omitempty"`
	MinionThreshold  float64 `yaml:"minion_threshold,omitempty"`
	MinionType       string  `yaml:"minion_type,omitempty"`
}

// ItemConfig is one row of the collectible table.
type ItemConfig struct {
	Type        string  `yaml:"type"` // coin, health, powerup
	Value       int     `yaml:"value,omitempty"`
	PowerUp     string  `yaml:"powerup,omitempty"`
	Duration    float64 `yaml:"duration,omitempty"` // seconds
	Score       int     `yaml:"score"`
	DisplayName string  `yaml:"display_name,omitempty"`
}

// PowerUpConfig describes one power-up type's modifiers.
// Zero multipliers are treated as 1.
type PowerUpConfig struct {
	DisplayName string  `yaml:"display_name"`
	Color       string  `yaml:"color"`
	Icon        string  `yaml:"icon"`
	Damage      float64 `yaml:"damage,omitempty"`
	Speed       float64 `yaml:"speed,omitempty"`
	Jump        float64 `yaml:"jump,omitempty"`
	Scale       float64 `yaml:"scale,omitempty"`
	Invincible  bool    `yaml:"invincible,omitempty"`
}

// BossConfig holds the boss stats, phase rules and dialogue.
type BossConfig struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	HP                 int     `yaml:"hp"`
	Damage             int     `yaml:"damage"`
	Score              int     `yaml:"score"`
	ActionCooldown     int     `yaml:"action_cooldown"`
	Phase2Threshold    float64 `yaml:"phase2_threshold"`
	Phase3Threshold    float64 `yaml:"phase3_threshold"`
	Phase2Cooldown     int     `yaml:"phase2_cooldown"`
	Phase3Cooldown     int     `yaml:"phase3_cooldown"`
	PhaseInvincibility int     `yaml:"phase_invincibility"`
	HitInvincibility   int     `yaml:"hit_invincibility"`
	ShockwaveDamage    int     `yaml:"shockwave_damage"`
	Taunts             Taunts  `yaml:"taunts"`
}

// Taunts holds the boss dialogue pools.
type Taunts struct {
	Intro   string   `yaml:"intro"`
	Phase2  string   `yaml:"phase2"`
	Phase3  string   `yaml:"phase3"`
	Death   string   `yaml:"death"`
	Protein string   `yaml:"protein"`
	Charge  []string `yaml:"charge"`
	Slam    []string `yaml:"slam"`
	Throw   []string `yaml:"throw"`
	Jump    []string `yaml:"jump"`
	Hurt    []string `yaml:"hurt"`
	Oil     []string `yaml:"oil"`
}

// LeaderboardConfig configures high score handling.
type LeaderboardConfig struct {
	TopN       int    `yaml:"top_n"`
	CachePath  string `yaml:"cache_path"`
	MaxNameLen int    `yaml:"max_name_len"`
}

// DifficultyConfig scales the run. Normal leaves every table untouched.
type DifficultyConfig struct {
	Preset           DifficultyPreset `yaml:"preset"`
	EnemyDamageScale float64          `yaml:"enemy_damage_scale"`
	BossHPScale      float64          `yaml:"boss_hp_scale"`
}

// Validation errors.
var (
	ErrInvalidTileSize = errors.New("config: tile_size must be positive")
	ErrInvalidTickRate = errors.New("config: tick_rate must be positive")
)

// Validate checks values the simulation cannot run without.
func (c GameConfig) Validate() error {
	if c.Physics.TileSize <= 0 {
		return ErrInvalidTileSize
	}
	if c.Loop.TickRate <= 0 {
		return ErrInvalidTickRate
	}
	for name, e := range c.Enemies {
		if e.Width <= 0 || e.Height <= 0 {
			return fmt.Errorf("config: enemy %q has no size", name)
		}
	}
	for name, it := range c.Items {
		if it.Type == "powerup" {
			if _, ok := c.PowerUps[it.PowerUp]; !ok {
				return fmt.Errorf("config: item %q references unknown power-up %q", name, it.PowerUp)
			}
		}
	}
	return nil
}

// DT returns the fixed simulation step in seconds.
func (c GameConfig) DT() float64 {
	if c.Loop.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.Loop.TickRate)
}
