package config

import (
	_ "embed"
)

//go:embed defaults/brawler.yaml
var defaultBrawlerYAML []byte

// DefaultConfig returns the hardcoded default configuration.
// It mirrors defaults/brawler.yaml and is used when the embedded file cannot
// be parsed.
func DefaultConfig() GameConfig {
	return GameConfig{
		Physics: PhysicsConfig{
			Gravity:          0.5,
			TerminalVelocity: 12,
			JumpForce:        -12,
			JumpCutVelocity:  -6,
			CoyoteFrames:     6,
			JumpBufferFrames: 8,
			TileSize:         32,
		},
		Player: PlayerConfig{
			Width:               32,
			Height:              48,
			Acceleration:        0.6,
			MaxSpeed:            5,
			AttackSpeedFactor:   0.6,
			RunThreshold:        0.5,
			MaxHealth:           100,
			Lives:               3,
			AttackDuration:      10,
			AttackCooldown:      20,
			InvincibilityFrames: 90,
			HurtFrames:          8,
			KnockbackX:          3,
			KnockbackY:          -4,
			Attacks: map[string]AttackConfig{
				"punch":    {Damage: 25, Width: 24, Height: 32, OffsetX: 0, OffsetY: 8},
				"kick":     {Damage: 30, Width: 28, Height: 24, OffsetX: 0, OffsetY: 24},
				"jumpkick": {Damage: 35, Width: 30, Height: 28, OffsetX: -4, OffsetY: 12},
			},
		},
		Camera: CameraConfig{
			Smoothing:        0.1,
			VisibleMargin:    64,
			ActivationMargin: 100,
			ViewportW:        800,
			ViewportH:        576,
		},
		Loop: LoopConfig{
			TickRate: 60,
			MaxFrame: 0.1,
		},
		Rules: RulesConfig{
			CheckpointOffsetX:    16,
			ProximityX:           24,
			ProximityY:           48,
			PitMargin:            64,
			GraveFrames:          90,
			RespawnInvincibility: 90,
			IntroConfirmDelay:    30,
			OverlayConfirmDelay:  60,
			BossIntroDistance:    300,
			CollectRemovalMS:     100,
			FloatingTextFrames:   60,
			PickupPadding:        6,
			ShockwaveSpacing:     20,
		},
		Enemies: map[string]EnemyConfig{
			"candy": {
				Width: 28, Height: 28, HP: 25, Speed: 1.5, Damage: 10, Score: 100,
				Color: "#ff69b4", Label: "C", Behavior: "patrol",
				HopInterval: 60, HopVelocity: -3,
			},
			"chips": {
				Width: 28, Height: 32, HP: 40, Speed: 2, Damage: 15, Score: 200,
				Color: "#ffa500", Label: "H", Behavior: "ranged",
				ProjectileSpeed: 3, ProjectileDamage: 10, FireRate: 90, DetectionRange: 200,
			},
			"soda": {
				Width: 24, Height: 36, HP: 30, Speed: 2.5, Damage: 20, Score: 250,
				Color: "#dc143c", Label: "S", Behavior: "charge",
				ChargeSpeed: 5, DetectionRange: 150, WindupFrames: 30, ChargeFrames: 60,
			},
			"cake": {
				Width: 48, Height: 48, HP: 80, Speed: 1, Damage: 25, Score: 400,
				Color: "#deb887", Label: "K", Behavior: "tank",
				MinionThreshold: 0.5, MinionType: "candy",
			},
		},
		Items: map[string]ItemConfig{
			"coin":            {Type: "coin", Value: 10, Score: 10},
			"coinLarge":       {Type: "coin", Value: 50, Score: 50},
			"healthSmall":     {Type: "health", Value: 25},
			"healthLarge":     {Type: "health", Value: 50},
			"powerCreatine":   {Type: "powerup", PowerUp: "creatine", Duration: 12, Score: 25, DisplayName: "CREATINE"},
			"powerProtein":    {Type: "powerup", PowerUp: "protein_shake", Duration: 10, Score: 20, DisplayName: "PROTEIN SHAKE"},
			"powerPreWorkout": {Type: "powerup", PowerUp: "pre_workout", Duration: 8, Score: 30, DisplayName: "PRE-WORKOUT"},
		},
		PowerUps: map[string]PowerUpConfig{
			"creatine":      {DisplayName: "CREATINE", Color: "#FF4444", Icon: "CR", Damage: 2, Scale: 1.2},
			"protein_shake": {DisplayName: "PROTEIN SHAKE", Color: "#44FF44", Icon: "PR", Speed: 1.5, Jump: 1.3, Scale: 1.15},
			"pre_workout":   {DisplayName: "PRE-WORKOUT", Color: "#FFFF00", Icon: "PW", Speed: 1.5, Scale: 1.3, Invincible: true},
		},
		Boss: BossConfig{
			Width:              64,
			Height:             80,
			HP:                 500,
			Damage:             30,
			Score:              5000,
			ActionCooldown:     90,
			Phase2Threshold:    0.6,
			Phase3Threshold:    0.3,
			Phase2Cooldown:     60,
			Phase3Cooldown:     40,
			PhaseInvincibility: 60,
			HitInvincibility:   15,
			ShockwaveDamage:    20,
			Taunts: Taunts{
				Intro:   "You dare challenge ME?!",
				Phase2:  "Not bad... let me step it up!",
				Phase3:  "NOW I'M ANGRY!!! NO MORE GAMES!",
				Death:   "Impossible... you beat me... I need more protein...",
				Protein: "Have a protein shake!",
				Charge:  []string{"CHARGE!", "INCOMING!", "CAN'T DODGE THIS!", "OUT OF MY WAY!", "MOVE IT!", "FULL SPEED!"},
				Slam:    []string{"GROUND SLAM!", "FEEL THE EARTH SHAKE!", "DOWN YOU GO!", "EARTHQUAKE!", "SMASH!"},
				Throw:   []string{"Catch this!", "Heads up!", "Special delivery!", "Eat this dumbbell!", "Think fast!", "Gym equipment incoming!"},
				Jump:    []string{"CAN'T ESCAPE!", "NOWHERE TO HIDE!", "UP AND OVER!", "FLYING ELBOW!", "AIR TIME!"},
				Hurt:    []string{"Is that all?!", "Lucky shot!", "That tickled!", "You'll pay for that!", "Not bad, kid...", "OOF!", "Barely felt it!"},
				Oil:     []string{"Lavender Blast!", "Oil time!", "Relax... breathe it in!", "Aromatherapy attack!", "This will calm you down!", "Essential oils incoming!"},
			},
		},
		Leaderboard: LeaderboardConfig{
			TopN:       10,
			CachePath:  "~/.brawler/leaderboard.yaml",
			MaxNameLen: 12,
		},
		Difficulty: DifficultyConfig{
			Preset:           DifficultyNormal,
			EnemyDamageScale: 1.0,
			BossHPScale:      1.0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBrawlerYAML
}
