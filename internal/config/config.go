// Package config provides YAML-based tuning for the platformer simulation:
// physics constants, stamina economy, enemy stats and difficulty presets.
package config

// Tuning contains every constant the simulation depends on.
type Tuning struct {
	Physics    PhysicsTuning    `yaml:"physics"`
	Stamina    StaminaTuning    `yaml:"stamina"`
	Dash       DashTuning       `yaml:"dash"`
	Game       GameTuning       `yaml:"game"`
	Camera     CameraTuning     `yaml:"camera"`
	Transition TransitionTuning `yaml:"transition"`
	Player     PlayerTuning     `yaml:"player"`
	Projectile ProjectileTuning `yaml:"projectile"`
	Enemies    EnemyTuning      `yaml:"enemies"`
}

// PhysicsTuning defines world physics. Units are pixels and seconds;
// positive Y points down.
type PhysicsTuning struct {
	Gravity         float64 `yaml:"gravity"`
	JumpForce       float64 `yaml:"jump_force"` // Negative: upward
	MoveSpeed       float64 `yaml:"move_speed"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
}

// StaminaTuning defines the stamina economy gating jumps and dashes.
type StaminaTuning struct {
	Max            float64 `yaml:"max"`
	JumpCost       float64 `yaml:"jump_cost"`
	DoubleJumpCost float64 `yaml:"double_jump_cost"`
	RegenDelay     float64 `yaml:"regen_delay"`    // Idle seconds before regen starts
	RegenInterval  float64 `yaml:"regen_interval"` // Seconds between increments
	RegenAmount    float64 `yaml:"regen_amount"`
}

// DashTuning defines the dash move.
type DashTuning struct {
	Cost     float64 `yaml:"cost"`
	Speed    float64 `yaml:"speed"`
	Duration float64 `yaml:"duration"`
}

// GameTuning defines session-wide rules.
type GameTuning struct {
	FPS           int     `yaml:"fps"`
	Lives         int     `yaml:"lives"`
	MaxEnemies    int     `yaml:"max_enemies"` // Cap for procedural spawns
	SpawnCooldown float64 `yaml:"spawn_cooldown"`
	DeathBelowY   float64 `yaml:"death_below_y"`
	InvulnTime    float64 `yaml:"invuln_time"`
	GroundY       float64 `yaml:"ground_y"`
	GroundStartX  float64 `yaml:"ground_start_x"`
	GroundEndX    float64 `yaml:"ground_end_x"`
}

// CameraTuning defines the smoothed follow camera and the logical viewport.
type CameraTuning struct {
	Lag       float64 `yaml:"lag"`
	ViewportW float64 `yaml:"viewport_w"`
	ViewportH float64 `yaml:"viewport_h"`
}

// TransitionTuning defines level transition fades in seconds.
type TransitionTuning struct {
	FadeOut float64 `yaml:"fade_out"`
	FadeIn  float64 `yaml:"fade_in"`
}

// PlayerTuning defines the stick figure body and its cosmetic timers.
type PlayerTuning struct {
	HeadRadius float64 `yaml:"head_radius"`
	BodyHeight float64 `yaml:"body_height"`
	LegHeight  float64 `yaml:"leg_height"`
	ArmLength  float64 `yaml:"arm_length"`
	WalkRate   float64 `yaml:"walk_rate"`
	BlinkClose float64 `yaml:"blink_close"`
	BlinkMin   float64 `yaml:"blink_min"`
	BlinkMax   float64 `yaml:"blink_max"`
}

// ProjectileTuning defines player shots.
type ProjectileTuning struct {
	Radius        float64 `yaml:"radius"`
	DespawnMargin float64 `yaml:"despawn_margin"`
	Recoil        float64 `yaml:"recoil"`
	MuzzleOffset  float64 `yaml:"muzzle_offset"` // Added to head radius
}

// EnemyTuning defines enemy movement rules and per-kind stats.
type EnemyTuning struct {
	PatrolMinX   float64    `yaml:"patrol_min_x"`
	PatrolMaxX   float64    `yaml:"patrol_max_x"`
	HitFlash     float64    `yaml:"hit_flash"`
	FlyAmplitude float64    `yaml:"fly_amplitude"`
	FlyRate      float64    `yaml:"fly_rate"`
	Basic        EnemyStats `yaml:"basic"`
	Tank         EnemyStats `yaml:"tank"`
	Fast         EnemyStats `yaml:"fast"`
	Flyer        EnemyStats `yaml:"flyer"`
}

// EnemyStats are the defaults for one enemy kind.
type EnemyStats struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
	HP     int     `yaml:"hp"`
	Score  int     `yaml:"score"`
}

// FeetOffset returns the distance from the head center to the feet.
func (p PlayerTuning) FeetOffset() float64 {
	return p.HeadRadius + p.BodyHeight + p.LegHeight
}

// Height returns the full height of the player body.
func (p PlayerTuning) Height() float64 {
	return 2*p.HeadRadius + p.BodyHeight + p.LegHeight
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
