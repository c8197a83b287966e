package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the built-in tuning values.
func DefaultTuning() Tuning {
	return Tuning{
		Physics: PhysicsTuning{
			Gravity:         800,
			JumpForce:       -600,
			MoveSpeed:       300,
			ProjectileSpeed: 800,
		},
		Stamina: StaminaTuning{
			Max:            100,
			JumpCost:       10,
			DoubleJumpCost: 15,
			RegenDelay:     4.0,
			RegenInterval:  0.5,
			RegenAmount:    5,
		},
		Dash: DashTuning{
			Cost:     10,
			Speed:    900,
			Duration: 0.2,
		},
		Game: GameTuning{
			FPS:           60,
			Lives:         3,
			MaxEnemies:    3,
			SpawnCooldown: 2.0,
			DeathBelowY:   680 + 1500,
			InvulnTime:    1.5,
			GroundY:       680,
			GroundStartX:  0,
			GroundEndX:    3000,
		},
		Camera: CameraTuning{
			Lag:       0.05,
			ViewportW: 1366,
			ViewportH: 769,
		},
		Transition: TransitionTuning{
			FadeOut: 0.6,
			FadeIn:  0.6,
		},
		Player: PlayerTuning{
			HeadRadius: 20,
			BodyHeight: 40,
			LegHeight:  30,
			ArmLength:  25,
			WalkRate:   10,
			BlinkClose: 0.12,
			BlinkMin:   2.0,
			BlinkMax:   5.0,
		},
		Projectile: ProjectileTuning{
			Radius:        6,
			DespawnMargin: 200,
			Recoil:        0.12,
			MuzzleOffset:  10,
		},
		Enemies: EnemyTuning{
			PatrolMinX:   50,
			PatrolMaxX:   2500,
			HitFlash:     0.2,
			FlyAmplitude: 25,
			FlyRate:      2.0,
			Basic:        EnemyStats{Radius: 20, Speed: 100, HP: 1, Score: 1},
			Tank:         EnemyStats{Radius: 32, Speed: 60, HP: 3, Score: 2},
			Fast:         EnemyStats{Radius: 18, Speed: 140, HP: 1, Score: 1},
			Flyer:        EnemyStats{Radius: 22, Speed: 110, HP: 1, Score: 1},
		},
	}
}
