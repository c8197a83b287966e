package platformer

import "github.com/vovakirdan/tui-platformer/internal/core"

// EventKind identifies something that happened during a step.
type EventKind int

const (
	EventShot        EventKind = iota // Player fired a projectile
	EventEnemyHit                     // Projectile hit an enemy that survived
	EventEnemyKilled                  // Enemy destroyed; Value is the points awarded
	EventPlayerHit                    // Enemy touched the player
	EventPlayerDied                   // Player fell below the death line
	EventLanded                       // Player touched down after being airborne
	EventGoalReached                  // Player entered the goal door
	EventLevelLoaded                  // A level was (re)loaded; Value is its index
	EventGameOver                     // Last life lost
)

// String returns a snake_case name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventEnemyHit:
		return "enemy_hit"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventPlayerHit:
		return "player_hit"
	case EventPlayerDied:
		return "player_died"
	case EventLanded:
		return "landed"
	case EventGoalReached:
		return "goal_reached"
	case EventLevelLoaded:
		return "level_loaded"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a notable moment of a step, for sound and HUD collaborators.
type Event struct {
	Kind  EventKind
	Pos   core.Vec2
	Value int
}
