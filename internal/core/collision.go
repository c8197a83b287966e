package core

// BlockSeparation is the gap left between an actor and a block face after a
// head bump or a wall push.
const BlockSeparation = 1.0

// CircleRectIntersects reports whether a circle overlaps a rectangle.
// The circle center is clamped to the rectangle to find the nearest point,
// then squared distances are compared.
func CircleRectIntersects(center Vec2, radius float64, r Rect) bool {
	closestX := ClampF(center.X, r.Left(), r.Right())
	closestY := ClampF(center.Y, r.Top(), r.Bottom())

	dx := center.X - closestX
	dy := center.Y - closestY
	return dx*dx+dy*dy <= radius*radius
}

// PointCircleHit reports whether two circles (a small one around p and a
// larger one around c) are closer than the sum of their radii.
func PointCircleHit(p Vec2, pr float64, c Vec2, cr float64) bool {
	sum := pr + cr
	return p.Sub(c).LenSq() < sum*sum
}

// ResolveBlockCollision pushes an actor out of a fully solid block.
//
// Resolution order:
//  1. Falling onto the top: bottom crossed block top while the actor's
//     vertical center is still above it. Actor bottom snaps to block top.
//  2. Rising into the bottom: top crossed block bottom while the center is
//     still below it. Actor top snaps just under the block.
//  3. Otherwise horizontal: pushed out of whichever side the leading edge
//     entered from.
//
// Exactly one correction is applied. The returned position is the input
// position shifted by the same delta applied to the actor rectangle.
func ResolveBlockCollision(actor Rect, pos Vec2, velY float64, block Rect) (Vec2, float64) {
	newPos := pos
	newVelY := velY

	switch {
	case velY > 0 && actor.Bottom() > block.Top() && actor.CenterY() < block.Top():
		newPos.Y += block.Top() - actor.Bottom()
		newVelY = 0

	case velY < 0 && actor.Top() < block.Bottom() && actor.CenterY() > block.Bottom():
		newPos.Y += block.Bottom() + BlockSeparation - actor.Top()
		newVelY = 0

	default:
		if actor.Right() > block.Left() && actor.Left() < block.Left() {
			newPos.X += block.Left() - BlockSeparation - actor.Right()
		} else if actor.Left() < block.Right() && actor.Right() > block.Right() {
			newPos.X += block.Right() + BlockSeparation - actor.Left()
		}
	}

	return newPos, newVelY
}

// FirstOverlap returns the index of the first rectangle that overlaps actor.
func FirstOverlap(actor Rect, rects []Rect) (int, bool) {
	for i, r := range rects {
		if actor.Intersects(r) {
			return i, true
		}
	}
	return -1, false
}
