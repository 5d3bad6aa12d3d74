package system

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
)

const (
	collisionTypeDynamic cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeBounds
)

const (
	categorySolid uint = 1 << iota
	categoryBounds
	categoryDynamic
)

// PhysicsSystem steps a Chipmunk space. Dynamic bodies collide with
// platforms and, when CollideWorldBounds is set, with the screen edges; they
// never collide with each other.
type PhysicsSystem struct {
	space  *cp.Space
	bounds []*cp.Shape
	paused bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts map[ecs.Entity]*component.Touching

	log *log.Logger
}

type bodyInfo struct {
	body    *cp.Body
	shape   *cp.Shape
	static  bool
	inSpace bool
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	ps := &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		contacts: make(map[ecs.Entity]*component.Touching),
		log:      common.Log("physics"),
	}
	ps.addWorldBounds(common.ScreenWidth, common.ScreenHeight)
	ps.ensureHandlers()
	return ps
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Pause freezes every body until Resume.
func (ps *PhysicsSystem) Pause() {
	if ps != nil {
		ps.paused = true
	}
}

func (ps *PhysicsSystem) Resume() {
	if ps != nil {
		ps.paused = false
	}
}

func (ps *PhysicsSystem) Paused() bool {
	return ps != nil && ps.paused
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.paused {
		return
	}

	ps.syncEntities(w)
	ps.resetContacts()

	ps.space.Step(common.TickSeconds)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	handler := ps.space.NewCollisionHandler(collisionTypeDynamic, collisionTypeSolid)
	handler.UserData = ps
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		e, isA := sys.shapes[shapeA]
		if !isA {
			var okB bool
			e, okB = sys.shapes[shapeB]
			if !okB {
				return true
			}
		}
		st := sys.contacts[e]
		if st == nil {
			return true
		}

		// normal points from the dynamic body toward the platform
		n := arb.Normal()
		if !isA {
			n = n.Neg()
		}
		switch {
		case n.Y > 0.5:
			st.Down = true
		case n.Y < -0.5:
			st.Up = true
		case n.X > 0.5:
			st.Right = true
		case n.X < -0.5:
			st.Left = true
		}
		return true
	}
}

func (ps *PhysicsSystem) addWorldBounds(width, height float64) {
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: width, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: height}, b: cp.Vector{X: width, Y: height}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},          // left
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},  // right
	}

	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 0)
		shape.SetElasticity(1)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeBounds)
		shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryBounds, Mask: categoryDynamic})
		ps.space.AddShape(shape)
		ps.bounds = append(ps.bounds, shape)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range ecs.Query(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(transform, bodyComp)
			ps.entities[e] = info
			ps.shapes[info.shape] = e
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
		}

		switch {
		case bodyComp.Disabled && info.inSpace:
			ps.detach(info)
		case !bodyComp.Disabled && !info.inSpace:
			ps.attach(info)
		}

		if info.static || !info.inSpace {
			continue
		}
		// Components are the source of truth between steps so handlers can
		// teleport bodies or set velocities directly.
		vx, vy := bodyComp.VelX, bodyComp.VelY
		if touching, ok := ecs.Get(w, e, component.TouchingComponent.Kind()); ok {
			// cp integrates position before solving, so pushing into a side
			// contact every tick would sink the body into the platform.
			if (touching.Right && vx > 0) || (touching.Left && vx < 0) {
				vx = 0
			}
			ps.contacts[e] = &component.Touching{}
		}
		info.body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		info.body.SetVelocity(vx, vy)
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	scaleX, scaleY := scaleOf(transform)
	width := bodyComp.Width * scaleX
	height := bodyComp.Height * scaleY
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(0)
		shape.SetElasticity(1)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categorySolid, Mask: categoryDynamic})

		info.body = ps.space.StaticBody
		info.shape = shape
		return info
	}

	// infinite moment keeps boxes upright
	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	if bodyComp.IgnoreGravity {
		body.SetVelocityUpdateFunc(func(b *cp.Body, _ cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(b, cp.Vector{}, damping, dt)
		})
	}

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(bodyComp.Restitution())
	shape.SetCollisionType(collisionTypeDynamic)
	mask := categorySolid
	if bodyComp.CollideWorldBounds {
		mask |= categoryBounds
	}
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryDynamic, Mask: mask})

	info.body = body
	info.shape = shape
	return info
}

func (ps *PhysicsSystem) attach(info *bodyInfo) {
	if !info.static {
		ps.space.AddBody(info.body)
	}
	ps.space.AddShape(info.shape)
	info.inSpace = true
}

func (ps *PhysicsSystem) detach(info *bodyInfo) {
	ps.space.RemoveShape(info.shape)
	if !info.static {
		ps.space.RemoveBody(info.body)
	}
	info.inSpace = false
}

func (ps *PhysicsSystem) resetContacts() {
	for _, st := range ps.contacts {
		*st = component.Touching{}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || !info.inSpace {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		vel := info.body.Velocity()
		transform.X = pos.X
		transform.Y = pos.Y
		bodyComp.VelX = vel.X
		bodyComp.VelY = vel.Y
	}
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for e, st := range ps.contacts {
		touching, ok := ecs.Get(w, e, component.TouchingComponent.Kind())
		if !ok {
			delete(ps.contacts, e)
			continue
		}
		*touching = *st
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.inSpace {
			ps.detach(info)
		}
		delete(ps.shapes, info.shape)
		delete(ps.entities, e)
		delete(ps.contacts, e)
		ps.log.Debug("released body", "entity", e)
	}
}

func scaleOf(t *component.Transform) (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}
