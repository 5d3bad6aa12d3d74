package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"

	"github.com/milk9111/flagrun/ecs/component"
)

type patrolScript struct {
	name     string
	compiled *tengo.Compiled
}

const patrolDispatchScript = `
update(__enemy)
`

func compilePatrolScript(name string, src []byte) (*patrolScript, error) {
	full := string(src) + "\n" + patrolDispatchScript
	script := tengo.NewScript([]byte(full))
	if err := script.Add("__enemy", map[string]any{}); err != nil {
		return nil, err
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("patrol script %s: %w", name, err)
	}
	return &patrolScript{name: name, compiled: compiled}, nil
}

func (ps *patrolScript) run(enemy *component.Enemy, body *component.PhysicsBody, x float64, touching component.Touching) error {
	if ps == nil || ps.compiled == nil {
		return fmt.Errorf("nil patrol script")
	}

	values := map[string]tengo.Object{
		"landed":         boolObject(enemy.HasLanded),
		"direction":      &tengo.String{Value: string(enemy.Direction)},
		"touching_down":  boolObject(touching.Down),
		"touching_left":  boolObject(touching.Left),
		"touching_right": boolObject(touching.Right),
		"x":              &tengo.Float{Value: x},
		"min_x":          &tengo.Float{Value: enemy.MinX},
		"max_x":          &tengo.Float{Value: enemy.MaxX},
		"speed":          &tengo.Float{Value: enemy.PatrolSpeed},
	}

	values["land"] = &tengo.UserFunction{Name: "land", Value: func(args ...tengo.Object) (tengo.Object, error) {
		land(enemy, body)
		return tengo.TrueValue, nil
	}}

	values["turn"] = &tengo.UserFunction{Name: "turn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		switch dir := component.Direction(strings.TrimSpace(objectAsString(args[0]))); dir {
		case component.DirectionLeft, component.DirectionRight:
			turn(enemy, body, dir)
			return tengo.TrueValue, nil
		default:
			return tengo.FalseValue, nil
		}
	}}

	if err := ps.compiled.Set("__enemy", &tengo.ImmutableMap{Value: values}); err != nil {
		return err
	}
	return ps.compiled.Run()
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
