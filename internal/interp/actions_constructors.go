package interp

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func registerConstructorActions(d *Dispatch) {
	d.Register("vector", actionVector)
	d.Register("string_literal", actionStringLiteral)
	d.Register("entity", actionEntityLiteral)
	d.Register("get_entity", actionGetEntity)
	d.Register("zone_entity", actionZoneEntity)
}

// actionVector pushes a vector literal's embedded value (Vector Reflection).
func actionVector(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	v, ok := value.(iotamodel.Vector)
	if !ok {
		return ptr(mishap.ExpectedValue("Vector Reflection", "Vector"))
	}
	st.Push(v)
	return nil
}

// actionStringLiteral pushes a string literal's embedded value.
func actionStringLiteral(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	s, ok := value.(iotamodel.String)
	if !ok {
		return ptr(mishap.ExpectedValue("String literal", "String"))
	}
	st.Push(s)
	return nil
}

// actionEntityLiteral pushes an entity literal's embedded value.
func actionEntityLiteral(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	e, ok := value.(iotamodel.Entity)
	if !ok {
		return ptr(mishap.ExpectedValue("Entity literal", "Entity"))
	}
	st.Push(e)
	return nil
}

// actionGetEntity is Entity Purification: string name -> the
// matching config-declared entity reference, or garbage via a mishap if
// no such entity is known.
func actionGetEntity(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	name, m, ok := st.StringAt(0, 1)
	if !ok {
		return ptr(m)
	}
	ent, known := st.Entities[name.Value]
	if !known {
		return ptr(mishap.InvalidValue("known entity name", name.Value))
	}
	st.RemoveArgs(1)
	st.Push(iotamodel.NewEntity(ent.Name))
	return nil
}

// actionZoneEntity is Zone Distillation: Any: vector (a world position) ->
// the nearest declared entity there. Entities carry no position in
// this host binding, so this resolves by name-key lookup against the
// vector's rounded components instead (the zone key doubling as an
// address, mirroring the akashic library convention).
func actionZoneEntity(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	v, m, ok := st.VectorAt(0, 1)
	if !ok {
		return ptr(m)
	}
	key := KeyFromVector(v)
	lib, ok := st.Libraries[key]
	if !ok {
		return ptr(mishap.NoAkashicRecord(v))
	}
	for _, iota := range lib {
		if e, ok := iota.(iotamodel.Entity); ok {
			st.RemoveArgs(1)
			st.Push(e)
			return nil
		}
	}
	return ptr(mishap.NoAkashicRecord(v))
}
