package interp

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func registerReadWriteActions(d *Dispatch) {
	d.Register("erase", actionErase)
	d.Register("craft_trinket", actionCraftTrinket)
	d.Register("craft_cypher", actionCraftCypher)
	d.Register("craft_artifact", actionCraftArtifact)
	d.Register("read", actionRead)
	d.Register("write", actionWrite)
	d.Register("readable", actionReadable)
	d.Register("writable", actionWritable)
	d.Register("akashic_read", actionAkashicRead)
	d.Register("akashic_write", actionAkashicWrite)
}

func (st *State) lookupEntity(ref iotamodel.Entity) (*Entity, *mishap.Mishap) {
	e, ok := st.Entities[ref.Name]
	if !ok {
		m := mishap.InvalidValue("known entity", ref.Name)
		return nil, &m
	}
	return e, nil
}

// actionErase is Retrospection's item cousin: clears whatever an entity
// is holding.
func actionErase(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	ref, m, ok := st.EntityAt(0, 1)
	if !ok {
		return ptr(m)
	}
	ent, em := st.lookupEntity(ref)
	if em != nil {
		return em
	}
	st.RemoveArgs(1)
	ent.Holding = Holding{}
	return nil
}

func craftHolding(st *State, kind HoldingKind) *mishap.Mishap {
	item, m, ok := st.IotaAt(0, 2)
	if !ok {
		return ptr(m)
	}
	ref, m, ok := st.EntityAt(1, 2)
	if !ok {
		return ptr(m)
	}
	ent, em := st.lookupEntity(ref)
	if em != nil {
		return em
	}
	st.RemoveArgs(2)
	ent.Holding = Holding{Kind: kind, Item: item}
	return nil
}

func actionCraftTrinket(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return craftHolding(st, HoldingTrinket)
}

func actionCraftCypher(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return craftHolding(st, HoldingCypher)
}

func actionCraftArtifact(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return craftHolding(st, HoldingArtifact)
}

// actionRead pushes the iota an entity is holding, failing if it holds
// nothing.
func actionRead(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	ref, m, ok := st.EntityAt(0, 1)
	if !ok {
		return ptr(m)
	}
	ent, em := st.lookupEntity(ref)
	if em != nil {
		return em
	}
	if ent.Holding.Kind == HoldingNone || ent.Holding.Item == nil {
		return ptr(mishap.HoldingIncorrectItem())
	}
	st.RemoveArgs(1)
	st.Push(ent.Holding.Item)
	return nil
}

// actionWrite overwrites the item an entity is currently holding;
// cyphers and artifacts accept a write; any other holding (or none)
// raises HoldingIncorrectItem.
func actionWrite(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	item, m, ok := st.IotaAt(0, 2)
	if !ok {
		return ptr(m)
	}
	ref, m, ok := st.EntityAt(1, 2)
	if !ok {
		return ptr(m)
	}
	ent, em := st.lookupEntity(ref)
	if em != nil {
		return em
	}
	if ent.Holding.Kind != HoldingCypher && ent.Holding.Kind != HoldingArtifact {
		return ptr(mishap.HoldingIncorrectItem())
	}
	st.RemoveArgs(2)
	ent.Holding.Item = item
	return nil
}

func actionReadable(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	ref, m, ok := st.EntityAt(0, 1)
	if !ok {
		return ptr(m)
	}
	ent, em := st.lookupEntity(ref)
	if em != nil {
		return em
	}
	st.RemoveArgs(1)
	st.Push(iotamodel.NewBool(ent.Holding.Kind != HoldingNone && ent.Holding.Item != nil))
	return nil
}

func actionWritable(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	ref, m, ok := st.EntityAt(0, 1)
	if !ok {
		return ptr(m)
	}
	ent, em := st.lookupEntity(ref)
	if em != nil {
		return em
	}
	st.RemoveArgs(1)
	writable := ent.Holding.Kind == HoldingCypher || ent.Holding.Kind == HoldingArtifact
	st.Push(iotamodel.NewBool(writable))
	return nil
}

// actionAkashicRead is Akashic Reflection: pattern, vector -> the iota
// stashed at that world position under that signature, or a mishap if
// no such record exists.
func actionAkashicRead(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	key, m, ok := st.PatternAt(0, 2)
	if !ok {
		return ptr(m)
	}
	loc, m, ok := st.VectorAt(1, 2)
	if !ok {
		return ptr(m)
	}
	lib, ok := st.Libraries[KeyFromVector(loc)]
	if !ok {
		return ptr(mishap.NoAkashicRecord(loc))
	}
	iota, ok := lib[key.Signature]
	if !ok {
		return ptr(mishap.NoAkashicRecord(loc))
	}
	st.RemoveArgs(2)
	st.Push(iota)
	return nil
}

// actionAkashicWrite is Akashic Gambit: value, pattern, vector -> stash
// value at that position under that signature.
func actionAkashicWrite(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	v, m, ok := st.IotaAt(0, 3)
	if !ok {
		return ptr(m)
	}
	key, m, ok := st.PatternAt(1, 3)
	if !ok {
		return ptr(m)
	}
	loc, m, ok := st.VectorAt(2, 3)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(3)
	libKey := KeyFromVector(loc)
	lib, ok := st.Libraries[libKey]
	if !ok {
		lib = Library{}
		st.Libraries[libKey] = lib
	}
	lib[key.Signature] = v
	return nil
}
