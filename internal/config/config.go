// Package config loads the TOML host configuration described in
// spec.md §6: great-spell signature overrides, akashic libraries
// seeded at startup, and declared entities. It uses
// github.com/pelletier/go-toml/v2, the same TOML library
// AKJUS-bsc-erigon depends on, and never panics on malformed input —
// every failure is a typed *Error the caller can log or report.
package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hexcompiler/hexagon/internal/interp"
	"github.com/hexcompiler/hexagon/internal/iotamodel"
)

// Error is a config-loading failure: malformed TOML, an unknown
// entity type/item, or a bad iota literal string. Kind lets a caller
// distinguish parse failures from semantic ones without string
// matching.
type Error struct {
	Kind    Kind
	Detail  string
	Wrapped error
}

type Kind int

const (
	KindParse Kind = iota
	KindBadEntityType
	KindBadHoldingItem
	KindBadIotaLiteral
	KindBadSignature
)

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("config: %s: %v", e.Detail, e.Wrapped)
	}
	return fmt.Sprintf("config: %s", e.Detail)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Config is the parsed, ready-to-use result: signature overrides feed
// registry.New, Libraries/Entities seed an interp.State.
type Config struct {
	GreatSpells map[string]iotamodel.Signature
	Libraries   map[interp.LibraryKey]interp.Library
	Entities    map[string]*interp.Entity
}

// Load parses a TOML config document (spec.md §6). literal is a
// callback resolving an iota-literal string (shared with
// internal/parser's grammar) into an iotamodel.Iota, so this package
// does not need its own copy of the literal grammar.
func Load(data []byte, logger *zap.SugaredLogger, literal func(string) (iotamodel.Iota, error)) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	// go-toml/v2 does not support inline extra key maps on a struct the
	// way map[string]string does for an *entire* table, so libraries'
	// per-signature records are decoded as a generic map first.
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Kind: KindParse, Detail: "invalid TOML", Wrapped: errors.WithStack(err)}
	}

	cfg := &Config{
		GreatSpells: map[string]iotamodel.Signature{},
		Libraries:   map[interp.LibraryKey]interp.Library{},
		Entities:    map[string]*interp.Entity{},
	}

	if gs, ok := doc["Great_Spells"].(map[string]any); ok {
		for name, v := range gs {
			s, ok := v.(string)
			if !ok {
				return nil, &Error{Kind: KindBadSignature, Detail: fmt.Sprintf("Great_Spells.%s is not a string", name)}
			}
			sig, valid := iotamodel.ParseSignature(s)
			if !valid {
				return nil, &Error{Kind: KindBadSignature, Detail: fmt.Sprintf("Great_Spells.%s: invalid signature %q", name, s)}
			}
			cfg.GreatSpells[name] = sig
			logger.Debugw("great spell override", "pattern", name, "signature", s)
		}
	}

	if libs, ok := doc["libraries"].([]any); ok {
		for i, raw := range libs {
			lib, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			key, err := parseLibraryKey(lib)
			if err != nil {
				return nil, errors.Wrapf(err, "libraries[%d]", i)
			}
			table := interp.Library{}
			for sigStr, v := range lib {
				if sigStr == "location" {
					continue
				}
				litStr, ok := v.(string)
				if !ok {
					continue
				}
				sig, valid := iotamodel.ParseSignature(sigStr)
				if !valid {
					return nil, &Error{Kind: KindBadSignature, Detail: fmt.Sprintf("libraries[%d].%s: invalid signature", i, sigStr)}
				}
				iota, lerr := literal(litStr)
				if lerr != nil {
					return nil, &Error{Kind: KindBadIotaLiteral, Detail: fmt.Sprintf("libraries[%d].%s", i, sigStr), Wrapped: lerr}
				}
				table[sig] = iota
			}
			cfg.Libraries[key] = table
			logger.Debugw("akashic library", "location", key, "records", len(table))
		}
	}

	if ents, ok := doc["entities"].([]any); ok {
		for i, raw := range ents {
			row, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			ent, err := parseEntity(row, literal)
			if err != nil {
				return nil, errors.Wrapf(err, "entities[%d]", i)
			}
			cfg.Entities[ent.Name] = ent
			logger.Debugw("declared entity", "name", ent.Name, "type", ent.Type.String())
		}
	}

	return cfg, nil
}

func parseLibraryKey(lib map[string]any) (interp.LibraryKey, error) {
	loc, ok := lib["location"].([]any)
	if !ok || len(loc) != 3 {
		return interp.LibraryKey{}, &Error{Kind: KindParse, Detail: "library entry missing location = [x, y, z]"}
	}
	var xyz [3]int
	for i, v := range loc {
		f, ok := v.(float64)
		if !ok {
			if n, ok := v.(int64); ok {
				f = float64(n)
			} else {
				return interp.LibraryKey{}, &Error{Kind: KindParse, Detail: "library location must be integers"}
			}
		}
		xyz[i] = int(f)
	}
	return interp.LibraryKey{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func parseEntity(row map[string]any, literal func(string) (iotamodel.Iota, error)) (*interp.Entity, error) {
	name, _ := row["name"].(string)
	if name == "" {
		return nil, &Error{Kind: KindParse, Detail: "entity missing name"}
	}
	typeStr, _ := row["type"].(string)
	entType, ok := parseEntityType(typeStr)
	if !ok {
		return nil, &Error{Kind: KindBadEntityType, Detail: fmt.Sprintf("entity %q: unknown type %q", name, typeStr)}
	}

	ent := &interp.Entity{Name: name, Type: entType}

	itemStr, hasItem := row["item"].(string)
	if hasItem {
		kind, ok := parseHoldingKind(itemStr)
		if !ok {
			return nil, &Error{Kind: KindBadHoldingItem, Detail: fmt.Sprintf("entity %q: unknown item kind %q", name, itemStr)}
		}
		var item iotamodel.Iota
		if iotaStr, ok := row["iota"].(string); ok {
			parsed, err := literal(iotaStr)
			if err != nil {
				return nil, &Error{Kind: KindBadIotaLiteral, Detail: fmt.Sprintf("entity %q", name), Wrapped: err}
			}
			item = parsed
		}
		ent.Holding = interp.Holding{Kind: kind, Item: item}
	}
	return ent, nil
}

func parseEntityType(s string) (interp.EntityType, bool) {
	switch s {
	case "Animal":
		return interp.EntityAnimal, true
	case "Monster":
		return interp.EntityMonster, true
	case "Living":
		return interp.EntityLiving, true
	case "Item":
		return interp.EntityItem, true
	case "Player":
		return interp.EntityPlayer, true
	case "Misc", "":
		return interp.EntityMisc, true
	default:
		return 0, false
	}
}

func parseHoldingKind(s string) (interp.HoldingKind, bool) {
	switch s {
	case "Focus":
		return interp.HoldingFocus, true
	case "Trinket":
		return interp.HoldingTrinket, true
	case "Artifact":
		return interp.HoldingArtifact, true
	case "Cypher":
		return interp.HoldingCypher, true
	default:
		return 0, false
	}
}
