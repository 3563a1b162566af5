// Package registry implements the pattern registry (spec.md §4.1): a
// static table of (display_name, internal_name, signature, action tag)
// entries plus an overridable map of great-spell signatures.
//
// Actions are represented here as a plain string tag rather than a Go
// function value. The interpreter owns the actual dispatch table keyed
// by that same tag, which keeps this package free of any dependency on
// interp's State type (the source project's registry captures action
// closures directly; this rewrite follows spec.md's suggested redesign
// of an "enum-tag-dispatched table" instead, since Go has no
// convenient way to parameterize the action closure's receiver type
// without importing it).
package registry

import (
	"fmt"
	"math"

	"github.com/hexcompiler/hexagon/internal/iotamodel"
)

// ActionID tags the behavior an entry dispatches to. The interp
// package's action table is keyed by this same string.
type ActionID string

// Entry is one catalogue row.
type Entry struct {
	DisplayName  string
	InternalName string
	Signature    iotamodel.Signature
	Action       ActionID
	// HasValue marks the five patterns (number, mask, vector,
	// string_literal, entity) whose
	// compiled Pattern iota carries an embedded value the action reads.
	HasValue bool
}

// Registry is the constructed, query-ready catalogue.
type Registry struct {
	entries     []Entry
	bySignature map[iotamodel.Signature]Entry
	byInternal  map[string]Entry
	byDisplay   map[string]Entry
}

// New builds a Registry from the built-in catalogue, applying
// overrides (Great_Spells: internal_name -> signature_string) on top of
// the catalogue's default signatures. Construction fails loudly on any
// duplicate signature, internal name, or an override naming an unknown
// internal name, per spec.md §4.1 ("construction must fail loudly").
func New(overrides map[string]iotamodel.Signature) (*Registry, error) {
	entries := make([]Entry, len(catalogue))
	copy(entries, catalogue)

	knownInternal := make(map[string]bool, len(entries))
	for _, e := range entries {
		knownInternal[e.InternalName] = true
	}
	for internalName, sig := range overrides {
		if !knownInternal[internalName] {
			return nil, fmt.Errorf("registry: great-spell override names unknown pattern %q", internalName)
		}
		if internalName == "open_paren" || internalName == "close_paren" {
			continue
		}
		for i := range entries {
			if entries[i].InternalName == internalName {
				entries[i].Signature = sig
			}
		}
	}

	r := &Registry{
		entries:     entries,
		bySignature: make(map[iotamodel.Signature]Entry, len(entries)),
		byInternal:  make(map[string]Entry, len(entries)),
		byDisplay:   make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		if e.Signature != "" {
			if _, dup := r.bySignature[e.Signature]; dup {
				return nil, fmt.Errorf("registry: duplicate signature %q (internal name %q)", e.Signature, e.InternalName)
			}
			r.bySignature[e.Signature] = e
		}
		if _, dup := r.byInternal[e.InternalName]; dup {
			return nil, fmt.Errorf("registry: duplicate internal name %q", e.InternalName)
		}
		r.byInternal[e.InternalName] = e
		r.byDisplay[e.DisplayName] = e
	}
	return r, nil
}

// Find looks up query against display name, internal name, then
// signature, in that order, and returns the first match.
func (r *Registry) Find(query string) (Entry, bool) {
	if e, ok := r.byDisplay[query]; ok {
		return e, true
	}
	if e, ok := r.byInternal[query]; ok {
		return e, true
	}
	if e, ok := r.bySignature[iotamodel.Signature(query)]; ok {
		return e, true
	}
	return Entry{}, false
}

// FindBySignature looks up an entry by its exact signature, used by the
// evaluator's Pattern-dispatch step (spec.md §4.3 step 2).
func (r *Registry) FindBySignature(sig iotamodel.Signature) (Entry, bool) {
	e, ok := r.bySignature[sig]
	return e, ok
}

// FindByInternalName looks up an entry by its exact internal name. The
// value-bearing entries (number, mask, vector, string_literal, entity)
// all carry signature "" so they never land in bySignature; a compiled
// Pattern for one of them must be resolved this way instead.
func (r *Registry) FindByInternalName(name string) (Entry, bool) {
	e, ok := r.byInternal[name]
	return e, ok
}

// All returns every entry, in catalogue order.
func (r *Registry) All() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func mustSig(s string) iotamodel.Signature {
	sig, ok := iotamodel.ParseSignature(s)
	if !ok {
		panic("registry: invalid signature literal " + s)
	}
	return sig
}

// catalogue is the built-in table, transcribed from
// original_source/src/pattern_registry.rs where that file assigns a
// signature, and extended (signatures invented but held to the same
// six-direction convention) for the stack, read/write, matrix, and
// string actions original_source implements in patterns/stack.rs and
// patterns/read_write.rs without ever wiring them into its registry.
var catalogue = []Entry{
	// special / evaluator-privileged (spec.md §4.4)
	{"Consideration", "escape", mustSig("qqqaw"), "escape", false},
	{"Introspection", "open_paren", iotamodel.OpenParenSignature, "open_paren", false},
	{"Retrospection", "close_paren", iotamodel.CloseParenSignature, "close_paren", false},
	{"Hermes' Gambit", "eval", mustSig("deaqq"), "eval", false},
	{"Thoth's Gambit", "for_each", mustSig("dadad"), "for_each", false},
	{"Charon's Gambit", "halt", mustSig("aqdee"), "halt", false},
	{"Jester's Gambit", "print", mustSig("qwaqw"), "print", false},
	{"Klaxon's Gambit", "beep", mustSig("awawa"), "beep", false},
	{"Augur's Exaltation", "if", mustSig("awdd"), "if", false},

	// math
	{"Additive Distillation", "add", mustSig("waaw"), "add", false},
	{"Subtractive Distillation", "sub", mustSig("wddw"), "sub", false},
	{"Multiplicative Distillation", "mul_dot", mustSig("waqaw"), "mul_dot", false},
	{"Division Distillation", "div_cross", mustSig("wdedw"), "div_cross", false},
	{"Length Purification", "abs_len", mustSig("wqaqw"), "abs_len", false},
	{"Power Distillation", "pow_proj", mustSig("wedew"), "pow_proj", false},
	{"Floor Purification", "floor", mustSig("ewq"), "floor", false},
	{"Ceiling Purification", "ceil", mustSig("qwe"), "ceil", false},
	{"Vector Exaltation", "construct_vec", mustSig("eqqqqq"), "construct_vec", false},
	{"Vector Disintegration", "deconstruct_vec", mustSig("qeeeee"), "deconstruct_vec", false},
	{"Axial Purification", "coerce_axial", mustSig("qqqqqaww"), "coerce_axial", false},
	{"Conjunction Distillation", "and", mustSig("wdw"), "and", false},
	{"Disjunction Distillation", "or", mustSig("waw"), "or", false},
	{"Exclusion Distillation", "xor", mustSig("dwa"), "xor", false},
	{"Maximus Distillation", "greater", mustSig("e"), "greater", false},
	{"Minimus Distillation", "less", mustSig("q"), "less", false},
	{"Maximus Distillation: Coalesce", "greater_eq", mustSig("ee"), "greater_eq", false},
	{"Minimus Distillation: Coalesce", "less_eq", mustSig("qq"), "less_eq", false},
	{"Equality Distillation", "equals", mustSig("ad"), "equals", false},
	{"Inequality Distillation", "not_equals", mustSig("da"), "not_equals", false},
	{"Negation Purification", "not", mustSig("dw"), "not", false},
	{"Augur's Purification", "bool_coerce", mustSig("aw"), "bool_coerce", false},
	{"Sine Purification", "sin", mustSig("qqqqqaa"), "sin", false},
	{"Cosine Purification", "cos", mustSig("qqqqqad"), "cos", false},
	{"Tangent Purification", "tan", mustSig("wqqqqqadq"), "tan", false},
	{"Inverse Sine Purification", "arcsin", mustSig("ddeeeee"), "arcsin", false},
	{"Inverse Cosine Purification", "arccos", mustSig("adeeeee"), "arccos", false},
	{"Inverse Tangent Purification", "arctan", mustSig("eadeeeeew"), "arctan", false},
	{"Logarithmic Distillation", "logarithm", mustSig("eqaqe"), "logarithm", false},
	{"Modulus Distillation", "modulo", mustSig("addwaad"), "modulo", false},
	{"Intersection Distillation", "and_bit", mustSig("wdweaqa"), "and_bit", false},
	{"Unifying Distillation", "or_bit", mustSig("waweaqa"), "or_bit", false},
	{"Exclusionary Distillation", "xor_bit", mustSig("dwaeaqa"), "xor_bit", false},
	{"Inversion Purification", "not_bit", mustSig("dweaqa"), "not_bit", false},
	{"Uniqueness Purification", "to_set", mustSig("aweaqa"), "to_set", false},

	// lists
	{"Integration Distillation", "append", mustSig("edqde"), "append", false},
	{"Combination Distillation", "concat", mustSig("qaeaq"), "concat", false},
	{"Selection Distillation", "index", mustSig("deeed"), "index", false},
	{"Abacus Purification", "list_size", mustSig("aqaeaq"), "list_size", false},
	{"Single's Purification", "singleton", mustSig("adeeed"), "singleton", false},
	{"Retrograde Purification", "reverse_list", mustSig("qqqaede"), "reverse_list", false},
	{"Flock's Gambit", "last_n_list", mustSig("ewdqdwe"), "last_n_list", false},
	{"Flock's Disintegration", "splat", mustSig("qwaeawq"), "splat", false},
	{"Locator's Distillation", "index_of", mustSig("dedqde"), "index_of", false},
	{"Excisor's Distillation", "list_remove", mustSig("edqdewaqa"), "list_remove", false},
	{"Selection Exaltation", "slice", mustSig("qaeaqwded"), "slice", false},
	{"Surgeon's Exaltation", "modify_in_place", mustSig("wqaeaqw"), "modify_in_place", false},
	{"Speaker's Distillation", "construct", mustSig("ddewedd"), "construct", false},
	{"Speaker's Decomposition", "deconstruct", mustSig("aaqwqaa"), "deconstruct", false},

	// constants
	{"Vacant Reflection", "empty_list", mustSig("qqaeaae"), "empty_list", false},
	{"Vector Reflection +X", "const/vec/px", mustSig("qqqqqea"), "const/vec/px", false},
	{"Vector Reflection +Y", "const/vec/py", mustSig("qqqqqew"), "const/vec/py", false},
	{"Vector Reflection +Z", "const/vec/pz", mustSig("qqqqqed"), "const/vec/pz", false},
	{"Vector Reflection -X", "const/vec/nx", mustSig("eeeeeqa"), "const/vec/nx", false},
	{"Vector Reflection -Y", "const/vec/ny", mustSig("eeeeeqw"), "const/vec/ny", false},
	{"Vector Reflection -Z", "const/vec/nz", mustSig("eeeeeqd"), "const/vec/nz", false},
	{"Vector Reflection Zero", "const/vec/0", mustSig("qqqqq"), "const/vec/0", false},
	{"Arc's Reflection", "const/double/pi", mustSig("qdwdq"), "const/double/pi", false},
	{"Circle's Reflection", "const/double/tau", mustSig("eawae"), "const/double/tau", false},
	{"Euler's Reflection", "const/double/e", mustSig("aaq"), "const/double/e", false},
	{"Nullary Reflection", "const/null", mustSig("d"), "const/null", false},
	{"True Reflection", "const/true", mustSig("aqae"), "const/true", false},
	{"False Reflection", "const/false", mustSig("dedq"), "const/false", false},

	// value-bearing
	{"Numerical Reflection", "number", mustSig(""), "number", true},
	{"Bookkeeper's Gambit", "mask", mustSig(""), "mask", true},
	{"Vector Reflection", "vector", mustSig(""), "vector", true},
	{"String Reflection", "string_literal", mustSig(""), "string_literal", true},
	{"Iris' Gambit", "entity", mustSig(""), "entity", true},

	// entities
	{"Entity Purification", "get_entity", mustSig("qqqqqdaqa"), "get_entity", false},
	{"Entity Purification: Animal", "get_entity/animal", mustSig("qqqqqdaqaawa"), "get_entity/animal", false},
	{"Entity Purification: Monster", "get_entity/monster", mustSig("qqqqqdaqaawq"), "get_entity/monster", false},
	{"Entity Purification: Item", "get_entity/item", mustSig("qqqqqdaqaaww"), "get_entity/item", false},
	{"Entity Purification: Player", "get_entity/player", mustSig("qqqqqdaqaawe"), "get_entity/player", false},
	{"Entity Purification: Living", "get_entity/living", mustSig("qqqqqdaqaawd"), "get_entity/living", false},
	{"Zone Distillation: Any", "zone_entity", mustSig("qqqqqwded"), "zone_entity", false},
	{"Zone Distillation: Animal", "zone_entity/animal", mustSig("qqqqqwdeddwa"), "zone_entity/animal", false},
	{"Zone Distillation: Monster", "zone_entity/monster", mustSig("qqqqqwdeddwq"), "zone_entity/monster", false},
	{"Zone Distillation: Item", "zone_entity/item", mustSig("qqqqqwdeddww"), "zone_entity/item", false},
	{"Zone Distillation: Player", "zone_entity/player", mustSig("qqqqqwdeddwe"), "zone_entity/player", false},
	{"Zone Distillation: Living", "zone_entity/living", mustSig("qqqqqwdeddwd"), "zone_entity/living", false},

	// stack manipulation (original_source/src/patterns/stack.rs)
	{"Gemini Decomposition", "duplicate", mustSig("aaww"), "duplicate", false},
	{"Gemini Gambit", "two_dup", mustSig("aawwaa"), "two_dup", false},
	{"Gemini Distillation", "duplicate_n", mustSig("aawwa"), "duplicate_n", false},
	{"Jester's Purification", "swap", mustSig("ss"), "swap", false},
	{"Rotation Gambit", "rotate", mustSig("sqwqs"), "rotate", false},
	{"Rotation Gambit II", "rotate_reverse", mustSig("saeas"), "rotate_reverse", false},
	{"Fisherman's Gambit", "over", mustSig("wqwqaa"), "over", false},
	{"Flock's Reflection", "tuck", mustSig("wawawdd"), "tuck", false},
	{"Stack's Reflection", "stack_len", mustSig("aqaeaw"), "stack_len", false},
	{"Fisherman's Gambit II", "fisherman", mustSig("wqwqaaee"), "fisherman", false},
	{"Fisherman's Gambit III", "fisherman_copy", mustSig("wqwqaaeedd"), "fisherman_copy", false},

	// read/write (original_source/src/patterns/read_write.rs)
	{"Scribe's Reflection", "read_local", mustSig("ssw"), "read_local", false},
	{"Scribe's Gambit", "write_local", mustSig("sse"), "write_local", false},
	{"Scribe's Purification", "erase", mustSig("sses"), "erase", false},
	{"Trinket's Gambit", "craft_trinket", mustSig("adadqqq"), "craft_trinket", false},
	{"Cypher's Gambit", "craft_cypher", mustSig("adadqqqq"), "craft_cypher", false},
	{"Artifact's Gambit", "craft_artifact", mustSig("adadqqqqq"), "craft_artifact", false},
	{"Scribe's Reflection: Used", "read", mustSig("ssww"), "read", false},
	{"Scribe's Gambit: Used", "write", mustSig("ssee"), "write", false},
	{"Diviner's Gambit", "readable", mustSig("sswaa"), "readable", false},
	{"Diviner's Gambit II", "writable", mustSig("sseaa"), "writable", false},
	{"Akashic Reflection", "akashic_read", mustSig("qqqwaaedd"), "akashic_read", false},
	{"Akashic Gambit", "akashic_write", mustSig("eeeaaqwdd"), "akashic_write", false},

	// matrices
	{"Matrix Exaltation", "matrix_new", mustSig("dwaqwd"), "matrix_new", false},
	{"Matrix Distillation", "matrix_get", mustSig("dwaqwe"), "matrix_get", false},
	{"Matrix Gambit", "matrix_set", mustSig("dwaqww"), "matrix_set", false},
	{"Matrix's Purification", "matrix_transpose", mustSig("dwaqws"), "matrix_transpose", false},
	{"Matrix Additive Distillation", "matrix_add", mustSig("dwaqwaa"), "matrix_add", false},
	{"Matrix Multiplicative Distillation", "matrix_mul", mustSig("dwaqwdd"), "matrix_mul", false},

	// strings
	{"Muninn's Reflection", "string_concat", mustSig("adadaa"), "string_concat", false},
	{"Muninn's Distillation", "string_length", mustSig("adadae"), "string_length", false},
	{"Huginn's Gambit", "string_to_list", mustSig("adadaw"), "string_to_list", false},
}

// Pi, Tau and E are the values the const/double/* reflections above
// push (registered in interp's actions_constants.go).
const (
	Pi  = math.Pi
	Tau = 2 * math.Pi
	E   = math.E
)
