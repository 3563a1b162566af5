package iotamodel

import (
	"fmt"

	"github.com/google/uuid"
)

// Entity is a symbolic reference to a game entity: a name plus the
// UUID the host environment assigned it. Equality is name-only per
// spec.md §3 ("tolerates: names equal") — the UUID is carried for
// serialization fidelity but never compared.
type Entity struct {
	Name string
	UUID uuid.UUID
}

// NewEntity mints a fresh UUID for a named entity, the way a config
// loader would when declaring one in the `entities` TOML section.
func NewEntity(name string) Entity {
	return Entity{Name: name, UUID: uuid.New()}
}

func NewEntityWithUUID(name string, id uuid.UUID) Entity {
	return Entity{Name: name, UUID: id}
}

func (e Entity) Kind() Kind       { return KindEntity }
func (e Entity) TypeName() string { return KindEntity.String() }
func (e Entity) Display() string  { return fmt.Sprintf("@%s", e.Name) }

func (e Entity) Tolerates(other Iota) bool {
	o, ok := other.(Entity)
	return ok && o.Name == e.Name
}

func (e Entity) SerializeNBT() string {
	return fmt.Sprintf(`{"hexcasting:type": "hexcasting:entity", "hexcasting:data": %q}`, e.UUID.String())
}

func (e Entity) SerializeJSON() any {
	return map[string]any{"iotaType": "entity", "value": map[string]string{"name": e.Name, "uuid": e.UUID.String()}}
}
