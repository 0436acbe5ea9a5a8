package types

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// Block is the netlist aggregate that schematic symbols point into. It is
// owned outside the layout core; only connection entries are edited here.
type Block struct {
	ID         uuid.UUID                `json:"id"`
	Components map[uuid.UUID]*Component `json:"components"`
	Nets       map[uuid.UUID]*Net       `json:"nets"`
}

// NewBlock returns an empty block.
func NewBlock(id uuid.UUID) *Block {
	return &Block{
		ID:         id,
		Components: make(map[uuid.UUID]*Component),
		Nets:       make(map[uuid.UUID]*Net),
	}
}

// Component looks up a component by id.
func (b *Block) Component(id uuid.UUID) (*Component, error) {
	if b == nil {
		return nil, ErrComponentNotFound
	}
	c, ok := b.Components[id]
	if !ok {
		return nil, ErrComponentNotFound
	}
	return c, nil
}

// Net is a named electrical net.
type Net struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UnitPin is one pin of a gate's unit.
type UnitPin struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Gate is one instance of a unit within a component's entity.
type Gate struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Suffix string    `json:"suffix"`
	Pins   []UnitPin `json:"pins"`
}

// PinPath addresses a pin of a specific gate.
type PinPath struct {
	Gate uuid.UUID `json:"gate"`
	Pin  uuid.UUID `json:"pin"`
}

// MarshalText renders the path as gate/pin so it can key JSON objects.
func (p PinPath) MarshalText() ([]byte, error) {
	return []byte(p.Gate.String() + "/" + p.Pin.String()), nil
}

// UnmarshalText parses the gate/pin form.
func (p *PinPath) UnmarshalText(b []byte) error {
	gate, pin, ok := strings.Cut(string(b), "/")
	if !ok {
		return eris.Wrapf(ErrInvalidID, "pin path %q", string(b))
	}
	g, err := uuid.Parse(gate)
	if err != nil {
		return eris.Wrapf(ErrInvalidID, "pin path %q", string(b))
	}
	q, err := uuid.Parse(pin)
	if err != nil {
		return eris.Wrapf(ErrInvalidID, "pin path %q", string(b))
	}
	p.Gate, p.Pin = g, q
	return nil
}

// Connection attaches a component pin to a net. A nil Net is an explicit
// "not connected" marker.
type Connection struct {
	Net *uuid.UUID `json:"net"`
}

// IsNC reports whether the connection is an explicit null-net entry.
func (c Connection) IsNC() bool {
	return c.Net == nil
}

// Component is a placed part instance.
type Component struct {
	ID          uuid.UUID              `json:"id"`
	Refdes      string                 `json:"refdes"`
	Gates       map[uuid.UUID]*Gate    `json:"gates"`
	Connections map[PinPath]Connection `json:"connections"`
}

// Gate looks up a gate by id.
func (c *Component) Gate(id uuid.UUID) (*Gate, error) {
	g, ok := c.Gates[id]
	if !ok {
		return nil, ErrGateNotFound
	}
	return g, nil
}
