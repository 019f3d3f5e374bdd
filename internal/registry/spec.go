package registry

import "github.com/skyops/flowgrid/internal/model"

// PortType is the value type carried on a port.
type PortType string

const (
	PortString  PortType = "string"
	PortNumber  PortType = "number"
	PortJSON    PortType = "json"
	PortBoolean PortType = "boolean"
)

// Port is a named, typed input or output slot on a node type.
type Port struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Type  PortType `json:"type"`
}

// FieldKind describes how a configuration field is edited and parsed.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldNumber   FieldKind = "number"
	FieldSelect   FieldKind = "select"
	FieldBoolean  FieldKind = "boolean"
)

// ConfigField describes one configuration key a node type accepts.
type ConfigField struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Options  []string  `json:"options,omitempty"`
	Required bool      `json:"required,omitempty"`
}

// NodeSpec is the registered port/configuration schema for one node type.
// Immutable and process-wide once seeded.
type NodeSpec struct {
	Type    model.NodeType `json:"type"`
	Label   string         `json:"label"`
	Inputs  []Port         `json:"inputs"`
	Outputs []Port         `json:"outputs"`
	Config  []ConfigField  `json:"config"`
}

// RequiredConfig returns the keys a node of this type must set.
func (s NodeSpec) RequiredConfig() []string {
	var keys []string
	for _, f := range s.Config {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}
