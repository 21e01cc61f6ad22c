package board

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/ticketboard/internal/model"
)

// MarshalJSON writes the result as an object keyed by group, preserving
// group order.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range r.Groups {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Key)
		if err != nil {
			return nil, err
		}
		tickets := g.Tickets
		if tickets == nil {
			tickets = []model.Ticket{}
		}
		val, err := json.Marshal(tickets)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits an ordered mapping of group key to tickets.
func (r Result) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, g := range r.Groups {
		var val yaml.Node
		if err := val.Encode(g.Tickets); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: g.Key},
			&val,
		)
	}
	return node, nil
}
