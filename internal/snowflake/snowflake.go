package snowflake

import "github.com/bwmarrin/snowflake"

// Generator hands out unique post identifiers.
type Generator struct {
	node *snowflake.Node
}

// New creates a generator for the given node ID (0-1023).
func New(nodeID int64) (*Generator, error) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Generator{node: n}, nil
}

// NextID returns a fresh identifier in its decimal string form.
func (g *Generator) NextID() string {
	return g.node.Generate().String()
}
