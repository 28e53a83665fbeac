package ast

import "strconv"

// DefaultLabelPrefix names labels synthesized for basic blocks.
const DefaultLabelPrefix = "Block"

// LabelGenerator hands out labels with sequential names.
// It is not safe for concurrent use.
type LabelGenerator struct {
	Prefix string
	next   int
}

// NewLabelGenerator creates a generator producing Block_0, Block_1, ...
func NewLabelGenerator() *LabelGenerator {
	return &LabelGenerator{Prefix: DefaultLabelPrefix}
}

// Next returns a fresh label.
func (g *LabelGenerator) Next() *Label {
	prefix := g.Prefix
	if prefix == "" {
		prefix = DefaultLabelPrefix
	}
	l := &Label{Name: prefix + "_" + strconv.Itoa(g.next)}
	g.next++
	return l
}
