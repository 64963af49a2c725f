// Package cluster is a nested configuration tree of structs, pointers, maps, slices and interfaces.
package cluster

// Cluster is a set of nodes sharing one config.
type Cluster struct {
	settings
	name   string
	nodes  []*node
	zones  map[string]*zone
	limits [2]int
	policy any
}

type settings struct {
	retries int
	tags    map[string]string
}

type node struct {
	addr  string
	ports map[string]int
}

type zone struct {
	primary *node
	weight  float64
}

// Default returns a two-node cluster in one zone.
func Default() *Cluster {
	first := &node{addr: "10.0.0.1", ports: map[string]int{"http": 80}}

	return &Cluster{
		settings: settings{retries: 3},
		name:     "main",
		nodes:    []*node{first, {addr: "10.0.0.2"}},
		zones:    map[string]*zone{"east": {primary: first, weight: 0.5}},
		limits:   [2]int{10, 20},
		policy:   settings{retries: 1},
	}
}

// Port returns the named port of the node at index, or 0.
func (c *Cluster) Port(index int, name string) int {
	if index >= len(c.nodes) {
		return 0
	}

	return c.nodes[index].ports[name]
}
