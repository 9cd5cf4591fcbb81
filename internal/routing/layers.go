package routing

import "topodraw/internal/topology"

// Partition is the rendered connection set split by display layer.
type Partition struct {
	Layer2 []RenderedConnection
	Layer3 []RenderedConnection
}

// PartitionLayers assigns each rendered connection to a layer by looking up
// its backing record. Only an explicit layer2 tag selects layer2; untagged,
// unknown and orphaned ids land in layer3.
func PartitionLayers(rendered []RenderedConnection, conns []topology.Connection) Partition {
	layers := make(map[string]topology.Layer, len(conns))
	for _, c := range conns {
		layers[c.ID] = c.EffectiveLayer()
	}

	var p Partition
	for _, rc := range rendered {
		if layers[rc.ID] == topology.Layer2 {
			p.Layer2 = append(p.Layer2, rc)
			continue
		}
		p.Layer3 = append(p.Layer3, rc)
	}
	return p
}

// Visible returns the connections of the layers switched on, layer2 first.
func (p Partition) Visible(showLayer2, showLayer3 bool) []RenderedConnection {
	var out []RenderedConnection
	if showLayer2 {
		out = append(out, p.Layer2...)
	}
	if showLayer3 {
		out = append(out, p.Layer3...)
	}
	return out
}
