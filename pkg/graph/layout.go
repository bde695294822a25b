package graph

import "math"

// CircleLayout places nodes evenly on a circle.
type CircleLayout struct {
	CenterX float64
	CenterY float64
	Radius  float64
}

// DefaultLayout is the circle used by Parse: radius 300 around (400, 400).
var DefaultLayout = CircleLayout{CenterX: 400, CenterY: 400, Radius: 300}

// Apply assigns positions to m's nodes in place. Node i of k is placed at
// angle 2πi/k, starting at the positive x axis.
func (l CircleLayout) Apply(m *Model) {
	k := len(m.Nodes)
	for i := range m.Nodes {
		angle := 2 * math.Pi * float64(i) / float64(k)
		m.Nodes[i].X = l.CenterX + l.Radius*math.Cos(angle)
		m.Nodes[i].Y = l.CenterY + l.Radius*math.Sin(angle)
	}
}
