package building

import "github.com/Faultbox/citymesh/pkg/obj"

// buildFaces emits the bottom cap fan, the side-wall quads, and the top
// cap fan. Side quads split into two triangles wound so the geometric
// triangle normal agrees in sign with the sector's computed normal; cap
// fans are wound for -y (bottom) and +y (top).
func buildFaces(sides, rings int) []obj.Face {
	topPole := topPoleIndex(rings, sides)
	faces := make([]obj.Face, 0, sides*2*(rings-1)+sides*2)

	// Bottom cap: fan from the bottom pole over ring 0.
	for j := 0; j < sides; j++ {
		next := (j + 1) % sides
		faces = append(faces, obj.Face{
			Vertex: [3]int{bottomPoleIndex, ringVertexIndex(0, j, sides), ringVertexIndex(0, next, sides)},
			Normal: [3]int{bottomCapNormalIndex, bottomCapNormalIndex, bottomCapNormalIndex},
		})
	}

	// Side walls: one quad per (segment, sector).
	for seg := 0; seg < rings-1; seg++ {
		for j := 0; j < sides; j++ {
			next := (j + 1) % sides
			a := ringVertexIndex(seg, j, sides)
			b := ringVertexIndex(seg, next, sides)
			c := ringVertexIndex(seg+1, next, sides)
			d := ringVertexIndex(seg+1, j, sides)
			ni := lateralNormalIndex(seg, j, sides)

			faces = append(faces,
				obj.Face{Vertex: [3]int{a, d, c}, Normal: [3]int{ni, ni, ni}},
				obj.Face{Vertex: [3]int{a, c, b}, Normal: [3]int{ni, ni, ni}},
			)
		}
	}

	// Top cap: fan from the top pole over the last ring.
	for j := 0; j < sides; j++ {
		next := (j + 1) % sides
		faces = append(faces, obj.Face{
			Vertex: [3]int{topPole, ringVertexIndex(rings-1, next, sides), ringVertexIndex(rings-1, j, sides)},
			Normal: [3]int{topCapNormalIndex, topCapNormalIndex, topCapNormalIndex},
		})
	}

	return faces
}
