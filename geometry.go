package arcball

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Disc is a unit triangle fan: a center vertex followed by steps+1 rim
// vertices (the last one repeats the first angle to close the fan).
type Disc struct {
	Vertices []Vec2
	UVs      []Vec2
	Indices  []uint16
}

// NewDisc builds a disc of the given radius with steps rim segments.
func NewDisc(steps int, radius float64) Disc {
	if steps < 3 {
		steps = 3
	}
	d := Disc{
		Vertices: make([]Vec2, 0, steps+2),
		UVs:      make([]Vec2, 0, steps+2),
		Indices:  make([]uint16, 0, steps*3),
	}
	d.Vertices = append(d.Vertices, Vec2{})
	d.UVs = append(d.UVs, Vec2{X: 0.5, Y: 0.5})

	alpha := 2 * math.Pi / float64(steps)
	for i := 0; i <= steps; i++ {
		sin, cos := math.Sincos(alpha * float64(i))
		d.Vertices = append(d.Vertices, Vec2{X: radius * cos, Y: radius * sin})
		d.UVs = append(d.UVs, Vec2{X: cos*0.5 + 0.5, Y: sin*0.5 + 0.5})
	}
	for i := 1; i <= steps; i++ {
		d.Indices = append(d.Indices, 0, uint16(i), uint16(i+1))
	}
	return d
}

// icosahedronFaces lists the 20 faces of the base icosahedron by vertex index.
var icosahedronFaces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// Icosphere returns the vertices of an icosahedron of the given radius after
// the given number of subdivision passes. Each pass splits every face into
// four, pushing edge midpoints out to the sphere. The vertex count is
// 10·4^n + 2 (12, 42, 162, ...).
func Icosphere(subdivisions int, radius float64) []r3.Vec {
	t := (1 + math.Sqrt(5)) / 2
	base := []r3.Vec{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	vertices := make([]r3.Vec, len(base))
	for i, v := range base {
		vertices[i] = r3.Scale(radius, r3.Unit(v))
	}

	faces := icosahedronFaces[:]
	for s := 0; s < subdivisions; s++ {
		type edge struct{ a, b int }
		midCache := make(map[edge]int)
		mid := func(a, b int) int {
			if a > b {
				a, b = b, a
			}
			if i, ok := midCache[edge{a, b}]; ok {
				return i
			}
			m := r3.Scale(0.5, r3.Add(vertices[a], vertices[b]))
			vertices = append(vertices, r3.Scale(radius, r3.Unit(m)))
			midCache[edge{a, b}] = len(vertices) - 1
			return len(vertices) - 1
		}

		next := make([][3]int, 0, len(faces)*4)
		for _, f := range faces {
			a := mid(f[0], f[1])
			b := mid(f[1], f[2])
			c := mid(f[2], f[0])
			next = append(next,
				[3]int{f[0], a, c},
				[3]int{f[1], b, a},
				[3]int{f[2], c, b},
				[3]int{a, b, c},
			)
		}
		faces = next
	}
	return vertices
}
