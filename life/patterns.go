package life

// Pattern is a named 0/1 matrix stamped onto a grid.
type Pattern struct {
	Name  string
	Cells [][]int
}

// Size returns the pattern's row and column extent.
func (p Pattern) Size() (rows, cols int) {
	rows = len(p.Cells)
	for _, line := range p.Cells {
		cols = max(cols, len(line))
	}
	return rows, cols
}

// parse builds a Pattern from rows of '#' and '.'.
func parse(name string, rows ...string) Pattern {
	cells := make([][]int, len(rows))
	for i, row := range rows {
		cells[i] = make([]int, len(row))
		for j, ch := range row {
			if ch == '#' {
				cells[i][j] = 1
			}
		}
	}
	return Pattern{Name: name, Cells: cells}
}

var (
	Glider = parse("Glider",
		".#.",
		"..#",
		"###",
	)
	Blinker = parse("Blinker", "###")
	Block   = parse("Block",
		"##",
		"##",
	)
	Beehive = parse("Beehive",
		".##.",
		"#..#",
		".##.",
	)
	Loaf = parse("Loaf",
		".##.",
		"#..#",
		".#.#",
		"..#.",
	)
	Pulsar = parse("Pulsar",
		"..###...###..",
		".............",
		"#....#.#....#",
		"#....#.#....#",
		"#....#.#....#",
		"..###...###..",
		".............",
		"..###...###..",
		"#....#.#....#",
		"#....#.#....#",
		"#....#.#....#",
		".............",
		"..###...###..",
	)
	LWSS = parse("Lightweight Spaceship",
		".#..#",
		"#....",
		"#...#",
		"####.",
	)
	Pentadecathlon = parse("Pentadecathlon",
		"..#....#..",
		"##.####.##",
		"..#....#..",
	)
	Loafer = parse("Loafer",
		".##..#.##",
		"#..#..##.",
		".#.#.....",
		"..#......",
		"........#",
		"......###",
		".....#...",
		"......#..",
		".......##",
	)
	GosperGun = parse("Gosper Glider Gun",
		"........................#...........",
		"......................#.#...........",
		"............##......##............##",
		"...........#...#....##............##",
		"##........#.....#...##..............",
		"##........#...#.##....#.#...........",
		"..........#.....#.......#...........",
		"...........#...#....................",
		"............##......................",
	)
)

// Patterns indexes the library by key.
var Patterns = map[string]Pattern{
	"glider":         Glider,
	"blinker":        Blinker,
	"block":          Block,
	"beehive":        Beehive,
	"loaf":           Loaf,
	"pulsar":         Pulsar,
	"lwss":           LWSS,
	"pentadecathlon": Pentadecathlon,
	"loafer":         Loafer,
	"gosperGun":      GosperGun,
}
