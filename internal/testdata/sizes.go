package testdata

type Size struct {
	Name string
	N    int
}

var Sizes []Size = []Size{
	{"0B", 0},
	{"1B", 1},
	{"64B", 64},
	{"1KiB", 1024},
	{"8KiB", 8 * 1024},
	{"8KiB+1B", 8*1024 + 1},
	{"64KiB", 64 * 1024},
	{"1MiB", 1024 * 1024},
}
