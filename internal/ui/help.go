package ui

// Help lists the GUI controls, one binding per line.
func Help() []string {
	return append([]string(nil), helpLines...)
}

var helpLines = []string{
	"mouse       steer (and pitch in alt mode)",
	"wheel       speed (alt mode)",
	"a/+  d/-    accelerate / decelerate",
	"up/down     climb / descend",
	"z, space    fire (or left click)",
	"r           respawn in a new world",
	"F1          alternate controls",
	"F2          alternate weather",
	"w b s m t   wireframe, fog, grid, mountains, shading",
	"p  n        pause, single tick",
	"1  2        help, heightmaps",
	"q, esc      quit",
}
