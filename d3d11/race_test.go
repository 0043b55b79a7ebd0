//go:build race

package d3d11

const raceEnabled = true
