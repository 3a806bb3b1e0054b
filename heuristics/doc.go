// Package heuristics holds every tunable of the extraction pipeline as plain
// data that can be read from YAML.
//
// A Config starts from [Default]. [Parse] and [Load] decode YAML on top of
// the defaults, so a file only needs the settings it changes:
//
//	units: [pz, kg, saco, bolsa]
//	lookahead: 3
//	labels:
//	  cantidad: '\b(cant(idad)?|qty)\b'
//
// Maps are merged key by key; lists replace the default list. The builder
// methods compile the data into the configuration of each component and
// report invalid patterns.
package heuristics
