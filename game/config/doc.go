// Package config loads the initial board layouts games start from.
//
// Layouts are JSON files in a layout directory:
//
//	{
//	  "name": "reference",
//	  "description": "Standard 10x4 opening position",
//	  "rows": ["###.pM..##", "#...mP...#", "#.p.mP.P.#", "##..pM.###"]
//	}
//
// Symbols: '.' empty, '#' void, 'P'/'M' light pusher/mover, 'p'/'m' dark
// pusher/mover, 'A'/'a' anchored light/dark pusher.
//
// The built-in reference layout is always available under the name
// "reference" unless a reference.json file overrides it. Loaded layouts are
// cached; RefreshCache forces a reload from disk.
package config
