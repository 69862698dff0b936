// Package modelio reads source models from YAML.
//
// A model file lists entities per section. Entities refer to each other by
// name; every reference is resolved after all entities exist, so sections
// may appear in any order and surfaces may name each other as counterparts.
//
//	zones:
//	  - name: Zone 1
//	spaces:
//	  - name: Space 1
//	    zone: Zone 1
//	    floor_area: 100
package modelio
