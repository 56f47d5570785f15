package config

import (
	"os"

	yaml "gopkg.in/yaml.v2"
)

// DebugDump is an optional diagnostic snapshot of one pipeline run,
// written via --dump-debug.
type DebugDump struct {
	CellCount       int      `yaml:"cell_count"`
	AdjacencyEdges  int      `yaml:"adjacency_edges"`
	TraversalOrder  []int    `yaml:"traversal_order"`
	SweepPointCount []int    `yaml:"sweep_point_count"`
	WaypointCount   int      `yaml:"waypoint_count"`
	Warnings        []string `yaml:"warnings,omitempty"`
}

// WriteDebugDump serializes d to path as YAML.
func WriteDebugDump(path string, d DebugDump) error {
	buf, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}
