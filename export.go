package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"sinpath/components"
	"sinpath/generation"
)

// writeMap prints m in the requested format
func writeMap(w io.Writer, m *components.Map, report generation.Report, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return writeText(w, m, report)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, m *components.Map, report generation.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "seed %q\n", m.Seed)
	for _, layer := range m.Layers {
		fmt.Fprintf(&b, "\nlayer %d: %s (%s)\n", layer.Index, layer.Location, layer.BossID)
		for _, path := range layer.Paths() {
			steps := make([]string, len(path))
			for i, n := range path {
				steps[i] = describeNode(n)
			}
			fmt.Fprintf(&b, "  path %d: %s\n", path[0].PathIndex, strings.Join(steps, " > "))
		}
	}
	if v := report.Violations(); len(v) > 0 {
		fmt.Fprintf(&b, "\n%d violation(s):\n", len(v))
		for _, line := range v {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func describeNode(n components.Node) string {
	switch {
	case n.Encounter != nil:
		return fmt.Sprintf("%s x%d (%.2f)", n.Encounter.Kind, n.Encounter.EnemyCount, n.Encounter.RewardMultiplier)
	case n.Event != nil:
		return "event:" + n.Event.Kind
	case n.Boss != nil:
		return "boss:" + n.Boss.BossID
	default:
		return n.Type.String()
	}
}
