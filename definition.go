package automaton

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is a raw automaton description, as read from a file or built by
// hand. It carries no guarantees; NewNFA validates it.
type Definition struct {
	States      []string `yaml:"states"`
	Alphabet    []Symbol `yaml:"alphabet"`
	Start       string   `yaml:"start"`
	Final       []string `yaml:"final"`
	Transitions []Edge   `yaml:"transitions"`
}

// Edge is one transition group: From consumes Input (Epsilon for the empty
// input) and may end up in any state of To.
type Edge struct {
	From  string   `yaml:"from"`
	Input Symbol   `yaml:"input"`
	To    []string `yaml:"to"`
}

// ParseYAML decodes a YAML definition and validates it into an NFA.
func ParseYAML(data []byte) (*NFA, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return NewNFA(def)
}

// LoadDefinition reads an automaton definition file, dispatching on the
// extension: .yaml/.yml or .csv.
func LoadDefinition(path string) (*NFA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".csv":
		return ParseCSV(strings.NewReader(string(data)))
	default:
		return nil, fmt.Errorf("%s: unsupported definition format %q", path, ext)
	}
}

// ParseCSV reads a transition table in the spreadsheet layout: a header row
// with State, Input and Next_State columns, optionally Start_State and
// Final_State columns. State cells may carry a "→" start marker and a "*"
// final marker; "φ" or an empty Next_State cell means no transition, "ε" in
// the Input column is the empty input, and a Next_State cell may list several
// targets separated by commas.
func ParseCSV(r io.Reader) (*NFA, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv read: missing header row")
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"State", "Input", "Next_State"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv read: missing column %q", required)
		}
	}

	var def Definition
	seenStates := make(map[string]struct{})
	seenSymbols := make(map[Symbol]struct{})
	edgeIndex := make(map[[2]string]int)

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, row := range records[1:] {
		state, isStart, isFinal := cleanLabel(cell(row, "State"))
		if state == "" {
			continue
		}
		if _, ok := seenStates[state]; !ok {
			seenStates[state] = struct{}{}
			def.States = append(def.States, state)
		}
		if isStart && def.Start == "" {
			def.Start = state
		}
		if isFinal && !slices.Contains(def.Final, state) {
			def.Final = append(def.Final, state)
		}

		if start, _, _ := cleanLabel(cell(row, "Start_State")); start != "" {
			def.Start = start
		}
		if final, _, _ := cleanLabel(cell(row, "Final_State")); final != "" && !slices.Contains(def.Final, final) {
			def.Final = append(def.Final, final)
		}

		input := cell(row, "Input")
		if input == "" {
			continue
		}
		if input != Epsilon {
			if _, ok := seenSymbols[input]; !ok {
				seenSymbols[input] = struct{}{}
				def.Alphabet = append(def.Alphabet, input)
			}
		}

		for _, raw := range strings.Split(cell(row, "Next_State"), ",") {
			target, _, _ := cleanLabel(raw)
			if target == "" || target == "φ" {
				continue
			}
			key := [2]string{state, input}
			i, ok := edgeIndex[key]
			if !ok {
				i = len(def.Transitions)
				edgeIndex[key] = i
				def.Transitions = append(def.Transitions, Edge{From: state, Input: input})
			}
			if !slices.Contains(def.Transitions[i].To, target) {
				def.Transitions[i].To = append(def.Transitions[i].To, target)
			}
		}
	}

	if def.Start == "" && len(def.States) > 0 {
		def.Start = def.States[0]
	}

	return NewNFA(def)
}

// cleanLabel strips the "→" start and "*" final markers off a state cell.
func cleanLabel(s string) (label string, start, final bool) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "→"); ok {
		s, start = rest, true
	}
	if rest, ok := strings.CutSuffix(s, "*"); ok {
		s, final = rest, true
	}
	return strings.TrimSpace(s), start, final
}
