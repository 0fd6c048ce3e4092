package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed chambers/*.json
var chamberFS embed.FS

// ErrUnknownChamber is returned when no chamber with the requested id exists.
var ErrUnknownChamber = errors.New("unknown chamber")

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// chamberFile is the on-disk shape of a single chamber's content.
type chamberFile struct {
	ID      string   `json:"id"`
	Puzzles []Puzzle `json:"puzzles"`
}

// Embedded is a Provider backed by JSON files compiled into the binary.
// Chamber definitions are parsed eagerly; puzzle content is parsed and
// validated on first request and cached for the life of the process.
type Embedded struct {
	defs []ChamberDef

	mu     sync.Mutex
	loaded map[string][]Puzzle
}

var _ Provider = (*Embedded)(nil)

// NewEmbedded parses the chamber index and returns the catalog provider.
func NewEmbedded() (*Embedded, error) {
	raw, err := chamberFS.ReadFile("chambers/index.json")
	if err != nil {
		return nil, fmt.Errorf("read chamber index: %w", err)
	}

	var defs []ChamberDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parse chamber index: %w", err)
	}
	if len(defs) == 0 {
		return nil, errors.New("chamber index is empty")
	}

	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if seen[d.ID] {
			return nil, fmt.Errorf("duplicate chamber id %q in index", d.ID)
		}
		seen[d.ID] = true
	}

	return &Embedded{
		defs:   defs,
		loaded: make(map[string][]Puzzle),
	}, nil
}

// Chambers returns the chamber definitions in index order.
func (e *Embedded) Chambers() []ChamberDef {
	out := make([]ChamberDef, len(e.defs))
	copy(out, e.defs)
	return out
}

// Puzzles returns the puzzles for a chamber, loading and validating the
// backing file on first call. The returned order is the authored order.
func (e *Embedded) Puzzles(chamberID string) ([]Puzzle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if puzzles, ok := e.loaded[chamberID]; ok {
		return puzzles, nil
	}

	def, ok := e.def(chamberID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChamber, chamberID)
	}

	raw, err := chamberFS.ReadFile("chambers/" + chamberID + ".json")
	if err != nil {
		return nil, fmt.Errorf("read chamber %s: %w", chamberID, err)
	}

	puzzles, err := parseChamberFile(raw, def)
	if err != nil {
		return nil, fmt.Errorf("chamber %s: %w", chamberID, err)
	}

	e.loaded[chamberID] = puzzles
	return puzzles, nil
}

func (e *Embedded) def(id string) (ChamberDef, bool) {
	for _, d := range e.defs {
		if d.ID == id {
			return d, true
		}
	}
	return ChamberDef{}, false
}

// parseChamberFile validates raw against the chamber schema, decodes it,
// and applies the structural checks the schema cannot express.
func parseChamberFile(raw []byte, def ChamberDef) ([]Puzzle, error) {
	schema, err := chamberSchema()
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var file chamberFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if file.ID != def.ID {
		return nil, fmt.Errorf("file id %q does not match index id %q", file.ID, def.ID)
	}
	if len(file.Puzzles) != def.PuzzleCount {
		return nil, fmt.Errorf("index declares %d puzzles, file has %d", def.PuzzleCount, len(file.Puzzles))
	}

	ids := make(map[string]bool, len(file.Puzzles))
	for i, p := range file.Puzzles {
		if ids[p.ID] {
			return nil, fmt.Errorf("duplicate puzzle id %q", p.ID)
		}
		ids[p.ID] = true
		if p.AnswerKind == AnswerSingleChoice && (p.CorrectChoice < 0 || p.CorrectChoice >= len(p.Choices)) {
			return nil, fmt.Errorf("puzzle %d (%s): correctChoice %d out of range", i, p.ID, p.CorrectChoice)
		}
	}

	return file.Puzzles, nil
}

// chamberSchema compiles the embedded JSON schema once.
func chamberSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := chamberFS.ReadFile("chambers/chamber.schema.json")
		if err != nil {
			schemaErr = fmt.Errorf("read chamber schema: %w", err)
			return
		}

		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			schemaErr = fmt.Errorf("parse chamber schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://chamber.json"
		if err := c.AddResource(schemaURL, parsed); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
