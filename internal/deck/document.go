package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DocumentFormat identifies a deck import/export document.
const (
	DocumentFormat  = "hanzi-deck"
	DocumentVersion = 1
)

// ErrUnknownFormat is returned when importing a document of another format.
var ErrUnknownFormat = errors.New("unknown deck document format")

// Document is the self-describing exchange form for one or more decks.
type Document struct {
	Format     string    `json:"format"`
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	Decks      []*Deck   `json:"decks"`
}

// documentSchema constrains imported documents before they are decoded.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"format", "version", "decks"},
	"properties": map[string]any{
		"format":  map[string]any{"type": "string"},
		"version": map[string]any{"type": "integer", "minimum": 1},
		"decks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name"},
				"properties": map[string]any{
					"id":              map[string]any{"type": "string"},
					"name":            map[string]any{"type": "string", "minLength": 1},
					"description":     map[string]any{"type": "string"},
					"new_per_day":     map[string]any{"type": "integer", "minimum": 0},
					"reviews_per_day": map[string]any{"type": "integer", "minimum": 0},
					"active":          map[string]any{"type": "boolean"},
					"cards": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"term"},
							"properties": map[string]any{
								"id":         map[string]any{"type": "string"},
								"term":       map[string]any{"type": "string", "minLength": 1},
								"definition": map[string]any{"type": "string"},
								"tags": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
								"srs": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"ease_factor": map[string]any{"type": "number", "minimum": 1.3},
										"interval":    map[string]any{"type": "integer", "minimum": 0},
										"repetitions": map[string]any{"type": "integer", "minimum": 0},
									},
								},
							},
						},
					},
				},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants plain decoded JSON, not Go literals.
		var def any
		b, err := json.Marshal(documentSchema)
		if err == nil {
			err = json.Unmarshal(b, &def)
		}
		if err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://hanzi-deck.json"
		if compileErr = c.AddResource(url, def); compileErr != nil {
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// Export serializes the named decks, or every deck when ids is empty.
// Unknown ids are skipped.
func (c *Collection) Export(now time.Time, ids ...string) ([]byte, error) {
	doc := Document{
		Format:     DocumentFormat,
		Version:    DocumentVersion,
		ExportedAt: now.UTC(),
	}
	if len(ids) == 0 {
		doc.Decks = c.decks
	} else {
		for _, id := range ids {
			if d := c.Deck(id); d != nil {
				doc.Decks = append(doc.Decks, d)
			}
		}
	}
	if doc.Decks == nil {
		doc.Decks = []*Deck{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportResult reports what an import changed.
type ImportResult struct {
	DecksAdded   int
	DecksMerged  int
	CardsAdded   int
	CardsUpdated int

	// CardsReassigned counts imported cards given a fresh id because their
	// id already belonged to another deck or repeated within the document.
	CardsReassigned int
}

// ParseDocument validates and decodes a deck document.
func ParseDocument(raw []byte) (*Document, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse deck document: %w", err)
	}
	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile deck schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("invalid deck document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode deck document: %w", err)
	}
	if doc.Format != DocumentFormat {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, doc.Format)
	}
	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("%w: version %d is newer than supported %d", ErrUnknownFormat, doc.Version, DocumentVersion)
	}
	return &doc, nil
}

// Import merges a deck document into the collection. A deck whose id already
// exists is merged card by card, imported cards replacing cards with the same
// id; its name and description are updated while the local active flag and
// daily limits are left alone. Other decks are appended. A card id held by a
// different deck, or seen earlier in the document, is replaced with a fresh
// one so every card stays owned by exactly one deck.
func (c *Collection) Import(raw []byte, now time.Time) (ImportResult, error) {
	var res ImportResult
	doc, err := ParseDocument(raw)
	if err != nil {
		return res, err
	}

	placed := make(map[string]bool)
	for _, in := range doc.Decks {
		if in == nil {
			continue
		}
		normalizeDeck(in, now)

		existing := c.Deck(in.ID)
		for _, card := range in.Cards {
			owner, _ := c.FindCard(card.ID)
			if placed[card.ID] || (owner != nil && owner != existing) {
				card.ID = uuid.NewString()
				res.CardsReassigned++
			}
			placed[card.ID] = true
		}

		if existing == nil {
			c.decks = append(c.decks, in)
			res.DecksAdded++
			res.CardsAdded += len(in.Cards)
			continue
		}

		res.DecksMerged++
		existing.Name = in.Name
		existing.Description = in.Description
		for _, card := range in.Cards {
			if i := existing.cardIndex(card.ID); i >= 0 {
				existing.Cards[i] = card
				res.CardsUpdated++
				continue
			}
			existing.Cards = append(existing.Cards, card)
			res.CardsAdded++
		}
	}
	return res, nil
}
