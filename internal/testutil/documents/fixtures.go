// Package documents provides charter party document fixtures for tests. It
// offers a fluent API for assembling document sets and seeding them as
// contract records.
//
// Example usage:
//
//	docs := documents.NewBuilder(t).
//		WithFixture(documents.FixtureVoyageCharter).
//		WithDocument("rider", "Berth to be always afloat.").
//		Build()
package documents

import "github.com/Veraticus/smartcp/internal/model"

// Fixture represents a predefined document set for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Description returns what the fixture exercises.
	Description() string

	// Documents returns a fresh copy of the fixture's documents.
	Documents() model.DocumentSet
}

type fixture struct {
	docs        model.DocumentSet
	name        string
	description string
}

func (f *fixture) Name() string        { return f.name }
func (f *fixture) Description() string { return f.description }

func (f *fixture) Documents() model.DocumentSet {
	out := make(model.DocumentSet, len(f.docs))
	for role, text := range f.docs {
		out[role] = text
	}
	return out
}

// Document texts shared by the fixtures.
const (
	RecapText = `FIXTURE RECAP
MV OCEAN STAR / VALE INTERNATIONAL
Cargo: 50000 MT iron ore in bulk, 10 percent more or less in owners option.
Loading at Port of Tubarao, one safe berth.
Laytime 72 hours total for loading and discharging.`

	BaseCPText = `GENCON 1994
Freight shall be payable within 5 days of completion of loading.
Demurrage at the rate of USD 25000 per day or pro rata.
Discharging at the Port of Rotterdam, terminal to be nominated by charterers.
Arbitration in London under English law.`

	NegotiatedText = `RIDER CLAUSES
Force majeure shall include strikes and lockouts.
Governing law of this charter is English law.`
)

// Predefined fixtures for common test scenarios.
var (
	// FixtureVoyageCharter is a complete fixture covering every essential term.
	FixtureVoyageCharter Fixture = &fixture{
		name:        "VoyageCharter",
		description: "Recap, base charter party and rider covering every essential term",
		docs: model.DocumentSet{
			model.RoleFixtureRecap:      RecapText,
			model.RoleBaseCP:            BaseCPText,
			model.RoleNegotiatedClauses: NegotiatedText,
		},
	}

	// FixtureRecapOnly has a recap but no charter party.
	FixtureRecapOnly Fixture = &fixture{
		name:        "RecapOnly",
		description: "Recap without payment terms",
		docs: model.DocumentSet{
			model.RoleFixtureRecap: RecapText,
		},
	}

	// FixtureBlank has roles present but no extractable content.
	FixtureBlank Fixture = &fixture{
		name:        "Blank",
		description: "Roles present with whitespace only",
		docs: model.DocumentSet{
			model.RoleFixtureRecap: "  ",
			model.RoleBaseCP:       "\n\t",
		},
	}
)

// FixtureRegistry provides access to all available fixtures.
type FixtureRegistry struct {
	fixtures map[string]Fixture
}

// NewFixtureRegistry creates a registry with all predefined fixtures.
func NewFixtureRegistry() *FixtureRegistry {
	registry := &FixtureRegistry{
		fixtures: make(map[string]Fixture),
	}

	registry.Register(FixtureVoyageCharter)
	registry.Register(FixtureRecapOnly)
	registry.Register(FixtureBlank)

	return registry
}

// Register adds a fixture to the registry.
func (r *FixtureRegistry) Register(f Fixture) {
	r.fixtures[f.Name()] = f
}

// Get retrieves a fixture by name.
func (r *FixtureRegistry) Get(name string) (Fixture, bool) {
	f, ok := r.fixtures[name]
	return f, ok
}
