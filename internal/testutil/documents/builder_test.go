package documents

import (
	"testing"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	docs := NewBuilder(t).
		WithFixture(FixtureVoyageCharter).
		WithDocument("rider", "Berth to be always afloat.").
		Without(model.RoleNegotiatedClauses).
		Build()

	assert.Equal(t, []string{model.RoleBaseCP, model.RoleFixtureRecap, "rider"}, docs.Roles())
	assert.Equal(t, RecapText, docs[model.RoleFixtureRecap])
}

func TestBuilder_BuildCopies(t *testing.T) {
	b := NewBuilder(t).WithDocument(model.RoleBaseCP, "text")
	docs := b.Build()
	docs[model.RoleBaseCP] = "changed"

	assert.Equal(t, "text", b.Build()[model.RoleBaseCP])
}

func TestFixture_DocumentsCopies(t *testing.T) {
	docs := FixtureRecapOnly.Documents()
	docs[model.RoleFixtureRecap] = "changed"

	assert.Equal(t, RecapText, FixtureRecapOnly.Documents()[model.RoleFixtureRecap])
}

func TestFixtureRegistry(t *testing.T) {
	registry := NewFixtureRegistry()

	for _, name := range []string{"VoyageCharter", "RecapOnly", "Blank"} {
		f, ok := registry.Get(name)
		assert.True(t, ok, name)
		assert.NotEmpty(t, f.Description())
	}

	_, ok := registry.Get("Missing")
	assert.False(t, ok)
	assert.True(t, FixtureBlank.Documents().IsEmpty())
}
