package documents

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/service"
)

// Builder provides a fluent interface for constructing test document sets.
type Builder interface {
	// WithDocument sets the text of a single role.
	WithDocument(role, text string) Builder

	// WithFixture adds every document of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Without removes a role.
	Without(role string) Builder

	// Build returns the assembled document set.
	Build() model.DocumentSet

	// Seed stores the documents as a new draft contract named name.
	Seed(ctx context.Context, storage service.Storage, name string) (*model.Contract, error)
}

type documentBuilder struct {
	t    *testing.T
	docs model.DocumentSet
}

// NewBuilder creates a new document builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &documentBuilder{
		t:    t,
		docs: make(model.DocumentSet),
	}
}

func (b *documentBuilder) WithDocument(role, text string) Builder {
	b.docs[role] = text
	return b
}

func (b *documentBuilder) WithFixture(fixture Fixture) Builder {
	for role, text := range fixture.Documents() {
		b.docs[role] = text
	}
	return b
}

func (b *documentBuilder) Without(role string) Builder {
	delete(b.docs, role)
	return b
}

func (b *documentBuilder) Build() model.DocumentSet {
	out := make(model.DocumentSet, len(b.docs))
	for role, text := range b.docs {
		out[role] = text
	}
	return out
}

func (b *documentBuilder) Seed(ctx context.Context, storage service.Storage, name string) (*model.Contract, error) {
	b.t.Helper()

	contract := &model.Contract{
		Name:      name,
		Documents: b.Build(),
		Status:    model.StatusDraft,
	}
	if err := storage.CreateContract(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to seed contract %q: %w", name, err)
	}
	return contract, nil
}
