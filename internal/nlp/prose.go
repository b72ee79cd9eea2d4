package nlp

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProsePipeline analyzes text with a prose language model. Statistical entities
// from the model are supplemented by RecognizeEntities.
type ProsePipeline struct {
	model *prose.Model
}

// NewProsePipeline creates a pipeline backed by model, or by prose's bundled
// English model when model is nil.
func NewProsePipeline(model *prose.Model) *ProsePipeline {
	return &ProsePipeline{model: model}
}

// Available always reports true; a ProsePipeline only exists once a model is held.
func (p *ProsePipeline) Available() bool {
	return true
}

// Process tokenizes, segments and tags text.
func (p *ProsePipeline) Process(ctx context.Context, text string) (*Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var opts []prose.DocOpt
	if p.model != nil {
		opts = append(opts, prose.UsingModel(p.model))
	}

	analyzed, err := prose.NewDocument(text, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze document: %w", err)
	}

	doc := &Doc{
		Text:   text,
		Tokens: Tokenize(text),
	}

	for _, sent := range analyzed.Sentences() {
		doc.Sentences = append(doc.Sentences, sent.Text)
	}

	for _, ent := range analyzed.Entities() {
		doc.Entities = append(doc.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	doc.Entities = append(doc.Entities, RecognizeEntities(text)...)

	return doc, nil
}
