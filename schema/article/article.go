// Package article defines the schema of article documents: the closed set of
// unit kinds an article is made of and the grammar binding them together.
package article

import "github.com/shodgson/article-go/model"

// Schema is the article type registry. Every other package validates units
// against it.
var Schema = mustSchema(&model.SchemaSpec{Kinds: Kinds})

func mustSchema(spec *model.SchemaSpec) *model.Schema {
	s, err := model.NewSchema(spec)
	if err != nil {
		panic(err)
	}
	return s
}
