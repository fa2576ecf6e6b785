package common

import (
	"context"

	"github.com/pgddui/pgddui/internal/catalog"
	"github.com/pgddui/pgddui/internal/dictionary"
)

// LoadTrees fetches schemas, tables, views and columns once and builds both
// the table tree and the view tree from them.
func LoadTrees(ctx context.Context, reader *catalog.Reader, showSystem bool) (dictionary.Tree, dictionary.Tree, error) {
	schemas, err := reader.Schemas(ctx, showSystem)
	if err != nil {
		return nil, nil, err
	}
	tables, err := reader.Tables(ctx, showSystem)
	if err != nil {
		return nil, nil, err
	}
	views, err := reader.Views(ctx, showSystem)
	if err != nil {
		return nil, nil, err
	}
	columns, err := reader.Columns(ctx, showSystem)
	if err != nil {
		return nil, nil, err
	}
	return dictionary.BuildTree(schemas, tables, columns), dictionary.BuildViewTree(schemas, views, columns), nil
}
