package milvus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	milvusClient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/anchoring-ai/docsnippets/components/vectordb"
)

const (
	fieldID        = "id"
	fieldEmbedding = "embedding"
	fieldContent   = "content"
	fieldMeta      = "meta"
)

// Engine adapts a Milvus deployment to the vectordb.Engine interface.
// Metadata is stored in a dynamic JSON field and filters compile to
// Milvus boolean expressions.
type Engine struct {
	db milvusClient.Client
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

func New(db milvusClient.Client, opts ...vectordb.Option) *Engine {
	ret := &Engine{
		db: db,
	}
	vectordb.WithEngine(vectordb.Milvus)(&ret.Options)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret
}

func (e *Engine) CreateCollection(ctx context.Context, name string, dim int64) error {
	idField := entity.NewField().WithName(fieldID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(36).WithIsPrimaryKey(true).WithIsAutoID(false)
	vectorField := entity.NewField().WithName(fieldEmbedding).WithDataType(entity.FieldTypeFloatVector).WithDim(dim)
	contentField := entity.NewField().WithName(fieldContent).WithDataType(entity.FieldTypeVarChar).WithMaxLength(65535)
	metaField := entity.NewField().WithName(fieldMeta).WithDataType(entity.FieldTypeJSON)
	schema := entity.NewSchema().WithName(name).WithAutoID(false).
		WithField(idField).WithField(vectorField).WithField(contentField).WithField(metaField)
	if err := e.db.CreateCollection(ctx, schema, 0); err != nil {
		return err
	}
	idxHnsw, err := entity.NewIndexHNSW(entity.COSINE, 8, 200)
	if err != nil {
		return err
	}
	if err := e.db.CreateIndex(ctx, name, fieldEmbedding, idxHnsw, true, milvusClient.WithIndexName("embedding_idx")); err != nil {
		return err
	}
	return e.db.LoadCollection(ctx, name, false)
}

func (e *Engine) ensureCollection(ctx context.Context, name string, dim int64) error {
	exists, err := e.db.HasCollection(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return e.CreateCollection(ctx, name, dim)
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	if len(records) == 0 {
		return nil
	}
	dim := int64(len(records[0].Embedding.Embedding))
	if err := e.ensureCollection(ctx, collectionName, dim); err != nil {
		return err
	}
	ids := make([]string, 0, len(records))
	vectors := make([][]float32, 0, len(records))
	contents := make([]string, 0, len(records))
	metas := make([][]byte, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			record.ID = record.Embedding.UUID()
		}
		ids = append(ids, record.ID)
		vectors = append(vectors, vectordb.Float32s(record.Embedding.Embedding))
		contents = append(contents, record.Embedding.Object)
		meta := record.Embedding.Meta
		if meta == nil {
			meta = map[string]string{}
		}
		bs, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		metas = append(metas, bs)
	}
	_, err := e.db.Insert(ctx, collectionName, "",
		entity.NewColumnVarChar(fieldID, ids),
		entity.NewColumnFloatVector(fieldEmbedding, int(dim), vectors),
		entity.NewColumnVarChar(fieldContent, contents),
		entity.NewColumnJSONBytes(fieldMeta, metas),
	)
	return err
}

func (e *Engine) Search(ctx context.Context, vector []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	topK := option.TopK
	if topK == 0 {
		topK = e.TopK
	}
	sp, err := entity.NewIndexHNSWSearchParam(64)
	if err != nil {
		return nil, err
	}
	results, err := e.db.Search(ctx, option.Collection, nil, filterExpr(option.Filter),
		[]string{fieldID, fieldContent, fieldMeta},
		[]entity.Vector{entity.FloatVector(vectordb.Float32s(vector))},
		fieldEmbedding, entity.COSINE, topK, sp)
	if err != nil {
		return nil, err
	}
	var records []vectordb.Record
	for _, result := range results {
		batch, err := resultRecords(result.Fields, result.ResultCount)
		if err != nil {
			return nil, err
		}
		for i := range batch {
			if i < len(result.Scores) {
				batch[i].Score = float64(result.Scores[i])
			}
			if batch[i].Score < e.MinScore {
				continue
			}
			records = append(records, batch[i])
		}
	}
	return records, nil
}

func (e *Engine) Get(ctx context.Context, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	expr := filterExpr(option.Filter)
	if expr == "" {
		// Milvus queries require a predicate; match every row.
		expr = fmt.Sprintf(`%s != ""`, fieldID)
	}
	rs, err := e.db.Query(ctx, option.Collection, nil, expr, []string{fieldID, fieldContent, fieldMeta})
	if err != nil {
		return nil, err
	}
	count := 0
	if len(rs) > 0 {
		count = rs[0].Len()
	}
	return resultRecords(rs, count)
}

// filterExpr compiles a metadata filter into a Milvus boolean
// expression over the JSON meta field.
func filterExpr(f *vectordb.Filter) string {
	if f.IsEmpty() {
		return ""
	}
	clauses := make([]string, 0, len(f.Clauses))
	for _, clause := range f.Clauses {
		conds := make([]string, 0, len(clause))
		for k, v := range clause {
			conds = append(conds, fmt.Sprintf(`%s[%q] == %q`, fieldMeta, k, v))
		}
		clauses = append(clauses, "("+strings.Join(conds, " and ")+")")
	}
	return strings.Join(clauses, " or ")
}

func resultRecords(fields []entity.Column, count int) ([]vectordb.Record, error) {
	var ids, contents []string
	var metas [][]byte
	for _, col := range fields {
		switch col.Name() {
		case fieldID:
			if c, ok := col.(*entity.ColumnVarChar); ok {
				ids = c.Data()
			}
		case fieldContent:
			if c, ok := col.(*entity.ColumnVarChar); ok {
				contents = c.Data()
			}
		case fieldMeta:
			if c, ok := col.(*entity.ColumnJSONBytes); ok {
				metas = c.Data()
			}
		}
	}
	records := make([]vectordb.Record, 0, count)
	for i := 0; i < count; i++ {
		var rec vectordb.Record
		if i < len(ids) {
			rec.ID = ids[i]
		}
		if i < len(contents) {
			rec.Embedding.Object = contents[i]
		}
		if i < len(metas) {
			meta := make(map[string]string)
			if err := json.Unmarshal(metas[i], &meta); err != nil {
				return nil, err
			}
			rec.Embedding.Meta = meta
		}
		records = append(records, rec)
	}
	return records, nil
}
