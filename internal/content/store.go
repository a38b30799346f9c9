package content

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Document is a raw content-store document or projection result.
type Document map[string]any

// Field maps one stored path onto a key of the projected result. Expr, when
// set, is the GROQ expression used by backends that resolve references.
type Field struct {
	Name string
	Path string
	Expr string
}

type Query struct {
	Type   string
	Fields []Field
	// OrderBy is a stored field sorted descending. Empty means creation time.
	OrderBy string
}

// Store is the content backend: list by type with projection, and
// create/patch/delete by identifier.
type Store interface {
	Fetch(ctx context.Context, q Query) ([]Document, error)
	Create(ctx context.Context, docType string, doc Document) (string, error)
	Patch(ctx context.Context, docType, id string, set Document) error
	Delete(ctx context.Context, docType, id string) error
}

// Seeder creates a document under a caller-chosen id unless it already exists.
type Seeder interface {
	CreateIfMissing(ctx context.Context, docType, id string, doc Document) error
}

var VideoQuery = Query{
	Type: TypeVideo,
	Fields: []Field{
		{Name: "id", Path: "_id"},
		{Name: "title", Path: "title"},
		{Name: "description", Path: "description"},
		{Name: "youtubeId", Path: "youtubeId"},
		{Name: "category", Path: "category"},
		{Name: "thumbnail", Path: "thumbnailUrl", Expr: "coalesce(thumbnail.asset->url, thumbnailUrl)"},
	},
}

var ClientQuery = Query{
	Type: TypeClient,
	Fields: []Field{
		{Name: "id", Path: "_id"},
		{Name: "name", Path: "name"},
		{Name: "description", Path: "description"},
		{Name: "logo", Path: "logoUrl", Expr: "coalesce(logo.asset->url, logoUrl)"},
	},
}

var CertificateQuery = Query{
	Type: TypeCertificate,
	Fields: []Field{
		{Name: "id", Path: "_id"},
		{Name: "title", Path: "title"},
		{Name: "description", Path: "description"},
		{Name: "issuer", Path: "issuer"},
		{Name: "issuedAt", Path: "issuedAt"},
		{Name: "imageUrl", Path: "imageUrl", Expr: "coalesce(image.asset->url, imageUrl)"},
	},
	OrderBy: "issuedAt",
}

func project(raw map[string]any, fields []Field) Document {
	out := make(Document, len(fields))
	for _, f := range fields {
		if v, ok := raw[f.Path]; ok && v != nil {
			out[f.Name] = v
		}
	}
	return out
}
