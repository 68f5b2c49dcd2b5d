// internal/domain/models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is metadata for a file attached to a project. The bytes live
// in the storage provider under FilePath; this record only describes them.
type Document struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	ProjectID   primitive.ObjectID `bson:"project_id" json:"project_id"`
	FileName    string             `bson:"file_name" json:"file_name"`
	FilePath    string             `bson:"file_path" json:"-"`
	Size        int64              `bson:"size" json:"size"`
	ContentType string             `bson:"content_type" json:"content_type"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// HasFile reports whether the document points at stored bytes.
func (d Document) HasFile() bool { return d.FilePath != "" }
