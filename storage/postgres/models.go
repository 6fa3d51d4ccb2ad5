package postgres

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// documentRow is one ingested document, keyed by its docID.
type documentRow struct {
	DocID           string `gorm:"column:doc_id;primaryKey"`
	Title           string `gorm:"type:text"`
	Language        string `gorm:"type:text"`
	Source          string `gorm:"type:text"`
	File            string `gorm:"type:text"`
	Author          string `gorm:"type:text"`
	CreatedAt       time.Time
	KnowledgeTags   datatypes.JSON `gorm:"column:knowledge_tags"`
	RoleRestriction datatypes.JSON `gorm:"column:role_restriction"`
	Lineage         datatypes.JSON
}

func (documentRow) TableName() string {
	return "documents"
}

// chunkRow is one chunk of a document's cleaned transcript.
type chunkRow struct {
	ChunkID       string `gorm:"column:chunk_id;primaryKey"`
	DocID         string `gorm:"column:doc_id;index"`
	Strategy      string `gorm:"type:text"`
	TokenEstimate int
	CreatedAt     time.Time
	Text          string `gorm:"type:text"`
}

func (chunkRow) TableName() string {
	return "chunks"
}

// vectorRefRow records where a chunk's embedding lives.
type vectorRefRow struct {
	ChunkID    string `gorm:"column:chunk_id;primaryKey"`
	Collection string `gorm:"type:text"`
	VectorDim  int
	InsertedAt time.Time
}

func (vectorRefRow) TableName() string {
	return "vdb_refs"
}

// tripleRow is one append-only audit record of an observed triple.
// Confidence is stored as an integer percentage.
type tripleRow struct {
	TripleID   string `gorm:"column:triple_id;primaryKey"`
	Subject    string `gorm:"column:s;type:text"`
	Predicate  string `gorm:"column:p;type:text"`
	Object     string `gorm:"column:o;type:text"`
	DocID      string `gorm:"column:doc_id;index"`
	ChunkID    string `gorm:"column:chunk_id"`
	Confidence int
	CreatedAt  time.Time
}

func (tripleRow) TableName() string {
	return "gdb_triples"
}

// asJSON marshals a value into a JSON column. Marshaling string slices
// and string maps cannot fail; a nil value becomes JSON null.
func asJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}
