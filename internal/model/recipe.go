package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Document is a loosely-typed JSON object as decoded by encoding/json:
// nested values are map[string]any, []any, string, float64, bool or nil.
type Document map[string]any

// Value implements the driver.Valuer interface
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (d *Document) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*d = Document{}
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for Document", value)
	}

	m := map[string]any{}
	if err := json.Unmarshal(bytes, &m); err != nil {
		return err
	}
	*d = m
	return nil
}

// GormDBDataType stores documents as jsonb on postgres and text elsewhere
func (Document) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

// MarshalBSONValue stores the document as an embedded BSON document
func (d Document) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if d == nil {
		d = Document{}
	}
	return bson.MarshalValue(map[string]any(d))
}

// UnmarshalBSONValue goes through relaxed extended JSON so that nested values
// come back as the same plain Go types encoding/json would produce.
func (d *Document) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bson.TypeNull || t == bson.TypeUndefined {
		*d = Document{}
		return nil
	}
	if t != bson.TypeEmbeddedDocument {
		return fmt.Errorf("cannot decode BSON %s into Document", t)
	}

	ext, err := bson.MarshalExtJSON(bson.Raw(data), false, false)
	if err != nil {
		return err
	}
	m := map[string]any{}
	if err := json.Unmarshal(ext, &m); err != nil {
		return err
	}
	*d = m
	return nil
}

// StringList is an ordered list of strings kept in a JSON column
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}

	return json.Unmarshal(bytes, a)
}

// GormDBDataType stores lists as jsonb on postgres and text elsewhere
func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

// Contains reports whether id is in the list
func (a StringList) Contains(id string) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with every occurrence of id removed
func (a StringList) Without(id string) StringList {
	out := make(StringList, 0, len(a))
	for _, v := range a {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func jsonColumnType(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

// Recipe is an imported recipe. RawContent holds the schema.org Recipe object
// exactly as it was found on the source page.
type Recipe struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id" bson:"_id"`
	OwnerID     string     `gorm:"type:varchar(64);not null;index" json:"ownerId" bson:"ownerId"`
	RawContent  Document   `gorm:"not null" json:"rawContent" bson:"rawContent"`
	CategoryIDs StringList `json:"categoryIds" bson:"categoryIds"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// Key returns the owner and id the recipe is stored under
func (r Recipe) Key() (ownerID, id string) {
	return r.OwnerID, r.ID
}
