package model

import "time"

// Category is a user-defined recipe grouping. DisplayOrder is only a sort key;
// gaps are left behind when categories are deleted.
type Category struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id" bson:"_id"`
	OwnerID      string    `gorm:"type:varchar(64);not null;index" json:"ownerId" bson:"ownerId"`
	Name         string    `gorm:"size:255;not null" json:"name" bson:"name"`
	Color        string    `gorm:"size:32" json:"color,omitempty" bson:"color,omitempty"`
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder" bson:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

// Key returns the owner and id the category is stored under
func (c Category) Key() (ownerID, id string) {
	return c.OwnerID, c.ID
}

// CategoryResponse is a category as returned by the API, with the number of
// the owner's recipes filed under it
type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
	RecipeCount  int    `json:"recipeCount"`
}

// CategoryCreateRequest is the body of POST /categories
type CategoryCreateRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// CategoryUpdateRequest is the body of PUT /categories/:id
type CategoryUpdateRequest struct {
	Name         string `json:"name" binding:"required"`
	Color        string `json:"color"`
	DisplayOrder int    `json:"displayOrder"`
}
