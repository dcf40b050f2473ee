package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category represents an inventory category. Items reference exactly one
// category by its ObjectID.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
}

// URL is the canonical location of the category's detail page.
func (c Category) URL() string {
	return "/category/" + c.ID.Hex()
}

// Item represents a stocked product. Price is kept as Decimal128 so the
// stored value is exact; form input is parsed and range-checked with
// shopspring/decimal before conversion. The category reference is not
// enforced by the store, so a dangling CategoryID is possible and display
// code must tolerate it.
type Item struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	CategoryID  primitive.ObjectID   `bson:"category" json:"category"`
	Price       primitive.Decimal128 `bson:"price" json:"price"`
	Stock       int32                `bson:"stock" json:"stock"`
	ImageURL    string               `bson:"imageUrl" json:"imageUrl"`
}

// URL is the canonical location of the item's detail page.
func (i Item) URL() string {
	return "/item/" + i.ID.Hex()
}
