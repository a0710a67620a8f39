package domain

import (
	"fmt"
	"strconv"

	"github.com/cristianoliveira/listkit/internal/listview"
)

// Column keys shared by every collection.
const (
	ColumnID        = "id"
	ColumnName      = "name"
	ColumnStatus    = "status"
	ColumnAmount    = "amount"
	ColumnQuantity  = "quantity"
	ColumnRef       = "ref"
	ColumnCreatedAt = "created_at"
)

// Columns returns the column specs for a collection's listing screen.
func Columns(c Collection) []listview.ColumnSpec {
	amount, quantity, ref := "Amount", "Quantity", "Ref"
	switch c {
	case CollectionProducts:
		amount, quantity, ref = "Price", "Stock", "Category"
	case CollectionOrders:
		amount, quantity, ref = "Total", "Items", "Product"
	case CollectionCarts:
		amount, quantity, ref = "Subtotal", "Items", "Customer"
	case CollectionComments:
		amount, quantity, ref = "Score", "Replies", "Post"
	case CollectionPromotions:
		amount, quantity, ref = "Discount", "Uses", "Product"
	case CollectionMedia:
		amount, quantity, ref = "Size (KB)", "Width", "Owner"
	}
	return []listview.ColumnSpec{
		{Key: ColumnID, Label: "ID", Required: true},
		{Key: ColumnName, Label: "Name", Required: true},
		{Key: ColumnStatus, Label: "Status"},
		{Key: ColumnAmount, Label: amount},
		{Key: ColumnQuantity, Label: quantity},
		{Key: ColumnRef, Label: ref},
		{Key: ColumnCreatedAt, Label: "Created"},
	}
}

// Value renders one cell of r.
func Value(r Record, key string) string {
	switch key {
	case ColumnID:
		return r.ID
	case ColumnName:
		return r.Name
	case ColumnStatus:
		return r.Status.String()
	case ColumnAmount:
		return fmt.Sprintf("%.2f", r.Amount)
	case ColumnQuantity:
		return strconv.Itoa(r.Quantity)
	case ColumnRef:
		return r.Ref
	case ColumnCreatedAt:
		if r.CreatedAt.IsZero() {
			return ""
		}
		return r.CreatedAt.Local().Format("2006-01-02 15:04")
	default:
		return ""
	}
}
