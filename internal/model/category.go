package model

type Category struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
}

func (c Category) EntityID() int64 { return c.ID }

type CategoryProducts struct {
	Category Category  `json:"category"`
	Products []Product `json:"products"`
}
