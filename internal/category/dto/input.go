package dto

type CategoryPayload struct {
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
}

type UpdateCategoryInput struct {
	ID int64 `json:"id"`
	*CategoryPayload
}
