package dto

type CreateCategoryInput struct {
	ParentID    *string
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	SortOrder   int
}

type UpdateCategoryInput struct {
	ID          string
	ParentID    *string
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	SortOrder   int
	IsActive    bool
}
