package dto

type OrderLineInput struct {
	ProductID string
	Color     string
	Size      string
	Quantity  int
}

type CreateOrderInput struct {
	Email      string
	CustomerID *string
	Lines      []OrderLineInput
}

type OrderFilters struct {
	Status   string
	Email    string
	Page     int
	PageSize int
}
