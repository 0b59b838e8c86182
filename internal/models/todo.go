package models

// TodoItem is a single to-do entry. ID is assigned by the store on add and
// stays stable across deletes; positional indices do not.
type TodoItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// CartItem is one cart line: a product id and how many of it.
type CartItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
