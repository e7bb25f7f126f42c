package suppliers

// Supplier represents a supplier entity. Suppliers are immutable once
// created; there is no update or delete operation.
type Supplier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}
