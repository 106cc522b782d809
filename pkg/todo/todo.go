package todo

// TodoItem is one item on the todo list. The id doubles as the id of the
// schedule entry derived from it.
type TodoItem struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}
