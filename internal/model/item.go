package model

// Item is a single task record. The JSON shape is the persisted format:
// {"id": "...", "content": "...", "isCompleted": false}.
type Item struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	IsCompleted bool   `json:"isCompleted"`
}
