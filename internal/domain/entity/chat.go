package entity

// ChatRecord is one question/answer exchange in a user's conversation
// history. Records are append-only and keyed per user by a collision-free
// key derived from the timestamp (see usecase/conversation).
type ChatRecord struct {
	Question  string `json:"question"`
	Response  string `json:"response"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}
