package model

// Question is a trivia question. Category holds the category id as text and
// is not a foreign key: it may reference a category that does not exist.
type Question struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	Question   string `json:"question" gorm:"type:text;not null"`
	Answer     string `json:"answer" gorm:"type:text;not null"`
	Category   string `json:"category" gorm:"index"`
	Difficulty int    `json:"difficulty"`
}
