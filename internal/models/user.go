package models

// User owns files by id only; deleting a user leaves their files in place.
type User struct {
	BaseModel
	Username     string `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"type:text;not null"`
}
