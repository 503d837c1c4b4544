package model

// User is a stored fitness profile. All six business fields are required;
// the id is assigned by the database and never changes.
type User struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	FullName string  `json:"full_name" gorm:"size:100;not null"`
	Age      int     `json:"age" gorm:"not null"`
	Weight   float64 `json:"weight" gorm:"not null"`
	Height   float64 `json:"height" gorm:"not null"`
	Gender   string  `json:"gender" gorm:"size:10;not null"`
	Email    string  `json:"email" gorm:"uniqueIndex;size:50;not null"`
}
