package entities

type User struct {
	ID           string `gorm:"type:varchar(450);primaryKey" json:"id"`
	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"size:256;uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Address      string `gorm:"size:100" json:"address"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Status       string `gorm:"size:100" json:"status"` // Active, Locked
	Role         string `gorm:"size:20" json:"role"`    // user, shipper, admin
	Timestamp
}
