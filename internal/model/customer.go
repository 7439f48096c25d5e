package model

type Customer struct {
	BaseModel
	Email        string  `db:"email" json:"email"`
	FirstName    string  `db:"first_name" json:"first_name"`
	LastName     string  `db:"last_name" json:"last_name"`
	Phone        *string `db:"phone" json:"phone"`
	NotifyLaunch bool    `db:"notify_launch" json:"notify_launch"`
}
