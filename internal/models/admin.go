package models

import "time"

// Account — запись администратора из adminUsers.json.
// В поле Password лежит bcrypt-хэш, не сам пароль.
type Account struct {
	Username  string     `json:"username"`
	Password  string     `json:"password"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
