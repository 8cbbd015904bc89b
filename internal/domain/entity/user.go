package entity

import "time"

type User struct {
	ID          int64     `json:"id"`
	UUID        string    `json:"uuid"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	FullName    string    `json:"fullName"`
	Avatar      string    `json:"avatar,omitempty"`
	IsSeller    bool      `json:"isSeller"`
	IsCollector bool      `json:"isCollector"`
	CreatedAt   time.Time `json:"createdAt"`
}
