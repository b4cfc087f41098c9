package models

import "time"

// User is an account visible on the admin users page. Password hashes never
// leave the backend; login and signup flows live outside this service.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	DisplayName  string    `bson:"displayName" json:"displayName"`
	Phone        string    `bson:"phone" json:"phone"`
	Address      string    `bson:"address" json:"address"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateUser is the admin create payload.
type CreateUser struct {
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Role        string `json:"role"`
	Password    string `json:"password" binding:"required"`
}
