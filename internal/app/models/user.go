package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type TimeModel struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type User struct {
	ID        string `bson:"_id,omitempty"`
	Email     string `bson:"email"`
	Password  string `bson:"password"`
	TimeModel `bson:",inline"`
}

func (u *User) SetCreatedAtUpdatedAt() {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
}

func (u *User) SetUpdatedAt() {
	u.UpdatedAt = time.Now()
}

func (u *User) ConvertToBsonM() bson.M {
	return bson.M{
		"email":     u.Email,
		"password":  u.Password,
		"updatedAt": u.UpdatedAt,
	}
}
