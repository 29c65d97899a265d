package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeVendor   UserType = "vendor"
	UserTypeStaff    UserType = "office_staff"
	UserTypeAdmin    UserType = "admin"
)

// User is the identity collaborator. The booking core only needs an id, a
// role, and a push target; account management happens elsewhere.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone" bson:"phone"`
	UserType  UserType           `json:"user_type" bson:"user_type"`
	FCMToken  string             `json:"fcm_token,omitempty" bson:"fcm_token,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
