package users

import "time"

// TypeUser is the discriminator indexed by TypeIndex.
const TypeUser = "user"

// Address is a postal address; every part is optional.
type Address struct {
	Street  string `dynamodbav:"street,omitempty" json:"street,omitempty"`
	Suite   string `dynamodbav:"suite,omitempty" json:"suite,omitempty"`
	City    string `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Zipcode string `dynamodbav:"zipcode,omitempty" json:"zipcode,omitempty"`
}

// User is the item stored in the users table, keyed by id.
type User struct {
	ID        string    `dynamodbav:"id" json:"id"`
	Name      string    `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Username  string    `dynamodbav:"username,omitempty" json:"username,omitempty"`
	Email     string    `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Address   *Address  `dynamodbav:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `dynamodbav:"updatedAt" json:"updatedAt"`
	Type      string    `dynamodbav:"type" json:"type"`
}

// CreateInput is the createUser mutation input.
type CreateInput struct {
	Name     string   `json:"name" validate:"required"`
	Username string   `json:"username" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Address  *Address `json:"address,omitempty"`
}
