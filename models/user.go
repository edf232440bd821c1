package models

import "time"

// User is a customer or, with Role "admin", an administrator.
type User struct {
	ID            string    `bson:"id" json:"id"`
	FullName      string    `bson:"fullName" json:"fullName"`
	Email         string    `bson:"email" json:"email"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address       string    `bson:"address,omitempty" json:"address,omitempty"`
	DateOfBirth   string    `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	PasswordHash  string    `bson:"passwordHash" json:"-"`
	Role          string    `bson:"role" json:"role"`
	IsAdmin       bool      `bson:"isAdmin" json:"isAdmin"`
	EmailVerified bool      `bson:"emailVerified" json:"emailVerified"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

type AdminRegisterRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	RegistrationKey string `json:"registrationKey" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// ProfileUpdate patches the editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	FullName    *string `json:"fullName"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"dateOfBirth"`
}

// AuthResponse is returned by every successful login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
