package model

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the three fixed platform roles.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleHOD     Role = "HOD"
	RoleAdmin   Role = "ADMIN"
)

// User represents a platform account (student, department head or admin).
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	// Batch is the admission batch a student belongs to (e.g. "2023-2025").
	// Empty for HODs and admins.
	Batch     string    `json:"batch,omitempty"`
	RollNo    string    `json:"roll_no,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=STUDENT HOD"`
	Batch    string `json:"batch" binding:"required_if=Role STUDENT,omitempty,max=20"`
	RollNo   string `json:"roll_no" binding:"omitempty,max=30"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
