package models

import (
	"io"
)

// UploadedFile is a client upload on its way to a remote function. Name is
// the client-supplied filename and is forwarded as is.
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type CustomerProfile struct {
	FirstName   string `form:"FirstName" json:"FirstName" binding:"required"`
	LastName    string `form:"LastName" json:"LastName" binding:"required"`
	Email       string `form:"Email" json:"Email" binding:"required,email"`
	PhoneNumber string `form:"PhoneNumber" json:"PhoneNumber"`
}

type OrderReference struct {
	OrderID string `json:"orderId"`
}
