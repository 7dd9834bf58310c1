package models

// ContactRequest is a contact-form submission forwarded to the support inbox.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}
