package dto

import "pageturn/internal/model"

type SellBookRequest struct {
	Title       string `form:"title" json:"title" validate:"required"`
	Author      string `form:"author" json:"author" validate:"required"`
	Condition   string `form:"condition" json:"condition" validate:"required"`
	Category    string `form:"category" json:"category" validate:"required"`
	Price       string `form:"price" json:"price" validate:"required"`
	ISBN        string `form:"isbn" json:"isbn"`
	Description string `form:"description" json:"description"`
}

type ListingResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    *model.Book `json:"data"`
}

type BookResponse struct {
	Success bool        `json:"success"`
	Book    *model.Book `json:"book"`
}

type BooksResponse struct {
	Success bool          `json:"success"`
	Books   []*model.Book `json:"books"`
}

type UpdateBookStatusRequest struct {
	Status model.BookStatus `json:"status" validate:"required,oneof=Approved Rejected"`
}

type CreateOrderRequest struct {
	BookID string `json:"bookId" validate:"required"`
	Amount int64  `json:"amount"`
}

type OrderData struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type CreateOrderResponse struct {
	Success bool       `json:"success"`
	Data    *OrderData `json:"data"`
}

type VerifyPaymentRequest struct {
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
	BookID    string `json:"bookId" validate:"required"`
}

type VerifyPaymentResponse struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"paymentId,omitempty"`
	Message   string `json:"message,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	OTP      string `json:"otp" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
