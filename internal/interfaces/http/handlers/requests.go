package handlers

type RegisterRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

type VerifyEmailQuery struct {
	Token string `form:"token" binding:"required,len=64,hexadecimal"`
}

type OpenConversationRequest struct {
	CustomerName  string `json:"customer_name" binding:"required,max=100"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email,max=255"`
	Subject       string `json:"subject" binding:"required,max=200"`
	Message       string `json:"message" binding:"required,max=5000"`
	Anonymous     bool   `json:"anonymous"`
}

type PostMessageRequest struct {
	Message string `json:"message" binding:"required,max=5000"`
}
