package auth

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type EmployeeSummary struct {
	ID             int64  `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Status         string `json:"status"`
}

type AuthResponse struct {
	ID          int64            `json:"id"`
	Username    string           `json:"username"`
	Role        string           `json:"role"`
	EmployeeID  *int64           `json:"employee_id,omitempty"`
	Employee    *EmployeeSummary `json:"employee,omitempty"`
	LastLoginAt *string          `json:"last_login_at,omitempty"`
}

// Session is what a successful login or refresh hands back to the client.
type Session struct {
	AccessToken      string       `json:"access_token"`
	RefreshToken     string       `json:"refresh_token"`
	ExpiresIn        int64        `json:"expires_in"`
	RefreshExpiresIn int64        `json:"refresh_expires_in"`
	User             AuthResponse `json:"user"`
}
