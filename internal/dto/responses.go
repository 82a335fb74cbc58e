package dto

// ErrorResponse — стандартный формат ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse — стандартный формат успешного ответа с данными.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// EscrowResponse — баланс эскроу по заказу.
type EscrowResponse struct {
	JobID   uint64 `json:"job_id"`
	Balance uint64 `json:"balance"`
}

// BalanceResponse — баланс счёта пользователя.
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance uint64 `json:"balance"`
}
