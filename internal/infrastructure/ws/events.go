package ws

const (
	NotificationReceived = "notification.received"

	ErrorEvent          = "error"
	AuthenticationError = "error.auth"
	RateLimited         = "error.rate_limited"
)
