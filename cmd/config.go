package cmd

// Config carries every runtime setting of the marketplace service, loaded
// from the environment by cmd/app.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL          string
	CredentialSecret string

	// GuestSessionTTLHours is the initial lifetime of a guest session and
	// its cart.
	GuestSessionTTLHours int

	// SessionInactivityHours is how long a session may sit idle before the
	// sweeper reclaims it.
	SessionInactivityHours int

	// CleanupSchedule is the six-field cron expression of the sweeper.
	CleanupSchedule string

	// DeliveryFeeCents is the flat fee added to driver-delivered orders.
	DeliveryFeeCents int64
}
