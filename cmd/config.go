package cmd

// Config carries everything the application reads from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// BusBufferSize is the per-subscriber alert channel capacity.
	BusBufferSize int

	// StaleDraftMaxAgeDays is how many days a draft may sit before the
	// nightly sweep cancels it.
	StaleDraftMaxAgeDays int

	// OverdueAfterHours is how long an order may stay in production before
	// reminder alerts go out.
	OverdueAfterHours int

	// LabRecipientIDs are the lab staff users alerted about
	// clinic-initiated changes.
	LabRecipientIDs []string

	// SystemActorID identifies background jobs in the audit trail and in
	// alerts they send.
	SystemActorID string
}
