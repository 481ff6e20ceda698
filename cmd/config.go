package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Initial ledger settings, applied only when the ledger row is first
	// seeded at bootstrap. Later changes go through the settings endpoint.
	LedgerCostPerBarrel          float64
	LedgerRecyclingCostPerBarrel float64
	LedgerCostPerSquareMeter     float64
	LedgerLitersPerSquareMeter   float64
	LedgerRecyclingRate          float64
}
