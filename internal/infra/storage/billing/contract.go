package billing

import "github.com/m04kA/SMC-ParkingDesk/pkg/dbmetrics"

// DBExecutor поддерживает *sql.DB, *sql.Tx и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
