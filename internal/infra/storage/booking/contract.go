package booking

import "github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics: подходят *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
