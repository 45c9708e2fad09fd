package api

// Vehicle is a reference entry from GET /vehicles.
type Vehicle struct {
	ID       int    `json:"id"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	FuelType string `json:"fuel_type,omitempty"`
}

// FuelLog is a refuelling entry from GET /fuel_logs.
type FuelLog struct {
	ID         int      `json:"id"`
	VehicleID  int      `json:"vehicle_id"`
	LogDate    string   `json:"log_date"`
	FuelAmount float64  `json:"fuel_amount"`
	FuelCost   *float64 `json:"fuel_cost,omitempty"`
	Odometer   float64  `json:"odometer"`
	FuelType   string   `json:"fuel_type,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	Efficiency *float64 `json:"efficiency,omitempty"`
}

// Trip is a journey entry from GET /trips.
type Trip struct {
	ID            int     `json:"id"`
	VehicleID     int     `json:"vehicle_id"`
	TripDate      string  `json:"trip_date"`
	StartLocation string  `json:"start_location"`
	EndLocation   string  `json:"end_location"`
	Distance      float64 `json:"distance"`
	Duration      *int    `json:"duration,omitempty"`
	Purpose       string  `json:"purpose"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}
