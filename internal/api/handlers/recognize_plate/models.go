package recognize_plate

// PlateResponse HTTP response model
type PlateResponse struct {
	Plate      string   `json:"plate,omitempty"`
	Candidates []string `json:"candidates"`
}
