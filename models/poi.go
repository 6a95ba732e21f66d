package models

// PointOfInterest is a place inside the temple complex the map can route to.
type PointOfInterest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PointsOfInterest are the navigation targets the assistant may return.
var PointsOfInterest = []PointOfInterest{
	{ID: "temple", Name: "Main Temple (Darshan)"},
	{ID: "prasad", Name: "Prasad Counter"},
	{ID: "cloak", Name: "Cloak Room & Shoe Stand"},
	{ID: "firstaid", Name: "First Aid Center"},
	{ID: "entrance", Name: "Main Entrance (Gate 1)"},
}

// IsPointOfInterest reports whether id names a known navigation target.
func IsPointOfInterest(id string) bool {
	for _, p := range PointsOfInterest {
		if p.ID == id {
			return true
		}
	}
	return false
}
