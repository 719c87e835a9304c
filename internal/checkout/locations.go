package checkout

// DeliveryLocation maps a delivery zone to its flat fee in naira.
// There is no distance computation; the table is the whole model.
type DeliveryLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Fee  int64  `json:"fee"`
}

var deliveryLocations = []DeliveryLocation{
	{ID: "lagos-island", Name: "Lagos Island", Fee: 2500},
	{ID: "lagos-mainland", Name: "Lagos Mainland", Fee: 3000},
	{ID: "lekki-ajah", Name: "Lekki / Ajah", Fee: 3500},
	{ID: "ikeja", Name: "Ikeja & Environs", Fee: 2800},
	{ID: "abuja", Name: "Abuja (FCT)", Fee: 5000},
	{ID: "port-harcourt", Name: "Port Harcourt", Fee: 5500},
	{ID: "other", Name: "Other Locations", Fee: 6000},
}

// DeliveryLocations returns the flat-fee table the shopper picks from.
func DeliveryLocations() []DeliveryLocation {
	out := make([]DeliveryLocation, len(deliveryLocations))
	copy(out, deliveryLocations)
	return out
}

// LocationByID looks a delivery location up; ok is false for unknown ids.
func LocationByID(id string) (DeliveryLocation, bool) {
	for _, loc := range deliveryLocations {
		if loc.ID == id {
			return loc, true
		}
	}
	return DeliveryLocation{}, false
}
