// Package notify sends donor registration confirmations. Delivery is
// strictly best effort: the dispatcher never blocks a registration and a
// failed send is logged, never retried or surfaced.
package notify

import (
	"fmt"
	"strings"
	"time"
)

// Confirmation carries the template params for one registration email.
type Confirmation struct {
	DonorName    string
	Email        string
	Age          int
	WeightKg     float64
	BloodGroup   string
	Phone        string
	Address      string
	CampName     string
	RegisteredAt time.Time
}

// Subject is the confirmation mail subject line.
func (c Confirmation) Subject() string {
	return "Blood donation registration confirmed"
}

// Body renders the plain-text confirmation message.
func (c Confirmation) Body() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", c.DonorName)
	fmt.Fprintf(&b, "Thank you for registering to donate blood at %s.\n\n", c.CampName)
	fmt.Fprintf(&b, "Your registration details:\n")
	fmt.Fprintf(&b, "  Age: %d\n", c.Age)
	fmt.Fprintf(&b, "  Weight: %.1f kg\n", c.WeightKg)
	fmt.Fprintf(&b, "  Blood group: %s\n", c.BloodGroup)
	fmt.Fprintf(&b, "  Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "  Address: %s\n", c.Address)
	fmt.Fprintf(&b, "  Registered: %s\n\n", c.RegisteredAt.Format("2 January 2006"))
	b.WriteString("Please bring a photo ID on the day of the camp.\n")
	return b.String()
}
