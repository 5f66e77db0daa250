// Package brand holds the business identity shared by the board and the emails.
package brand

const (
	Name           = "Ina J Photography"
	Location       = "Canberra, Australia"
	Website        = "https://www.inajphotography.com"
	WebsiteLabel   = "www.inajphotography.com"
	BookingURL     = "https://www.inajphotography.com/booking"
	BookingLabel   = "www.inajphotography.com/booking"
	InstagramURL   = "https://instagram.com/inajphotography"
	InstagramLabel = "@inajphotography"
	SessionInfoURL = "https://www.inajphotography.com/session-info"
)

// RGB is an 8-bit colour
type RGB struct{ R, G, B int }

var (
	Coral     = RGB{202, 94, 60}
	DarkGreen = RGB{35, 40, 23}
	Ivory     = RGB{247, 244, 237}
	Grey      = RGB{122, 122, 122}
	Light     = RGB{240, 240, 240}
	Rule      = RGB{221, 221, 221}
)
