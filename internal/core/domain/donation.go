package domain

// DonationTier is one of the fixed donation options.
type DonationTier struct {
	Amount      int
	Title       string
	Description string
}

var DonationTiers = []DonationTier{
	{Amount: 25, Title: "Feed a Pet", Description: "Provides food for a pet for one day"},
	{Amount: 50, Title: "Medical Care", Description: "Covers basic medical supplies"},
	{Amount: 100, Title: "Sponsor a Pet", Description: "Sponsors a pet's care for one week"},
}
