package proto

// Preference holds the bot-wide hackathon settings.
type Preference struct {
	HackathonChannel  *ID `json:"hackathon_channel"`
	HackathonCategory *ID `json:"hackathon_category"`
}
