package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

type PartyCreatedData struct {
	PartyCode string     `json:"partyCode"`
	GameState PartyState `json:"gameState"`
}

type JoinPartyData struct {
	PlayerName string `json:"playerName"`
	PartyCode  string `json:"partyCode"`
}

type TypingUpdateData struct {
	PlayerId string `json:"playerId"`
	Word     string `json:"word"`
}

type ChatMessageData struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	PlayerName string `json:"playerName,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}
