package main

// Messages coming from clients
type ClientMessage struct {
	Type    string `json:"type"`              // "chat_message", "ready", "answer"
	Message string `json:"message,omitempty"` // chat_message
	Answer  string `json:"answer,omitempty"`  // answer
}

// LobbyMessage carries the current roster.
type LobbyMessage struct {
	Type    string   `json:"type"` // "lobby"
	Players []string `json:"players"`
}

// ScoreUpdateMessage carries all scores, best first.
type ScoreUpdateMessage struct {
	Type   string       `json:"type"` // "score_update"
	Scores []ScoreEntry `json:"scores"`
}

type ScoreEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// NewQuestionMessage starts a round.
type NewQuestionMessage struct {
	Type        string   `json:"type"` // "new_question"
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Round       int      `json:"round"`
	TotalRounds int      `json:"total_rounds"`
}

// ReadyUpdateMessage reflects a ready-toggle in the lobby.
type ReadyUpdateMessage struct {
	Type         string   `json:"type"` // "ready_update"
	ReadyPlayers []string `json:"ready_players"`
	Players      []string `json:"players"`
}

// GameStartingMessage announces the pre-game countdown.
type GameStartingMessage struct {
	Type    string `json:"type"` // "game_starting"
	Message string `json:"message"`
}

// AnswerResultMessage reports an adjudicated answer. Correct answers are
// broadcast with the answer and updated scores; incorrect ones go back to
// the sender only.
type AnswerResultMessage struct {
	Type          string       `json:"type"` // "answer_result"
	Username      string       `json:"username"`
	Correct       bool         `json:"correct"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Scores        []ScoreEntry `json:"scores,omitempty"`
	Message       string       `json:"message"`
}

// InfoMessage is for generic notifications and rejections.
type InfoMessage struct {
	Type    string `json:"type"` // "info"
	Message string `json:"message"`
}

// ChatMessage relays lobby chat verbatim.
type ChatMessage struct {
	Type    string `json:"type"` // "chat_message"
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// UserLeftMessage announces a departure plus the remaining roster.
type UserLeftMessage struct {
	Type     string   `json:"type"` // "user_left"
	Username string   `json:"username"`
	Players  []string `json:"players"`
}

// GameOverMessage ends a game with final standings.
type GameOverMessage struct {
	Type    string       `json:"type"` // "game_over"
	Message string       `json:"message"`
	Scores  []ScoreEntry `json:"scores"`
}

// ReturnToLobbyMessage moves clients back to the pre-game lobby.
type ReturnToLobbyMessage struct {
	Type    string `json:"type"` // "return_to_lobby"
	Message string `json:"message"`
}
