package dto

import (
	historydto "focusguard/internal/modules/history/dto"
	sessiondto "focusguard/internal/modules/session/dto"
)

// Inbound actions understood by the router.
const (
	ActionSetBlockingState           = "setBlockingState"
	ActionToggleBlocking             = "toggleBlocking"
	ActionUpdateBlockList            = "updateBlockList"
	ActionUpdateFocusReminderMinutes = "updateFocusReminderMinutes"
	ActionStartWorkSession           = "startWorkSession"
	ActionEndWorkSession             = "endWorkSession"
	ActionUpdateSessionDefaults      = "updateSessionDefaults"
	ActionGetState                   = "getState"
	ActionGetHistory                 = "getHistory"
)

// Message is one inbound request. Only the fields its action names are read.
type Message struct {
	Action     string                    `json:"action"`
	IsBlocking *bool                     `json:"isBlocking,omitempty"`
	BlockList  []string                  `json:"blockList"`
	Minutes    *int                      `json:"minutes,omitempty"`
	Config     *sessiondto.SessionConfig `json:"config,omitempty"`
}

type Response struct {
	Success bool                      `json:"success"`
	Error   string                    `json:"error,omitempty"`
	State   *StateOutput              `json:"state,omitempty"`
	Session *sessiondto.SessionOutput `json:"session,omitempty"`
	Ended   *sessiondto.EndOutput     `json:"ended,omitempty"`
	History []historydto.EntryOutput  `json:"history,omitempty"`
}

type StateOutput struct {
	IsBlocking           bool                      `json:"isBlocking"`
	BlockList            []string                  `json:"blockList"`
	FocusReminderMinutes int                       `json:"focusReminderMinutes"`
	ReminderArmed        bool                      `json:"reminderArmed"`
	Session              *sessiondto.SessionOutput `json:"currentSession,omitempty"`
	SessionDefaults      sessiondto.SessionConfig  `json:"sessionDefaults"`
}

type BootOutput struct {
	RulesRemoved  int    `json:"rulesRemoved"`
	RulesAdded    int    `json:"rulesAdded"`
	SessionAction string `json:"sessionAction"`
	HistoryPruned int    `json:"historyPruned"`
	ReminderArmed bool   `json:"reminderArmed"`
}
