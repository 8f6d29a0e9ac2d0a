package gateway

// Action is a client-issued command name.
type Action string

const (
	ActionPick   Action = "pick"
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionUndo   Action = "undo"
	ActionRedo   Action = "redo"
)

// Command is the message clients send over the WebSocket. Every action is
// zero-argument except pick, which names the item.
type Command struct {
	Action Action `json:"action"`
	ItemID string `json:"item_id,omitempty"`
}
