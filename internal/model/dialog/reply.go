package dialog

// Option is a selectable action offered alongside a reply. The transport
// echoes the ID back as a select event when the user picks it.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Reply is the transport-agnostic outcome of one dialog event.
type Reply struct {
	Text    string   `json:"text"`
	Options []Option `json:"options,omitempty"`
}
