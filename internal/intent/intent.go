package intent

// Action is the kind of inbound trigger.
type Action string

const (
	// ActionSend carries free text shared from another app.
	ActionSend Action = "send"

	// ActionView carries a URL opened with this app.
	ActionView Action = "view"
)

// MIMETextPlain is the only MIME type accepted for ActionSend.
const MIMETextPlain = "text/plain"

// Intent is an inbound share or view trigger.
type Intent struct {
	Action Action
	Type   string // MIME type of Text (ActionSend only)
	Text   string // shared text or the viewed URL
}

// Outcome classifies what Resolve found.
type Outcome int

const (
	// Found means a URL was extracted and should be cast.
	Found Outcome = iota
	// NoURL means the trigger was a share/view but held no URL.
	NoURL
	// Ignored means the trigger is not one this app handles.
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NoURL:
		return "no URL found"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Share builds a plain-text share intent.
func Share(text string) Intent {
	return Intent{Action: ActionSend, Type: MIMETextPlain, Text: text}
}

// View builds a view intent for a URL.
func View(url string) Intent {
	return Intent{Action: ActionView, Text: url}
}

// Resolve extracts the URL to cast from in.
// A share of any type other than text/plain counts as NoURL; actions other
// than send and view are Ignored.
func Resolve(in Intent) (string, Outcome) {
	switch {
	case in.Action == ActionSend && in.Type == MIMETextPlain,
		in.Action == ActionView:
		if url, ok := ExtractURL(in.Text); ok {
			return url, Found
		}
		return "", NoURL
	case in.Action == ActionSend:
		return "", NoURL
	default:
		return "", Ignored
	}
}
