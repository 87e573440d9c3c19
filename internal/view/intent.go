package view

// Intent is a navigation request raised by a widget. It either opens the
// auth overlay or asks for a path.
type Intent struct {
	overlay State
	path    string
	kind    intentKind
}

type intentKind int

const (
	intentInvalid intentKind = iota
	intentOverlay
	intentPath
)

// OpenOverlay asks for the auth overlay. Only Login and Signup are accepted;
// anything else yields an intent the router ignores.
func OpenOverlay(s State) Intent {
	if !s.IsAuthOverlay() {
		return Intent{}
	}
	return Intent{overlay: s, kind: intentOverlay}
}

// Navigate asks for a location change
func Navigate(path string) Intent {
	if path == "" {
		return Intent{}
	}
	return Intent{path: path, kind: intentPath}
}

// Overlay returns the requested overlay state
func (i Intent) Overlay() (State, bool) {
	return i.overlay, i.kind == intentOverlay
}

// Path returns the requested path
func (i Intent) Path() (string, bool) {
	return i.path, i.kind == intentPath
}

// Valid reports whether the intent carries a usable payload
func (i Intent) Valid() bool {
	return i.kind != intentInvalid
}

func (i Intent) String() string {
	switch i.kind {
	case intentOverlay:
		return "overlay:" + i.overlay.String()
	case intentPath:
		return "path:" + i.path
	}
	return "invalid"
}
