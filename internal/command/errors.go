package command

import "fmt"

// Kind categorizes a command failure for future extension. It selects
// rendering, not Go error-matching behaviour — every Kind renders the
// same way, in red with the offending command's name.
type Kind int

const (
	UserInputError Kind = iota
	FileSystemError
	ChildSpawnError
)

// Error is a command-dispatch failure carrying enough context to render
// itself into a pane: "<cmd>: <message>" wrapped in SGR red.
type Error struct {
	Kind    Kind
	Command string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

func userErr(cmd, format string, args ...any) error {
	return &Error{Kind: UserInputError, Command: cmd, Message: fmt.Sprintf(format, args...)}
}

func fsErr(cmd, format string, args ...any) error {
	return &Error{Kind: FileSystemError, Command: cmd, Message: fmt.Sprintf(format, args...)}
}

func spawnErr(cmd, format string, args ...any) error {
	return &Error{Kind: ChildSpawnError, Command: cmd, Message: fmt.Sprintf(format, args...)}
}

// Render writes err into w: red text, reset, trailing newline. Any
// error reaches here, not just *Error — a bare Go error from, say,
// os.ReadDir is rendered with its own message and no command prefix
// beyond what the caller already attached.
func Render(w writer, err error) {
	w.WriteString("\x1b[31m" + err.Error() + "\x1b[0m\n")
}

// writer is the minimal surface command output needs; *vterm.Emulator
// satisfies it via Write, wrapped here as WriteString for readability.
type writer interface {
	WriteString(s string)
}
