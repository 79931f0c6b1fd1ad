// ABOUTME: Defines the Terminal interface for input mode, size queries, non-blocking reads and output.
// ABOUTME: Abstracts terminal operations so the renderer can target real or virtual terminals.

package terminal

// Terminal abstracts the low-level terminal operations the graphics
// runtime needs.
//
// EnterRawMode switches input to non-canonical, unechoed, non-blocking
// mode; ExitRawMode restores what was there before. Read never blocks:
// it returns 0, nil when no input is pending. Size reports columns and
// rows in character cells.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
}
