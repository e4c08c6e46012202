package shell

import "io"

var (
	ResolveEnvironment = resolveEnvironment
	LookPath           = lookPath
)

func NewTailBuffer(size int) io.Writer { return newTailBuffer(size) }

func TailString(w io.Writer) string { return w.(*tailBuffer).String() }

func (e *Executor) SetTailSize(n int) { e.tailSize = n }
