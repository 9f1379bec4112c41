// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jpretty

// A frame records the state of one open object or array. The concrete type
// of a frame determines the kind of container: objectState for objects and
// arrayState for arrays.
type frame interface {
	opener() Kind
}

// objectState is the state of an open object.
type objectState byte

const (
	objExpectKeyOrEnd objectState = iota
	objExpectColon
	objExpectValue
	objExpectCommaOrEnd
)

func (objectState) opener() Kind { return LBrace }

// arrayState is the state of an open array.
type arrayState byte

const (
	arrExpectValueOrEnd arrayState = iota
	arrExpectCommaOrEnd
)

func (arrayState) opener() Kind { return LSquare }

// push opens a new container frame, enforcing the depth limit.
func (f *Formatter) push(fr frame) error {
	if f.maxDepth > 0 && f.stack.Len() >= f.maxDepth {
		return f.syntaxError("nesting depth exceeds the maximum of %d", f.maxDepth)
	}
	f.stack.Push(fr)
	return nil
}

// setState replaces the state of the innermost frame.
func (f *Formatter) setState(fr frame) {
	f.stack.Pop()
	f.stack.Push(fr)
}

// expectState reports an error with msg unless the innermost frame is in
// state want.
func (f *Formatter) expectState(want frame, msg string) error {
	if top, ok := f.stack.Peek(0); !ok || top != want {
		return f.syntaxError("%s, got %v", msg, f.cur.Kind)
	}
	return nil
}

// enterValue reports whether a value may begin at the current position.
// At the top level any value may begin; inside a container the innermost
// frame must be waiting for a value. The parse loops only call parseValue
// from those states, so the errors below guard the state machine invariant
// and are not reachable from any input.
func (f *Formatter) enterValue() error {
	top, ok := f.stack.Peek(0)
	if !ok {
		return nil
	}
	switch st := top.(type) {
	case objectState:
		if st != objExpectValue {
			return f.syntaxError("value not expected here in object, got %v", f.cur.Kind)
		}
	case arrayState:
		if st != arrExpectValueOrEnd {
			return f.syntaxError("value not expected here in array, got %v", f.cur.Kind)
		}
	}
	return nil
}

// onScalarValueCompleted advances the innermost frame past a value after a
// string, number, or constant has been written.
func (f *Formatter) onScalarValueCompleted() { f.completeValue() }

// onContainerClosed advances the enclosing frame past a value after a nested
// object or array has been closed.
func (f *Formatter) onContainerClosed() { f.completeValue() }

func (f *Formatter) completeValue() {
	top, ok := f.stack.Peek(0)
	if !ok {
		return
	}
	switch st := top.(type) {
	case objectState:
		if st == objExpectValue {
			f.setState(objExpectCommaOrEnd)
		}
	case arrayState:
		if st == arrExpectValueOrEnd {
			f.setState(arrExpectCommaOrEnd)
		}
	}
}
