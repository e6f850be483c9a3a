package internal

import (
	"fmt"
	"runtime"
)

const (
	stackSize = 4096
)

// PanicError 由Recover捕获的panic
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
}

// Unwrap panic的值本身是error时返回该error
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Recover 执行函数f，并将其中的panic转换为*PanicError返回
func Recover(f func()) (err error) {
	defer func() {
		if v := recover(); v != nil {
			buf := make([]byte, stackSize)
			n := runtime.Stack(buf, false)
			err = &PanicError{Value: v, Stack: buf[:n]}
		}
	}()

	f()
	return
}
