package noop

import (
	"context"
	"log"
)

// Interpreter is a rules.Interpreter that doesn't run any code.
//
// Exec returns the source itself when the source is a boolean, so
// {interpreter: noop, source: true} is a guard that always passes.
// Otherwise Exec returns the value without modification.
type Interpreter struct {
	// Silent, if true, will suppress warning log messages.
	Silent bool
}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (i *Interpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	if !i.Silent {
		log.Printf("warning: Using noop Interpreter for compilation")
	}
	return nil, nil
}

func (i *Interpreter) Exec(ctx context.Context, x interface{}, code interface{}, compiled interface{}) (interface{}, error) {
	if !i.Silent {
		log.Printf("warning: Using noop Interpreter for execution")
	}
	if b, is := code.(bool); is {
		return b, nil
	}
	return x, nil
}
