package mos6502

import "errors"

// ErrInvalidInstruction is wrapped into the error CurrentOpcodeError
// returns whenever Step decodes an illegal or undocumented opcode byte
// (Instruction.Op == ERR). Embedders that want to halt or trap on such a
// byte should test for it with errors.Is rather than comparing strings.
var ErrInvalidInstruction = errors.New("invalid instruction")
