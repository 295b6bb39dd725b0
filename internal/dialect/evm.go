package dialect

import "yulopt/internal/ast"

const (
	mload      ast.Symbol = "mload"
	mstore     ast.Symbol = "mstore"
	memoryinit ast.Symbol = "memoryinit"
)

// EVMDialect exposes the EVM instruction set as builtins
type EVMDialect struct {
	objectAccess bool
	builtins     map[ast.Symbol]*BuiltinFunction
}

// NewEVMDialect creates the EVM dialect. With objectAccess the dialect also provides
// object-level builtins such as memoryinit and allows direct memory addressing.
func NewEVMDialect(objectAccess bool) *EVMDialect {
	d := &EVMDialect{
		objectAccess: objectAccess,
		builtins:     make(map[ast.Symbol]*BuiltinFunction),
	}
	for _, b := range evmInstructions {
		d.add(b)
	}
	if objectAccess {
		for _, b := range objectBuiltins {
			d.add(b)
		}
	}
	return d
}

func (d *EVMDialect) add(b BuiltinFunction) {
	builtin := b
	d.builtins[b.Name] = &builtin
}

func (d *EVMDialect) Name() string {
	if d.objectAccess {
		return "evm-object"
	}
	return "evm"
}

func (d *EVMDialect) Builtin(name ast.Symbol) *BuiltinFunction {
	return d.builtins[name]
}

func (d *EVMDialect) IsReserved(name ast.Symbol) bool {
	return ast.IsKeyword(name) || d.builtins[name] != nil
}

// ProvidesObjectAccess reports whether programs may address memory directly
func (d *EVMDialect) ProvidesObjectAccess() bool {
	return d.objectAccess
}

// MemoryStore names the builtin writing one word to memory
func (d *EVMDialect) MemoryStore() ast.Symbol { return mstore }

// MemoryLoad names the builtin reading one word from memory
func (d *EVMDialect) MemoryLoad() ast.Symbol { return mload }

// MemoryInit names the builtin marking the start of free memory
func (d *EVMDialect) MemoryInit() ast.Symbol { return memoryinit }

// Builtins returns the builtin table
func (d *EVMDialect) Builtins() map[ast.Symbol]*BuiltinFunction {
	return d.builtins
}

var objectBuiltins = []BuiltinFunction{
	{memoryinit, 1, 0, EffectMemoryWrite},
	{"datasize", 1, 1, EffectPure},
	{"dataoffset", 1, 1, EffectPure},
	{"datacopy", 3, 0, EffectMemoryWrite},
	{"setimmutable", 3, 0, EffectMemoryWrite},
	{"loadimmutable", 1, 1, EffectPure},
	{"linkersymbol", 1, 1, EffectPure},
}

var evmInstructions = []BuiltinFunction{
	// arithmetic
	{"add", 2, 1, EffectPure},
	{"sub", 2, 1, EffectPure},
	{"mul", 2, 1, EffectPure},
	{"div", 2, 1, EffectPure},
	{"sdiv", 2, 1, EffectPure},
	{"mod", 2, 1, EffectPure},
	{"smod", 2, 1, EffectPure},
	{"exp", 2, 1, EffectPure},
	{"addmod", 3, 1, EffectPure},
	{"mulmod", 3, 1, EffectPure},
	{"signextend", 2, 1, EffectPure},

	// comparison and bitwise
	{"lt", 2, 1, EffectPure},
	{"gt", 2, 1, EffectPure},
	{"slt", 2, 1, EffectPure},
	{"sgt", 2, 1, EffectPure},
	{"eq", 2, 1, EffectPure},
	{"iszero", 1, 1, EffectPure},
	{"and", 2, 1, EffectPure},
	{"or", 2, 1, EffectPure},
	{"xor", 2, 1, EffectPure},
	{"not", 1, 1, EffectPure},
	{"byte", 2, 1, EffectPure},
	{"shl", 2, 1, EffectPure},
	{"shr", 2, 1, EffectPure},
	{"sar", 2, 1, EffectPure},

	{"keccak256", 2, 1, EffectMemoryRead},

	// memory
	{mload, 1, 1, EffectMemoryRead},
	{mstore, 2, 0, EffectMemoryWrite},
	{"mstore8", 2, 0, EffectMemoryWrite},
	{"msize", 0, 1, EffectMemoryRead},
	{"mcopy", 3, 0, EffectMemoryRead | EffectMemoryWrite},

	// storage
	{"sload", 1, 1, EffectStorageRead},
	{"sstore", 2, 0, EffectStorageWrite},
	{"tload", 1, 1, EffectStorageRead},
	{"tstore", 2, 0, EffectStorageWrite},

	// environment
	{"address", 0, 1, EffectPure},
	{"balance", 1, 1, EffectOther},
	{"selfbalance", 0, 1, EffectOther},
	{"origin", 0, 1, EffectPure},
	{"caller", 0, 1, EffectPure},
	{"callvalue", 0, 1, EffectPure},
	{"calldataload", 1, 1, EffectPure},
	{"calldatasize", 0, 1, EffectPure},
	{"calldatacopy", 3, 0, EffectMemoryWrite},
	{"codesize", 0, 1, EffectPure},
	{"codecopy", 3, 0, EffectMemoryWrite},
	{"gasprice", 0, 1, EffectPure},
	{"extcodesize", 1, 1, EffectOther},
	{"extcodecopy", 4, 0, EffectMemoryWrite | EffectOther},
	{"extcodehash", 1, 1, EffectOther},
	{"returndatasize", 0, 1, EffectOther},
	{"returndatacopy", 3, 0, EffectMemoryWrite | EffectOther},
	{"blockhash", 1, 1, EffectPure},
	{"coinbase", 0, 1, EffectPure},
	{"timestamp", 0, 1, EffectPure},
	{"number", 0, 1, EffectPure},
	{"prevrandao", 0, 1, EffectPure},
	{"gaslimit", 0, 1, EffectPure},
	{"chainid", 0, 1, EffectPure},
	{"basefee", 0, 1, EffectPure},
	{"gas", 0, 1, EffectOther},
	{"pop", 1, 0, EffectPure},

	// logs and calls
	{"log0", 2, 0, EffectMemoryRead | EffectOther},
	{"log1", 3, 0, EffectMemoryRead | EffectOther},
	{"log2", 4, 0, EffectMemoryRead | EffectOther},
	{"log3", 5, 0, EffectMemoryRead | EffectOther},
	{"log4", 6, 0, EffectMemoryRead | EffectOther},
	{"create", 3, 1, EffectMemoryRead | EffectOther},
	{"create2", 4, 1, EffectMemoryRead | EffectOther},
	{"call", 7, 1, EffectMemoryRead | EffectMemoryWrite | EffectStorageWrite | EffectOther},
	{"callcode", 7, 1, EffectMemoryRead | EffectMemoryWrite | EffectStorageWrite | EffectOther},
	{"delegatecall", 6, 1, EffectMemoryRead | EffectMemoryWrite | EffectStorageWrite | EffectOther},
	{"staticcall", 6, 1, EffectMemoryRead | EffectMemoryWrite | EffectOther},

	// termination
	{"return", 2, 0, EffectMemoryRead | EffectTerminates},
	{"revert", 2, 0, EffectMemoryRead | EffectTerminates},
	{"stop", 0, 0, EffectTerminates},
	{"invalid", 0, 0, EffectTerminates},
	{"selfdestruct", 1, 0, EffectTerminates | EffectOther},
}
