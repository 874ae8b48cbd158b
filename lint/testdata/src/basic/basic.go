package basic

//hashlit:sha3_hex_literal Pin "abc"

//hashlit:sha3_literal Raw [0x61, 'b', "c"] => wrap()

//hashlit:sha3_512_literal Nested [sha3_literal("a"), sha3_hex_literal(b"b")]

//hashlit:md5_literal Unknown "x" // want `unknown entry point md5_literal`

//hashlit:sha3_literal Float 1.5 // want `expected a hashable literal form`

//hashlit:sha3_literal Pin "again" // want `Pin redeclared; previous directive at .*basic.go:3:32`

//hashlit:sha3_literal // want `malformed directive: "//" is not a Go identifier`

//hashlit:sha3_literal Trailing "a" "b" // want `unexpected .*b.* after literal`

func wrap(b [32]byte) [32]byte { return b }
