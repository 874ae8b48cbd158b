package configured

//hashlit:blake_hex_literal Plain "abc"

//hashlit:keccak_literal Mixed [blake_literal("a"), sha256_hex("b")]

//hashlit:blake_literal Isolated keccak_literal("a") // want `expected a hashable literal form`

//hashlit:sha3_literal Default "abc" // want `unknown entry point sha3_literal`
