package includes

//hashlit:sha3_hex_literal FromFile include_bytes("abc.txt")

//hashlit:sha3_hex_literal FromText include_str("abc.txt")

//hashlit:sha3_hex_literal Missing include_str("missing.txt") // want `cannot read missing.txt`

//hashlit:sha3_hex_literal Broken include("bad.lit") // want `bad.lit:1:1: expected a hashable literal form`

//hashlit:sha3_hex_literal TwoPaths include_bytes("abc.txt", "abc.txt") // want `include_bytes expects a single string literal path`
