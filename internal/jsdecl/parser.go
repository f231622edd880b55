package jsdecl

// JS implements a koanf parser for JavaScript declarations.
type JS struct{}

// Parser returns a JS parser.
func Parser() *JS {
	return &JS{}
}

// Unmarshal decodes a JavaScript declaration into a nested map.
func (p *JS) Unmarshal(b []byte) (map[string]interface{}, error) {
	return Decode(b)
}

// Marshal encodes a nested map as a CommonJS declaration.
func (p *JS) Marshal(o map[string]interface{}) ([]byte, error) {
	return Encode(o)
}
