package persona

import "encoding/json"

// Export renders a persona as a self-contained indented JSON record,
// including its id and version history.
func Export(p Persona) ([]byte, error) {
	return json.MarshalIndent(p.clone(), "", "  ")
}

// Import parses an exported persona record. Only a name is required;
// every other field, the id and the history included, defaults to empty.
func Import(raw []byte) (Persona, error) {
	p, ok := personaFromJSON(string(raw))
	if !ok {
		return Persona{}, &ValidationError{Field: "name"}
	}
	return p.clone(), nil
}
