package formclient

// envelopeKeys are the conventional wrapper keys the heterogeneous form
// service versions use around their real payload
var envelopeKeys = []string{"schema", "item", "data", "result"}

// unwrapEnvelope peels one wrapper layer when the object holds its payload
// under a conventional key. Applied once, not recursively: nested envelopes
// have not been observed and double-unwrapping could eat real fields.
func unwrapEnvelope(obj map[string]interface{}) map[string]interface{} {
	for _, key := range envelopeKeys {
		if inner, ok := obj[key].(map[string]interface{}); ok {
			return inner
		}
	}
	return obj
}
