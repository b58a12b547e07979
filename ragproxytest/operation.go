package ragproxytest

type OperationOption func(map[string]any)

func WithOperationDone(done bool) OperationOption {
	return func(op map[string]any) {
		op["done"] = done
	}
}

func WithOperationError(message string) OperationOption {
	return func(op map[string]any) {
		op["error"] = map[string]any{"message": message}
	}
}

func WithOperationResponse(response map[string]any) OperationOption {
	return func(op map[string]any) {
		op["response"] = response
	}
}

// Operation builds a raw camelCase operation payload the way the REST
// surface reports one.
func (g *DataGen) Operation(options ...OperationOption) map[string]any {
	store := g.StoreName()
	op := map[string]any{
		"name": g.OperationName(),
		"done": false,
		"response": map[string]any{
			"documentName": store + "/documents/" + g.LetterN(12),
			"parent":       store,
			"displayName":  g.Name() + ".pdf",
		},
	}

	for _, o := range options {
		o(op)
	}

	return op
}
