package http

import (
	"net/http"

	"nodeguard/ml"
)

// formColumns is how many parallel input groups the form shows.
const formColumns = 3

type formField struct {
	Name  string
	Value string
}

// CollectInputs reads one raw value per feature, in feature order.
// Missing fields read as blank; nothing is validated here.
func CollectInputs(r *http.Request) []string {
	names := ml.FeatureNames()
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = r.PostFormValue(name)
	}
	return values
}

// FormColumns spreads the fields over columns by index mod columns. It only
// affects layout; CollectInputs order is unchanged.
func FormColumns(values []string, columns int) [][]formField {
	if columns <= 0 {
		columns = 1
	}
	names := ml.FeatureNames()
	out := make([][]formField, columns)
	for i, name := range names {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		out[i%columns] = append(out[i%columns], formField{Name: name, Value: value})
	}
	return out
}
