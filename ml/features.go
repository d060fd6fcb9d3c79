package ml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FeatureCount is the number of observed node attributes scored per request.
const FeatureCount = 15

// FeatureVector is one node observation in FeatureNames order.
type FeatureVector [FeatureCount]float64

var featureNames = [FeatureCount]string{
	"Node_ID",
	"IP_Address",
	"Packet_Rate",
	"Packet_Drop_Rate",
	"Packet_Duplication_Rate",
	"Signal_Strength",
	"SNR",
	"Battery_Level",
	"Number_of_Neighbors",
	"Route_Request_Frequency",
	"Route_Reply_Frequency",
	"Data_Reception_Frequency",
	"CPU_Usage",
	"Memory_Usage",
	"Bandwidth",
}

// FeatureNames returns the field names in declaration order.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	copy(names, featureNames[:])
	return names
}

// FeatureIndex returns the position of a named field.
func FeatureIndex(name string) (int, bool) {
	for i, n := range featureNames {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// ParseFeatures coerces raw form values into a vector. Blank or
// whitespace-only values become 0; anything else must parse as a finite float.
func ParseFeatures(raw []string) (FeatureVector, error) {
	var vector FeatureVector
	if len(raw) != FeatureCount {
		return vector, &InvalidNumberError{
			Value:  fmt.Sprintf("%d values", len(raw)),
			reason: fmt.Sprintf("expected %d values, got %d", FeatureCount, len(raw)),
		}
	}
	for i, value := range raw {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return FeatureVector{}, &InvalidNumberError{Field: featureNames[i], Value: trimmed}
		}
		vector[i] = parsed
	}
	return vector, nil
}
