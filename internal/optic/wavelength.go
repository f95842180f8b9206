package optic

// WavelengthSet enumerates the configured wavelengths of a system, in
// micrometers. One wavelength is marked primary; it is the reference for
// centroiding, ray-fan de-distortion and grid distortion.
type WavelengthSet struct {
	values  []float64
	primary int
}

// NewWavelengthSet builds a registry from wavelength values in micrometers
// and the index of the primary wavelength. An out-of-range primary index
// falls back to the first wavelength.
func NewWavelengthSet(values []float64, primary int) *WavelengthSet {
	ws := &WavelengthSet{values: make([]float64, len(values))}
	copy(ws.values, values)
	if primary >= 0 && primary < len(values) {
		ws.primary = primary
	}
	return ws
}

// Values returns a copy of the configured wavelengths.
func (ws *WavelengthSet) Values() []float64 {
	out := make([]float64, len(ws.values))
	copy(out, ws.values)
	return out
}

// Num returns the number of configured wavelengths.
func (ws *WavelengthSet) Num() int { return len(ws.values) }

// PrimaryIndex returns the index of the primary wavelength.
func (ws *WavelengthSet) PrimaryIndex() int { return ws.primary }

// Primary returns the primary wavelength in micrometers.
func (ws *WavelengthSet) Primary() float64 { return ws.values[ws.primary] }
