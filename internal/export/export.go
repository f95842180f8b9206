// Package export serializes analysis results to JSON and CSV for
// downstream tooling. The payload types mirror the analyzer accessors;
// no analyzer state leaks into the files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/avierra/optray/internal/analysis"
	"github.com/avierra/optray/internal/optic"
	"github.com/avierra/optray/internal/psf"
)

type SpotData struct {
	Fields          []optic.Field       `json:"fields"`
	Wavelengths     []float64           `json:"wavelengths"`
	Centroids       []analysis.Centroid `json:"centroids"`
	GeometricRadius [][]float64         `json:"geometric_radius"`
	RMSRadius       [][]float64         `json:"rms_radius"`
}

func BuildSpot(sd *analysis.SpotDiagram) SpotData {
	return SpotData{
		Fields:          sd.Fields(),
		Wavelengths:     sd.Wavelengths(),
		Centroids:       sd.Centroids(),
		GeometricRadius: sd.GeometricRadius(),
		RMSRadius:       sd.RMSRadius(),
	}
}

type EncircledData struct {
	Fields      []optic.Field `json:"fields"`
	Wavelength  float64       `json:"wavelength"`
	Radii       []float64     `json:"radii"`
	Curves      [][]float64   `json:"curves"`
	TotalEnergy []float64     `json:"total_energy"`
}

func BuildEncircled(ee *analysis.EncircledEnergy) EncircledData {
	return EncircledData{
		Fields:      ee.Fields(),
		Wavelength:  ee.Wavelength(),
		Radii:       ee.Radii(),
		Curves:      ee.Curves(),
		TotalEnergy: ee.TotalEnergy(),
	}
}

type DistortionData struct {
	Wavelengths []float64   `json:"wavelengths"`
	FieldAxis   []float64   `json:"field_axis"`
	Curves      [][]float64 `json:"curves"`
}

func BuildDistortion(d *analysis.Distortion) DistortionData {
	return DistortionData{
		Wavelengths: d.Wavelengths(),
		FieldAxis:   d.FieldAxis(),
		Curves:      d.Curves(),
	}
}

type GridDistortionData struct {
	MaxDistortion float64     `json:"max_distortion"`
	RealX         [][]float64 `json:"real_x"`
	RealY         [][]float64 `json:"real_y"`
	IdealX        [][]float64 `json:"ideal_x"`
	IdealY        [][]float64 `json:"ideal_y"`
}

func BuildGridDistortion(gd *analysis.GridDistortion) GridDistortionData {
	xr, yr := gd.Real()
	xp, yp := gd.Ideal()
	return GridDistortionData{
		MaxDistortion: gd.MaxDistortion(),
		RealX:         xr,
		RealY:         yr,
		IdealX:        xp,
		IdealY:        yp,
	}
}

type CurvatureData struct {
	Wavelengths []float64   `json:"wavelengths"`
	FieldAxis   []float64   `json:"field_axis"`
	Tangential  [][]float64 `json:"tangential"`
	Sagittal    [][]float64 `json:"sagittal"`
}

func BuildCurvature(fc *analysis.FieldCurvature) CurvatureData {
	return CurvatureData{
		Wavelengths: fc.Wavelengths(),
		FieldAxis:   fc.FieldAxis(),
		Tangential:  fc.Tangential(),
		Sagittal:    fc.Sagittal(),
	}
}

type PSFData struct {
	Field       optic.Field `json:"field"`
	Wavelengths []float64   `json:"wavelengths"`
	GridSize    int         `json:"grid_size"`
	Peak        float64     `json:"peak"`
	Strehl      float64     `json:"strehl"`
	ExtentX     float64     `json:"extent_x"`
	ExtentY     float64     `json:"extent_y"`
}

func BuildPSF(p *psf.FFTPSF) PSFData {
	g := p.GridSize()
	x, y := p.PhysicalExtent(g, g)
	return PSFData{
		Field:       p.Field(),
		Wavelengths: p.Wavelengths(),
		GridSize:    g,
		Peak:        p.Peak(),
		Strehl:      p.Strehl(),
		ExtentX:     x,
		ExtentY:     y,
	}
}

// WriteJSON writes any payload indented to path.
func WriteJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteJSONStdout writes any payload indented to standard output.
func WriteJSONStdout(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteCurvesCSV writes an x axis and matching curve columns.
func WriteCurvesCSV(path string, headers []string, x []float64, curves ...[]float64) error {
	if len(headers) != len(curves)+1 {
		return fmt.Errorf("export: %d headers for %d columns", len(headers), len(curves)+1)
	}
	for _, c := range curves {
		if len(c) != len(x) {
			return fmt.Errorf("export: curve length %d does not match axis length %d", len(c), len(x))
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(headers); err != nil {
		return err
	}
	row := make([]string, len(headers))
	for i := range x {
		row[0] = strconv.FormatFloat(x[i], 'g', -1, 64)
		for j, c := range curves {
			row[j+1] = strconv.FormatFloat(c[i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
