package vector

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
)

const (
	componentsTensor = "components"
	meanTensor       = "mean"
)

// Projection is a linear dimensionality reduction loaded from a safetensors
// file. It maps an input of InDim values to OutDim values as
// components · (x − mean). The projection is read-only once loaded.
type Projection struct {
	components []float32 // row-major [outDim, inDim]
	mean       []float32 // [inDim], nil when the file has no mean tensor
	inDim      int
	outDim     int
}

type tensorMeta struct {
	Dtype       string `json:"dtype"`
	Shape       []int  `json:"shape"`
	DataOffsets [2]int `json:"data_offsets"`
}

// NewProjection builds a projection from in-memory components (row-major,
// outDim rows of inDim values) and an optional mean of length inDim.
func NewProjection(components []float32, outDim, inDim int, mean []float32) (*Projection, error) {
	if outDim <= 0 || inDim <= 0 {
		return nil, fmt.Errorf("projection: invalid shape [%d %d]", outDim, inDim)
	}
	if len(components) != outDim*inDim {
		return nil, fmt.Errorf("projection: %d component values don't match shape [%d %d]",
			len(components), outDim, inDim)
	}
	if mean != nil && len(mean) != inDim {
		return nil, fmt.Errorf("projection: mean has %d values, expected %d", len(mean), inDim)
	}
	return &Projection{components: components, mean: mean, inDim: inDim, outDim: outDim}, nil
}

// LoadProjection reads a safetensors file holding a 2D F32 "components" tensor
// and, optionally, a 1D F32 "mean" tensor.
func LoadProjection(path string) (*Projection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("projection: %w", err)
	}
	if len(data) < 8 {
		return nil, fmt.Errorf("projection: file too small: %d bytes", len(data))
	}

	// 8-byte LE header length, then a JSON header, then the raw tensor data.
	headerLen := binary.LittleEndian.Uint64(data[:8])
	if uint64(len(data)-8) < headerLen {
		return nil, fmt.Errorf("projection: header length %d exceeds file size", headerLen)
	}

	var header map[string]json.RawMessage
	if err := json.Unmarshal(data[8:8+headerLen], &header); err != nil {
		return nil, fmt.Errorf("projection: failed to parse header: %w", err)
	}
	body := data[8+headerLen:]

	raw, ok := header[componentsTensor]
	if !ok {
		return nil, fmt.Errorf("projection: tensor '%s' not found in header", componentsTensor)
	}
	compMeta, components, err := readTensor(raw, body)
	if err != nil {
		return nil, fmt.Errorf("projection: %s: %w", componentsTensor, err)
	}
	if len(compMeta.Shape) != 2 {
		return nil, fmt.Errorf("projection: expected 2D tensor, got shape %v", compMeta.Shape)
	}

	var mean []float32
	if raw, ok := header[meanTensor]; ok {
		meanMeta, values, err := readTensor(raw, body)
		if err != nil {
			return nil, fmt.Errorf("projection: %s: %w", meanTensor, err)
		}
		if len(meanMeta.Shape) != 1 {
			return nil, fmt.Errorf("projection: expected 1D mean, got shape %v", meanMeta.Shape)
		}
		mean = values
	}

	return NewProjection(components, compMeta.Shape[0], compMeta.Shape[1], mean)
}

func readTensor(raw json.RawMessage, body []byte) (tensorMeta, []float32, error) {
	var meta tensorMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return meta, nil, fmt.Errorf("failed to parse tensor metadata: %w", err)
	}
	if meta.Dtype != "F32" {
		return meta, nil, fmt.Errorf("expected dtype F32, got %s", meta.Dtype)
	}

	count := 1
	for _, dim := range meta.Shape {
		count *= dim
	}
	start, end := meta.DataOffsets[0], meta.DataOffsets[1]
	if start < 0 || end < start || end > len(body) {
		return meta, nil, fmt.Errorf("data range [%d:%d] exceeds data size %d", start, end, len(body))
	}
	if end-start != count*4 {
		return meta, nil, fmt.Errorf("data size %d doesn't match shape %v", end-start, meta.Shape)
	}

	values := make([]float32, count)
	for i := range values {
		bits := binary.LittleEndian.Uint32(body[start+i*4 : start+i*4+4])
		values[i] = math.Float32frombits(bits)
	}
	return meta, values, nil
}

// InDim returns the expected input length
func (p *Projection) InDim() int { return p.inDim }

// OutDim returns the projected length
func (p *Projection) OutDim() int { return p.outDim }

// Project reduces x to OutDim values. x must have exactly InDim values.
func (p *Projection) Project(x []float64) ([]float64, error) {
	if len(x) != p.inDim {
		return nil, fmt.Errorf("projection: input has %d values, expected %d", len(x), p.inDim)
	}

	centered := make([]float64, p.inDim)
	for j, v := range x {
		centered[j] = v
		if p.mean != nil {
			centered[j] -= float64(p.mean[j])
		}
	}

	out := make([]float64, p.outDim)
	for i := 0; i < p.outDim; i++ {
		row := p.components[i*p.inDim : (i+1)*p.inDim]
		var sum float64
		for j, w := range row {
			sum += float64(w) * centered[j]
		}
		out[i] = sum
	}
	return out, nil
}
