package testing

import (
	"fmt"
	"math"

	"github.com/go-drift/tickring/pkg/graphics"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// serializingCanvas implements graphics.Canvas and records ops as DisplayOp.
type serializingCanvas struct {
	ops  []DisplayOp
	size graphics.Size
}

func (c *serializingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: sortedMap("color", serializeColor(color)),
	})
}

func (c *serializingCanvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawLine",
		Params: sortedMap(
			"start", serializeOffset(start),
			"end", serializeOffset(end),
			"color", serializeColor(paint.Color),
			"strokeWidth", round2(paint.StrokeWidth),
			"cap", paint.Cap.String(),
		),
	})
}

func (c *serializingCanvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawCircle",
		Params: sortedMap(
			"center", serializeOffset(center),
			"radius", round2(radius),
			"color", serializeColor(paint.Color),
			"style", paint.Style.String(),
			"strokeWidth", round2(paint.StrokeWidth),
		),
	})
}

func (c *serializingCanvas) Size() graphics.Size {
	return c.size
}

// RecordOps runs paint against a serializing canvas of the given size and
// returns the operations it issued.
func RecordOps(size graphics.Size, paint func(graphics.Canvas)) []DisplayOp {
	c := &serializingCanvas{size: size}
	paint(c)
	return c.ops
}

// RecordDisplayList replays a display list onto a serializing canvas.
func RecordDisplayList(list *graphics.DisplayList) []DisplayOp {
	return RecordOps(list.Size(), list.Paint)
}

// FilterOps returns the ops whose name matches op.
func FilterOps(ops []DisplayOp, op string) []DisplayOp {
	var out []DisplayOp
	for _, o := range ops {
		if o.Op == op {
			out = append(out, o)
		}
	}
	return out
}

// CountColor returns how many ops carry the given color.
func CountColor(ops []DisplayOp, color graphics.Color) int {
	want := serializeColor(color)
	n := 0
	for _, o := range ops {
		if o.Params["color"] == want {
			n++
		}
	}
	return n
}

func serializeOffset(o graphics.Offset) [2]float64 {
	return [2]float64{round2(o.X), round2(o.Y)}
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
