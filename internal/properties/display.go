package properties

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// DisplayName returns a short label for an object: the shape of a hole, the
// content of a text, the length and mode letter of a dimension. Other kinds
// and missing objects yield "".
func DisplayName(doc *document.Document, kind types.ObjectKind, id uuid.UUID) string {
	switch kind {
	case types.KindHole:
		hole, err := doc.Hole(id)
		if err != nil {
			return ""
		}
		if hole.Shape == types.HoleShapeRound {
			return "Round"
		}
		return "Slot"

	case types.KindText:
		text, err := doc.Text(id)
		if err != nil {
			return ""
		}
		return text.Text

	case types.KindDimension:
		dim, err := doc.Dimension(id)
		if err != nil {
			return ""
		}
		s := FormatLength(dim.Length())
		switch dim.Mode {
		case types.DimensionDistance:
			return s + " D"
		case types.DimensionHorizontal:
			return s + " H"
		case types.DimensionVertical:
			return s + " V"
		}
	}
	return ""
}

// FormatLength renders a length in nanometers as millimeters with three
// decimals, e.g. "2.540 mm". Negative lengths get a leading ASCII "-".
func FormatLength(nm int64) string {
	sign := ""
	if nm < 0 {
		sign = "-"
		nm = -nm
	}
	return fmt.Sprintf("%s%.3f mm", sign, float64(nm)/1e6)
}
