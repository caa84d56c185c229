// Package inp writes a bolt mesh as an Abaqus input file.
package inp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"boltgen/internal/calc/bolt"
)

var ErrEmptyModel = errors.New("model has no nodes or no elements")

const (
	PartName     = "Bolt"
	ElementType  = "S4R"
	ElementSet   = "BOLT"
	MaterialName = "STEEL"

	// Placeholder section and material values; the generator does not model materials.
	ShellThickness = 1.0
	YoungsModulus  = 210000.0
	PoissonRatio   = 0.3

	// The reader accepts at most 16 entries on a data line.
	maxPerLine = 16
)

// Serialize renders the model as a complete input file.
func Serialize(m *bolt.Model) (string, error) {
	var b strings.Builder
	if err := Write(&b, m); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write streams the input file to w: nodes, then elements, then sections,
// followed by the material, assembly and step blocks.
func Write(w io.Writer, m *bolt.Model) error {
	if m == nil || len(m.Nodes) == 0 || len(m.Elements) == 0 {
		return ErrEmptyModel
	}
	bw := bufio.NewWriter(w)
	p := m.Params

	fmt.Fprintf(bw, "** Abaqus input file for a 3D bolt model\n")
	fmt.Fprintf(bw, "** head D=%s T=%s, shank D=%s L=%s, element size %s, %d segments\n",
		num(p.HeadDiameter), num(p.HeadThickness), num(p.ShankDiameter), num(p.ShankLength), num(p.ElementSize), m.Segments)
	fmt.Fprintf(bw, "*Heading\n")
	fmt.Fprintf(bw, "3D Bolt Model, total length %s mm\n", num(p.TotalLength()))
	fmt.Fprintf(bw, "*Part, name=%s\n", PartName)

	fmt.Fprintf(bw, "*Node\n")
	for _, n := range m.Nodes {
		fmt.Fprintf(bw, "%d, %s, %s, %s\n", n.ID, num(n.X), num(n.Y), num(n.Z))
	}

	fmt.Fprintf(bw, "*Element, type=%s, elset=%s\n", ElementType, ElementSet)
	for _, e := range m.Elements {
		bw.WriteString(strconv.Itoa(e.ID))
		for _, id := range e.Nodes {
			bw.WriteString(", ")
			bw.WriteString(strconv.Itoa(id))
		}
		bw.WriteByte('\n')
	}

	for _, r := range []bolt.Region{bolt.RegionHead, bolt.RegionShank} {
		ids := m.ElementsIn(r)
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(bw, "*Elset, elset=%s\n", r)
		writeIDs(bw, ids)
	}

	fmt.Fprintf(bw, "*Shell Section, elset=%s, material=%s\n", ElementSet, MaterialName)
	fmt.Fprintf(bw, "%s\n", num(ShellThickness))
	fmt.Fprintf(bw, "*End Part\n")

	fmt.Fprintf(bw, "*Material, name=%s\n", MaterialName)
	fmt.Fprintf(bw, "*Elastic\n")
	fmt.Fprintf(bw, "%s, %s\n", num(YoungsModulus), num(PoissonRatio))
	fmt.Fprintf(bw, "*Assembly, name=Assembly\n")
	fmt.Fprintf(bw, "*Instance, name=%s-1, part=%s\n", PartName, PartName)
	fmt.Fprintf(bw, "*End Instance\n")
	fmt.Fprintf(bw, "*End Assembly\n")
	fmt.Fprintf(bw, "*Step, name=StaticStep\n")
	fmt.Fprintf(bw, "*Static\n")
	fmt.Fprintf(bw, "1.0, 1.0\n")
	fmt.Fprintf(bw, "*End Step\n")

	return bw.Flush()
}

func writeIDs(bw *bufio.Writer, ids []int) {
	for i, id := range ids {
		if i > 0 {
			if i%maxPerLine == 0 {
				bw.WriteByte('\n')
			} else {
				bw.WriteString(", ")
			}
		}
		bw.WriteString(strconv.Itoa(id))
	}
	bw.WriteByte('\n')
}

// num formats with six decimals and a '.' separator, never "-0.000000".
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	if strings.TrimLeft(s, "-0.") == "" {
		return "0.000000"
	}
	return s
}
