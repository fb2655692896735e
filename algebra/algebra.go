package algebra

import (
	"fmt"
	"sort"
	"strings"
)

// ShapeError reports an operation table whose dimensions do not match the
// element set: the table must be square with exactly one row and one column
// per element.
type ShapeError struct {
	Elements int // number of elements in the set
	Rows     int // number of rows in the table
	Row      int // index of the offending row, -1 if the row count itself is wrong
	Cols     int // length of the offending row
}

func (e *ShapeError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("operation table has %d rows for %d elements", e.Rows, e.Elements)
	}
	return fmt.Sprintf("operation table row %d has %d entries for %d elements", e.Row, e.Cols, e.Elements)
}

// NotInSetError reports a table entry that is not a member of the element
// set, i.e. the operation is not closed over the set.
type NotInSetError struct {
	Entry string // the offending label
	Row   int    // row index of the entry
	Col   int    // column index of the entry
}

func (e *NotInSetError) Error() string {
	return fmt.Sprintf("table entry %q at row %d, column %d is not in the element set", e.Entry, e.Row, e.Col)
}

// Pair is an ordered pair of element labels.
type Pair struct {
	Left  string
	Right string
}

// Inverse records the two-sided inverse of a single element. Found is false
// when the element has no inverse, or when the structure has no identity at
// all (inverses are undefined without one).
type Inverse struct {
	Element string
	Inverse string
	Found   bool
}

// checkShape verifies the table is n×n for n elements.
func checkShape(elements []string, table [][]string) error {
	n := len(elements)
	if len(table) != n {
		return &ShapeError{Elements: n, Rows: len(table), Row: -1}
	}
	for i, row := range table {
		if len(row) != n {
			return &ShapeError{Elements: n, Rows: n, Row: i, Cols: len(row)}
		}
	}
	return nil
}

// indexOf builds the label→position mapping induced by the set's ordering.
func indexOf(elements []string) map[string]int {
	idx := make(map[string]int, len(elements))
	for i, e := range elements {
		idx[e] = i
	}
	return idx
}

// IsCommutative reports whether the operation encoded by table is
// commutative, i.e. table[i][j] == table[j][i] for every i, j. It stops at
// the first violation.
func IsCommutative(elements []string, table [][]string) (bool, error) {
	if err := checkShape(elements, table); err != nil {
		return false, err
	}
	n := len(elements)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if table[i][j] != table[j][i] {
				return false, nil
			}
		}
	}
	return true, nil
}

// CounterexamplePairs returns every ordered pair (elements[i], elements[j])
// whose products disagree under swapping, in row-major scan order. Both
// directions of an asymmetric violation are reported; nothing is
// deduplicated. The result is empty exactly when the operation is
// commutative.
func CounterexamplePairs(elements []string, table [][]string) ([]Pair, error) {
	if err := checkShape(elements, table); err != nil {
		return nil, err
	}
	n := len(elements)
	var pairs []Pair
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if table[i][j] != table[j][i] {
				pairs = append(pairs, Pair{Left: elements[i], Right: elements[j]})
			}
		}
	}
	return pairs, nil
}

// CounterexampleElements returns the labels involved in any commutativity
// violation, deduplicated, sorted by natural string order and joined with
// commas. The empty string means the operation is commutative.
func CounterexampleElements(elements []string, table [][]string) (string, error) {
	pairs, err := CounterexamplePairs(elements, table)
	if err != nil {
		return "", err
	}
	seen := make(map[string]bool)
	var labels []string
	for _, p := range pairs {
		if !seen[p.Left] {
			seen[p.Left] = true
			labels = append(labels, p.Left)
		}
		if !seen[p.Right] {
			seen[p.Right] = true
			labels = append(labels, p.Right)
		}
	}
	sort.Strings(labels)
	return strings.Join(labels, ","), nil
}

// IsAssociative reports whether (a∘b)∘c == a∘(b∘c) for every triple,
// evaluated by chaining table lookups through the label→index mapping.
// A table entry outside the element set surfaces as a NotInSetError.
func IsAssociative(elements []string, table [][]string) (bool, error) {
	if err := checkShape(elements, table); err != nil {
		return false, err
	}
	idx := indexOf(elements)
	n := len(elements)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ij, ok := idx[table[i][j]]
			if !ok {
				return false, &NotInSetError{Entry: table[i][j], Row: i, Col: j}
			}
			for k := 0; k < n; k++ {
				jk, ok := idx[table[j][k]]
				if !ok {
					return false, &NotInSetError{Entry: table[j][k], Row: j, Col: k}
				}
				if table[ij][k] != table[i][jk] {
					return false, nil
				}
			}
		}
	}
	return true, nil
}

// FindIdentity returns the first element e (in set order) with
// e∘x == x∘e == x for every x, together with ok=true. ok is false when no
// two-sided identity exists; a well-formed structure has at most one.
func FindIdentity(elements []string, table [][]string) (string, bool, error) {
	if err := checkShape(elements, table); err != nil {
		return "", false, err
	}
	n := len(elements)
	for i := 0; i < n; i++ {
		identity := true
		for j := 0; j < n; j++ {
			if table[i][j] != elements[j] || table[j][i] != elements[j] {
				identity = false
				break
			}
		}
		if identity {
			return elements[i], true, nil
		}
	}
	return "", false, nil
}

// FindInverses resolves the two-sided inverse of every element relative to
// the structure's identity. Entries come back in set order, one per
// element. When the structure has no identity, every entry has Found=false:
// inverses are only meaningful relative to a two-sided identity, so nothing
// is searched. An element whose inverse search exhausts the set also maps
// to Found=false. Non-closure is rejected up front with a NotInSetError.
func FindInverses(elements []string, table [][]string) ([]Inverse, error) {
	if err := checkShape(elements, table); err != nil {
		return nil, err
	}
	idx := indexOf(elements)
	for i, row := range table {
		for j, entry := range row {
			if _, ok := idx[entry]; !ok {
				return nil, &NotInSetError{Entry: entry, Row: i, Col: j}
			}
		}
	}

	inverses := make([]Inverse, 0, len(elements))

	identity, ok, err := FindIdentity(elements, table)
	if err != nil {
		return nil, err
	}
	if !ok {
		for _, e := range elements {
			inverses = append(inverses, Inverse{Element: e, Found: false})
		}
		return inverses, nil
	}

	n := len(elements)
	for i := 0; i < n; i++ {
		inv := Inverse{Element: elements[i], Found: false}
		for j := 0; j < n; j++ {
			if table[i][j] == identity && table[j][i] == identity {
				inv.Inverse = elements[j]
				inv.Found = true
				break
			}
		}
		inverses = append(inverses, inv)
	}
	return inverses, nil
}
