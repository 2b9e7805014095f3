package rbtree

// Color is the tag attached to every branch of a tree.
type Color uint8

// Branch colors.
const (
	Red Color = iota
	Black
)

// String implements fmt.Stringer.
func (c Color) String() string {
	if c == Red {
		return "red"
	}

	return "black"
}
